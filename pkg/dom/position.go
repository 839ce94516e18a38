package dom

import (
	"math"

	"github.com/PuerkitoBio/goquery"
)

// Display band for issue markers, in percent of the scrollable extent.
const (
	MinX = 10.0
	MaxX = 90.0
	MinY = 5.0
	MaxY = 95.0

	// CenterX is the fixed x used by vertical mode.
	CenterX = 50.0
)

// Position is a normalized on-page location in percent.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Mode selects how positions are mapped.
type Mode string

const (
	// ModeFull maps both axes from element geometry.
	ModeFull Mode = "full"
	// ModeVertical pins x to the page centre, as the proxy bridge does.
	ModeVertical Mode = "vertical"
)

// Locate converts a viewport-relative rectangle to a clamped percentage of
// the document's scrollable extent.
func Locate(r Rect, s Scroll) Position {
	return Position{
		X: clamp(percent(r.X+s.X, s.Width), MinX, MaxX),
		Y: clamp(percent(r.Y+s.Y, s.Height), MinY, MaxY),
	}
}

// LocateVertical maps only the y axis; x is fixed at CenterX.
func LocateVertical(r Rect, s Scroll) Position {
	return Position{
		X: CenterX,
		Y: clamp(percent(r.Y+s.Y, s.Height), MinY, MaxY),
	}
}

// Mapper locates elements of a Document.
type Mapper struct {
	Mode Mode
}

// Position returns the clamped position of the first element in sel.
func (m Mapper) Position(doc Document, sel *goquery.Selection) Position {
	r := doc.Rect(sel)
	if m.Mode == ModeVertical {
		return LocateVertical(r, doc.Scroll())
	}
	return Locate(r, doc.Scroll())
}

func percent(v, total float64) float64 {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	return v / total * 100
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
