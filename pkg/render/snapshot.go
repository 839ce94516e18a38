package render

import (
	"fmt"

	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/dom"
)

// snapshotScript measures every element, stamps its index so the geometry
// can be joined back after parsing, and serializes the document.
var snapshotScript = fmt.Sprintf(`(() => {
  const attr = %q;
  const els = document.querySelectorAll('*');
  const rects = new Array(els.length);
  for (let i = 0; i < els.length; i++) {
    const r = els[i].getBoundingClientRect();
    rects[i] = [r.left, r.top, r.width, r.height];
  }
  for (let i = 0; i < els.length; i++) {
    els[i].setAttribute(attr, String(i));
  }
  const root = document.documentElement;
  return {
    html: root ? root.outerHTML : '',
    text: document.body ? document.body.innerText : '',
    scrollX: window.scrollX || 0,
    scrollY: window.scrollY || 0,
    scrollWidth: root ? root.scrollWidth : 0,
    scrollHeight: root ? root.scrollHeight : 0,
    rects: rects,
  };
})()`, dom.NodeAttr)

// snapshot is the JSON shape returned by snapshotScript.
type snapshot struct {
	HTML         string       `json:"html"`
	Text         string       `json:"text"`
	ScrollX      float64      `json:"scrollX"`
	ScrollY      float64      `json:"scrollY"`
	ScrollWidth  float64      `json:"scrollWidth"`
	ScrollHeight float64      `json:"scrollHeight"`
	Rects        [][4]float64 `json:"rects"`
}

func (s snapshot) geometry() dom.Geometry {
	g := dom.Geometry{
		Scroll: dom.Scroll{
			X:      s.ScrollX,
			Y:      s.ScrollY,
			Width:  s.ScrollWidth,
			Height: s.ScrollHeight,
		},
		Rects: make([]dom.Rect, len(s.Rects)),
	}
	for i, r := range s.Rects {
		g.Rects[i] = dom.Rect{X: r[0], Y: r[1], Width: r[2], Height: r[3]}
	}
	return g
}

// newPage parses a snapshot into a Page.
func newPage(url string, s snapshot) (*Page, error) {
	doc, err := dom.Parse(s.HTML, dom.WithText(s.Text), dom.WithGeometry(s.geometry()))
	if err != nil {
		return nil, err
	}
	return &Page{
		URL:      url,
		BodyText: truncate(doc.Text(), BodyTextLimit),
		Document: doc,
	}, nil
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := 0
	for i := range s {
		if runes == n {
			return s[:i]
		}
		runes++
	}
	return s
}
