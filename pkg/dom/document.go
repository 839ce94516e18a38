// Package dom provides a browser-independent view of a rendered page.
// Documents are parsed with goquery and carry the element geometry captured
// in-page by the renderer, so rule checks and position math can run as plain
// Go functions against either a live snapshot or a synthetic fixture.
package dom

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NodeAttr is the attribute the renderer stamps on every element so geometry
// captured in the browser can be joined back to parsed nodes.
const NodeAttr = "data-pagecheck-node"

// Rect is an element's bounding rectangle relative to the viewport, as
// reported by getBoundingClientRect.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Scroll holds the document's scroll offsets and total scrollable extent.
type Scroll struct {
	X      float64 `json:"scrollX"`
	Y      float64 `json:"scrollY"`
	Width  float64 `json:"scrollWidth"`
	Height float64 `json:"scrollHeight"`
}

// Geometry is the layout information captured alongside a document.
// Rects is indexed by the value of NodeAttr on each element.
type Geometry struct {
	Scroll Scroll
	Rects  []Rect
}

// Document is the capability set rule checks need from a page: query
// elements, read visible text, read bounding geometry and scroll metrics.
type Document interface {
	// Text returns the page's visible text.
	Text() string

	// Find returns all elements matching a CSS selector.
	Find(selector string) *goquery.Selection

	// Body returns the <body> element, or the document root if there is none.
	Body() *goquery.Selection

	// Scroll returns scroll offsets and extents.
	Scroll() Scroll

	// Rect returns the bounding rectangle of the first node in sel.
	// Elements without captured geometry report a zero Rect.
	Rect(sel *goquery.Selection) Rect
}

// Page is the goquery-backed Document implementation.
type Page struct {
	doc    *goquery.Document
	text   string
	scroll Scroll
	rects  map[*html.Node]Rect
}

// Option configures a Page.
type Option func(*Page)

// WithText overrides the visible text (e.g. innerText from the browser).
func WithText(text string) Option {
	return func(p *Page) {
		p.text = text
	}
}

// WithGeometry attaches captured layout information.
func WithGeometry(g Geometry) Option {
	return func(p *Page) {
		p.scroll = g.Scroll
		p.indexRects(g.Rects)
	}
}

// Parse builds a Page from HTML.
func Parse(source string, opts ...Option) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil, err
	}

	p := &Page{
		doc:   doc,
		rects: make(map[*html.Node]Rect),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.text == "" {
		p.text = VisibleText(p.Body())
	}
	return p, nil
}

func (p *Page) indexRects(rects []Rect) {
	if len(rects) == 0 {
		return
	}
	p.doc.Find("[" + NodeAttr + "]").Each(func(_ int, s *goquery.Selection) {
		raw, _ := s.Attr(NodeAttr)
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 0 || idx >= len(rects) {
			return
		}
		p.rects[s.Nodes[0]] = rects[idx]
	})
}

// Text returns the page's visible text.
func (p *Page) Text() string { return p.text }

// Find returns all elements matching selector.
func (p *Page) Find(selector string) *goquery.Selection { return p.doc.Find(selector) }

// Body returns the <body> element.
func (p *Page) Body() *goquery.Selection {
	body := p.doc.Find("body").First()
	if body.Length() == 0 {
		return p.doc.Selection
	}
	return body
}

// Scroll returns scroll offsets and extents.
func (p *Page) Scroll() Scroll { return p.scroll }

// Rect returns the captured rectangle for the first node in sel.
func (p *Page) Rect(sel *goquery.Selection) Rect {
	if sel == nil || len(sel.Nodes) == 0 {
		return Rect{}
	}
	return p.rects[sel.Nodes[0]]
}
