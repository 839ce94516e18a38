package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/dom"
)

// Finding is what a check reports before the engine turns it into an Issue.
// A finding without an Element is dropped: every Issue must have a place on
// the page.
type Finding struct {
	Message string
	Context string
	Element *goquery.Selection
}

// Rule is one entry in the ordered check list.
type Rule struct {
	Kind     Kind
	Severity Severity
	Category Category
	Check    func(p *Page) []Finding
}

// Page is the input handed to each check.
type Page struct {
	Doc   dom.Document
	Text  string
	lower string
}

// NewPage wraps a document for rule evaluation.
func NewPage(doc dom.Document) *Page {
	text := doc.Text()
	return &Page{
		Doc:   doc,
		Text:  text,
		lower: strings.ToLower(text),
	}
}

// Contains reports whether the page text contains s, ignoring case.
func (p *Page) Contains(s string) bool {
	return strings.Contains(p.lower, strings.ToLower(s))
}

// ContainsAny reports whether the page text contains any of terms.
func (p *Page) ContainsAny(terms []string) bool {
	for _, t := range terms {
		if p.Contains(t) {
			return true
		}
	}
	return false
}

// Locate finds the first element whose own text contains s.
func (p *Page) Locate(s string) *goquery.Selection {
	return dom.FindFirstElementContaining(p.Doc, s)
}

// Excerpt returns up to ContextLength characters of page text around the
// first case-insensitive occurrence of s.
func (p *Page) Excerpt(s string) string {
	return excerpt(p.Text, s)
}

// ContextLength bounds Issue.Context.
const ContextLength = 150

func excerpt(text, s string) string {
	text = dom.CleanText(text)
	runes := []rune(text)
	if len(runes) <= ContextLength {
		return text
	}

	var loc []int
	if s != "" {
		loc = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(s)).FindStringIndex(text)
	}
	if loc == nil {
		return string(runes[:ContextLength])
	}

	start := max(utf8.RuneCountInString(text[:loc[0]])-50, 0)
	end := start + ContextLength
	if end > len(runes) {
		end = len(runes)
		start = max(end-ContextLength, 0)
	}
	return strings.TrimSpace(string(runes[start:end]))
}

// truncate shortens s to ContextLength runes.
func truncate(s string) string {
	s = dom.CleanText(s)
	runes := []rune(s)
	if len(runes) <= ContextLength {
		return s
	}
	return string(runes[:ContextLength])
}
