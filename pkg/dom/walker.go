package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipped elements never contribute visible text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// walkText visits text nodes under root in document order until fn
// returns false.
func walkText(root *html.Node, fn func(*html.Node) bool) bool {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if !fn(c) {
				return false
			}
		case html.ElementNode:
			if skipped[c.DataAtom] {
				continue
			}
			if !walkText(c, fn) {
				return false
			}
		case html.DocumentNode:
			if !walkText(c, fn) {
				return false
			}
		}
	}
	return true
}

// FindFirstElementContaining returns the element owning the first text node
// (in document order) under the body that contains text, compared
// case-insensitively. It returns nil when nothing matches.
func FindFirstElementContaining(doc Document, text string) *goquery.Selection {
	return FindFirstWithin(doc.Body(), text)
}

// FindFirstWithin is FindFirstElementContaining scoped to the subtree of the
// first node in root.
func FindFirstWithin(root *goquery.Selection, text string) *goquery.Selection {
	needle := strings.ToLower(text)
	if needle == "" {
		return nil
	}
	return FindFirstMatching(root, func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	})
}

// FindFirstMatching returns the element owning the first text node under root
// for which match returns true.
func FindFirstMatching(root *goquery.Selection, match func(string) bool) *goquery.Selection {
	if root == nil || len(root.Nodes) == 0 {
		return nil
	}
	top := root.Nodes[0]

	var owner *html.Node
	walkText(top, func(n *html.Node) bool {
		if match(n.Data) {
			owner = n.Parent
			return false
		}
		return true
	})
	if owner == nil {
		return nil
	}
	if owner == top {
		return root.First()
	}
	return root.First().FindNodes(owner)
}

// blocks are elements whose boundaries separate words. Inline elements join
// their text with the neighbouring nodes, as innerText does.
var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Body: true, atom.Br: true, atom.Dd: true, atom.Details: true,
	atom.Dialog: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true,
	atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.Option: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Summary: true, atom.Table: true, atom.Td: true,
	atom.Th: true, atom.Tr: true, atom.Ul: true,
}

// VisibleText concatenates the text nodes under sel, skipping script-like
// elements, and normalizes whitespace. Words are only separated where the
// markup separates them: inside text or at block element boundaries.
func VisibleText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		writeText(&sb, n)
	}
	return CleanText(sb.String())
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipped[n.DataAtom] {
			return
		}
	case html.DocumentNode:
	default:
		return
	}

	block := n.Type == html.ElementNode && blocks[n.DataAtom]
	if block {
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
	if block {
		sb.WriteByte(' ')
	}
}

// CleanText collapses runs of whitespace into single spaces.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
