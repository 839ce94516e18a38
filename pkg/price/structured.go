package price

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
)

// fromStructuredData scans application/ld+json blocks for a Product record
// with an offer price. Blocks that fail to parse are skipped.
func fromStructuredData(in Input) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(in.HTML))
	if err != nil {
		return 0, false
	}

	var found float64
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if !gjson.Valid(raw) {
			logger.Debug("skipping malformed structured data block", "index", i)
			return true
		}
		if p, ok := productPrice(gjson.Parse(raw)); ok {
			found = p
			return false
		}
		return true
	})
	return found, found > 0
}

// productPrice looks for a Product-typed record directly, inside an array,
// or inside an @graph container.
func productPrice(v gjson.Result) (float64, bool) {
	if v.IsArray() {
		for _, item := range v.Array() {
			if p, ok := productPrice(item); ok {
				return p, true
			}
		}
		return 0, false
	}
	if !v.IsObject() {
		return 0, false
	}

	// Keys starting with @ read as gjson modifiers in paths, so use the map.
	fields := v.Map()

	if graph := fields["@graph"]; graph.IsArray() {
		if p, ok := productPrice(graph); ok {
			return p, true
		}
	}

	if !isProduct(fields["@type"]) {
		return 0, false
	}

	offers := fields["offers"]
	if offers.IsArray() {
		items := offers.Array()
		if len(items) == 0 {
			return 0, false
		}
		offers = items[0]
	}
	if !offers.Exists() {
		return 0, false
	}
	return numeric(offers.Get("price"))
}

func isProduct(t gjson.Result) bool {
	if t.IsArray() {
		for _, item := range t.Array() {
			if item.String() == "Product" {
				return true
			}
		}
		return false
	}
	return t.String() == "Product"
}

// numeric reads a JSON number or numeric string.
func numeric(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Float(), v.Float() > 0
	case gjson.String:
		return parseAmount(v.String())
	default:
		return 0, false
	}
}
