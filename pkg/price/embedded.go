package price

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
)

var (
	productAssignment = regexp.MustCompile(`\bproduct\s*=\s*\{`)
	bareKey           = regexp.MustCompile(`([{,]\s*)([A-Za-z_$][\w$]*)\s*:`)
)

// fromEmbeddedProduct reads an inline `product = {...}` assignment, as
// storefront themes emit for their product JSON.
func fromEmbeddedProduct(in Input) (float64, bool) {
	for _, loc := range productAssignment.FindAllStringIndex(in.HTML, -1) {
		open := loc[1] - 1
		obj, ok := balancedObject(in.HTML, open)
		if !ok {
			continue
		}
		v, ok := parseLoose(obj)
		if !ok {
			logger.Debug("skipping unparseable embedded product object", "offset", open)
			continue
		}

		pv := v.Get("price")
		if !pv.Exists() {
			pv = v.Get("variants.0.price")
		}
		if p, ok := minorUnits(pv); ok {
			return p, true
		}
	}
	return 0, false
}

// parseLoose parses obj as JSON, retrying once with bare object keys quoted.
func parseLoose(obj string) (gjson.Result, bool) {
	if gjson.Valid(obj) {
		return gjson.Parse(obj), true
	}
	quoted := quoteKeys(obj)
	if gjson.Valid(quoted) {
		return gjson.Parse(quoted), true
	}
	return gjson.Result{}, false
}

// minorUnits converts a platform price to currency units. Whole numbers are
// cents; values written with a decimal point are already in currency units.
func minorUnits(v gjson.Result) (float64, bool) {
	var raw string
	switch v.Type {
	case gjson.Number:
		raw = v.Raw
	case gjson.String:
		raw = v.String()
	default:
		return 0, false
	}

	p, ok := parseAmount(raw)
	if !ok {
		return 0, false
	}
	if !strings.Contains(raw, ".") {
		p /= 100
	}
	return p, true
}

// quoteKeys quotes bare object keys outside string literals.
func quoteKeys(obj string) string {
	var sb strings.Builder
	seg := 0
	for i := 0; i < len(obj); i++ {
		if obj[i] != '"' && obj[i] != '\'' {
			continue
		}
		end := skipQuoted(obj, i)
		sb.WriteString(bareKey.ReplaceAllString(obj[seg:i], `$1"$2":`))
		sb.WriteString(obj[i:end])
		seg = end
		i = end - 1
	}
	sb.WriteString(bareKey.ReplaceAllString(obj[seg:], `$1"$2":`))
	return sb.String()
}

// skipQuoted returns the index just past the string literal opening at
// s[open], or len(s) when it is unterminated.
func skipQuoted(s string, open int) int {
	quote := s[open]
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(s)
}

// balancedObject returns the {...} literal starting at s[open], honouring
// quoted strings.
func balancedObject(s string, open int) (string, bool) {
	if open < 0 || open >= len(s) || s[open] != '{' {
		return "", false
	}

	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			i = skipQuoted(s, i) - 1
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[open : i+1], true
			}
		}
	}
	return "", false
}
