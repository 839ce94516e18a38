package price

import (
	"regexp"
	"strconv"
	"strings"
)

// Platform storefront markup, tried in order.
var platformPatterns = []*regexp.Regexp{
	// <span class="price-item price-item--sale">$29.99</span>
	regexp.MustCompile(`class="[^"]*price[^"]*"[^>]*>\s*\$?\s*([\d,]+(?:\.\d{2})?)`),
	// data-price="29.99", data-product-price="$29.99"
	regexp.MustCompile(`data-(?:product-)?price="\$?([\d,]+\.\d{2})"`),
	// "price":"29.99" in inline JSON
	regexp.MustCompile(`"price"\s*:\s*"\$?([\d,]+\.\d{2})"`),
	// $29.99 closing a text node
	regexp.MustCompile(`\$\s*([\d,]+\.\d{2})\s*</`),
}

// Generic markup for non-platform pages and the final fallback.
var genericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`<span[^>]*class="[^"]*price[^"]*"[^>]*>\s*\$\s*([\d,]+\.\d{2})`),
	regexp.MustCompile(`<div[^>]*class="[^"]*price[^"]*"[^>]*>[^<]*?\$\s*([\d,]+\.\d{2})`),
	regexp.MustCompile(`\$\s?([\d,]+\.\d{2})`),
}

func fromPlatformMarkup(in Input) (float64, bool) {
	return firstPattern(in.HTML, platformPatterns, 0)
}

func fromGenericPatterns(in Input) (float64, bool) {
	limit := 0.0
	if !in.Platform {
		limit = GenericMaxPrice
	}
	return firstPattern(in.HTML, genericPatterns, limit)
}

// firstPattern returns the value of the first pattern whose last match parses
// to a positive number below limit (0 = no limit). The last match is used
// because storefronts tend to render the original, struck-through price
// before the current one.
func firstPattern(html string, patterns []*regexp.Regexp, limit float64) (float64, bool) {
	for _, re := range patterns {
		matches := re.FindAllStringSubmatch(html, -1)
		if len(matches) == 0 {
			continue
		}
		last := matches[len(matches)-1]
		p, ok := parseAmount(last[1])
		if !ok {
			continue
		}
		if limit > 0 && p >= limit {
			continue
		}
		return p, true
	}
	return 0, false
}

// parseAmount strips everything but digits and the decimal point and parses
// the remainder.
func parseAmount(s string) (float64, bool) {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if clean == "" {
		return 0, false
	}
	p, err := strconv.ParseFloat(clean, 64)
	if err != nil || p <= 0 {
		return 0, false
	}
	return p, true
}
