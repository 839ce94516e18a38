package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/dom"
)

// DefaultRules returns the check list in evaluation order.
func DefaultRules(cfg Config) []Rule {
	return []Rule{
		{Kind: KindSpelling, Severity: SeverityCritical, Category: CategoryContent, Check: checkSpelling},
		{Kind: KindDiseaseClaim, Severity: SeverityCritical, Category: CategoryCompliance, Check: checkDiseaseClaims},
		{Kind: KindAddress, Severity: SeverityCritical, Category: CategoryCompliance, Check: addressCheck(cfg.addressLines())},
		{Kind: KindCapitalization, Severity: SeverityWarning, Category: CategoryContent, Check: checkThePath},
		{Kind: KindProhibitedPhrase, Severity: SeverityWarning, Category: CategoryCompliance, Check: checkBreakEven},
		{Kind: KindMissingDisclaimer, Severity: SeverityCritical, Category: CategoryCompliance, Check: checkTestimonialDisclaimer},
		{Kind: KindMissingQualifier, Severity: SeverityWarning, Category: CategoryCompliance, Check: checkSavingsQualifier},
		{Kind: KindBranding, Severity: SeverityWarning, Category: CategoryContent, Check: checkBranding},
		{Kind: KindAccessibility, Severity: SeverityWarning, Category: CategorySEO, Check: checkImageAlt},
		{Kind: KindSEO, Severity: SeverityWarning, Category: CategorySEO, Check: checkMultipleH1},
	}
}

func checkSpelling(p *Page) []Finding {
	var out []Finding
	for _, c := range Misspellings {
		if !p.Contains(c.Wrong) {
			continue
		}
		out = append(out, Finding{
			Message: fmt.Sprintf("Spelling error: %q should be %q", c.Wrong, c.Right),
			Context: p.Excerpt(c.Wrong),
			Element: p.Locate(c.Wrong),
		})
	}
	return out
}

func checkDiseaseClaims(p *Page) []Finding {
	var out []Finding
	for _, term := range DiseaseClaims {
		if !p.Contains(term) {
			continue
		}
		out = append(out, Finding{
			Message: fmt.Sprintf("Prohibited disease claim: %q", term),
			Context: p.Excerpt(term),
			Element: p.Locate(term),
		})
	}
	return out
}

func addressCheck(lines []string) func(*Page) []Finding {
	return func(p *Page) []Finding {
		if len(lines) == 0 {
			return nil
		}

		footer := p.Doc.Find("footer").First()
		if footer.Length() == 0 {
			footer = p.Doc.Body()
		}
		text := dom.VisibleText(footer)
		lower := strings.ToLower(text)
		for _, line := range lines {
			if strings.Contains(lower, strings.ToLower(line)) {
				return nil
			}
		}

		match := addressPattern.FindString(text)
		if match == "" {
			return nil
		}
		el := dom.FindFirstWithin(footer, match)
		if el == nil {
			el = footer
		}
		expected := make([]string, len(lines))
		for i, line := range lines {
			expected[i] = strconv.Quote(line)
		}
		return []Finding{{
			Message: fmt.Sprintf("Footer address does not match the approved company address (expected %s)", strings.Join(expected, " or ")),
			Context: excerpt(text, match),
			Element: el,
		}}
	}
}

func checkThePath(p *Page) []Finding {
	var wrong string
	for _, m := range thePathPattern.FindAllString(p.Text, -1) {
		if m != ThePath {
			wrong = m
			break
		}
	}
	if wrong == "" {
		return nil
	}

	el := dom.FindFirstMatching(p.Doc.Body(), func(s string) bool {
		return strings.Contains(s, wrong)
	})
	if el == nil || strings.Contains(el.Text(), ThePath) {
		return nil
	}
	return []Finding{{
		Message: fmt.Sprintf("%q should be capitalized as %q", wrong, ThePath),
		Context: p.Excerpt(wrong),
		Element: el,
	}}
}

func checkBreakEven(p *Page) []Finding {
	match := breakEvenPattern.FindString(p.Text)
	if match == "" {
		return nil
	}
	return []Finding{{
		Message: fmt.Sprintf("Prohibited phrase %q found", match),
		Context: p.Excerpt(match),
		Element: p.Locate(match),
	}}
}

func checkTestimonialDisclaimer(p *Page) []Finding {
	var trigger string
	for _, t := range TestimonialTriggers {
		if p.Contains(t) {
			trigger = t
			break
		}
	}
	if trigger == "" || p.ContainsAny(TestimonialDisclaimers) {
		return nil
	}
	return []Finding{{
		Message: fmt.Sprintf("Testimonial content (%q) is missing a disclaimer such as %q", trigger, "Results may vary"),
		Context: p.Excerpt(trigger),
		Element: p.Locate(trigger),
	}}
}

func checkSavingsQualifier(p *Page) []Finding {
	claim := savingsPattern.FindString(p.Text)
	if claim == "" || qualifierPattern.MatchString(p.Text) {
		return nil
	}
	return []Finding{{
		Message: fmt.Sprintf("Savings claim %q is missing a qualifier such as \"up to\", \"as low as\" or \"select bundles\"", claim),
		Context: p.Excerpt(claim),
		Element: p.Locate(claim),
	}}
}

func checkBranding(p *Page) []Finding {
	if !p.Contains(BrandSplit) || p.Contains(BrandCombined) {
		return nil
	}
	return []Finding{{
		Message: fmt.Sprintf("Brand name should be written as %q, found %q", BrandCombined, BrandSplit),
		Context: p.Excerpt(BrandSplit),
		Element: p.Locate(BrandSplit),
	}}
}

func checkImageAlt(p *Page) []Finding {
	missing := p.Doc.Find("img").FilterFunction(func(_ int, s *goquery.Selection) bool {
		alt, ok := s.Attr("alt")
		return !ok || strings.TrimSpace(alt) == ""
	})
	n := missing.Length()
	if n == 0 {
		return nil
	}

	first := missing.First()
	src, _ := first.Attr("src")
	return []Finding{{
		Message: fmt.Sprintf("%d image(s) missing alt text", n),
		Context: truncate(src),
		Element: first,
	}}
}

func checkMultipleH1(p *Page) []Finding {
	headings := p.Doc.Find("h1")
	n := headings.Length()
	if n <= 1 {
		return nil
	}

	second := headings.Eq(1)
	return []Finding{{
		Message: fmt.Sprintf("Multiple H1 tags found (%d); pages should have a single H1", n),
		Context: truncate(second.Text()),
		Element: second,
	}}
}
