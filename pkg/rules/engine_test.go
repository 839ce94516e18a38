package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/dom"
)

// readTestdata reads a file from the testdata directory
func readTestdata(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to read testdata %s: %v", filename, err)
	}
	return string(data)
}

func parse(t *testing.T, source string, opts ...dom.Option) dom.Document {
	t.Helper()
	doc, err := dom.Parse(source, opts...)
	if err != nil {
		t.Fatalf("dom.Parse() error = %v", err)
	}
	return doc
}

func evaluate(t *testing.T, source string) []Issue {
	t.Helper()
	return NewEngine(Config{}).Evaluate(parse(t, source), nil)
}

func ofKind(issues []Issue, kind Kind) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

func page(body string) string {
	return "<html><head><title>t</title></head><body>" + body + "</body></html>"
}

// --- Engine Tests ---

func TestEvaluate_CompliantPageHasNoIssues(t *testing.T) {
	issues := evaluate(t, readTestdata(t, "compliant.html"))
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %d: %+v", len(issues), issues)
	}
}

func TestEvaluate_ViolationsPageOrder(t *testing.T) {
	issues := evaluate(t, readTestdata(t, "violations.html"))

	want := []Kind{
		KindSpelling,
		KindDiseaseClaim,
		KindAddress,
		KindCapitalization,
		KindProhibitedPhrase,
		KindMissingDisclaimer,
		KindMissingQualifier,
		KindBranding,
		KindAccessibility,
		KindSEO,
	}
	if len(issues) != len(want) {
		t.Fatalf("expected %d issues, got %d: %+v", len(want), len(issues), issues)
	}
	for i, k := range want {
		if issues[i].Kind != k {
			t.Errorf("issue %d: expected kind %s, got %s", i, k, issues[i].Kind)
		}
	}
}

func TestEvaluate_EmptyResultIsNotNil(t *testing.T) {
	issues := NewEngine(Config{}).Evaluate(parse(t, page("<p>hello</p>")), nil)
	if issues == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestEvaluate_PanickingRuleIsIsolated(t *testing.T) {
	boom := Rule{
		Kind:     KindSpelling,
		Severity: SeverityCritical,
		Category: CategoryContent,
		Check:    func(*Page) []Finding { panic("boom") },
	}
	seo := DefaultRules(Config{})[9]

	e := New(dom.Mapper{Mode: dom.ModeFull}, boom, seo)
	issues := e.Evaluate(parse(t, page("<h1>a</h1><h1>b</h1>")), nil)

	if len(issues) != 1 || issues[0].Kind != KindSEO {
		t.Errorf("expected only the seo issue, got %+v", issues)
	}
}

func TestEvaluate_NilCheckIsIsolated(t *testing.T) {
	e := New(dom.Mapper{}, Rule{Kind: KindBranding}, DefaultRules(Config{})[9])
	issues := e.Evaluate(parse(t, page("<h1>a</h1><h1>b</h1>")), nil)
	if len(issues) != 1 {
		t.Errorf("expected 1 issue, got %d", len(issues))
	}
}

func TestEvaluate_UnlocatableFindingDropped(t *testing.T) {
	// The page text contains "Native Path" but no single text node does.
	issues := evaluate(t, page("<p>Native <b>Path</b> collagen</p>"))
	if got := ofKind(issues, KindBranding); len(got) != 0 {
		t.Errorf("expected no branding issue, got %+v", got)
	}
}

func TestEvaluate_ChecksDisableByKindAndCategory(t *testing.T) {
	source := readTestdata(t, "violations.html")
	e := NewEngine(Config{})

	issues := e.Evaluate(parse(t, source), Checks{"spelling": false, "seo": false})
	if len(ofKind(issues, KindSpelling)) != 0 {
		t.Error("spelling should be disabled")
	}
	// "seo" disables both the seo kind and the SEO category.
	if len(ofKind(issues, KindSEO)) != 0 || len(ofKind(issues, KindAccessibility)) != 0 {
		t.Error("SEO category should be disabled")
	}
	if len(ofKind(issues, KindBranding)) != 1 {
		t.Error("branding should still run")
	}

	issues = e.Evaluate(parse(t, source), Checks{"compliance": false, "branding": true})
	for _, i := range issues {
		if i.Category == CategoryCompliance {
			t.Errorf("compliance issue emitted while disabled: %+v", i)
		}
	}
}

func TestEvaluate_PositionsWithinBand(t *testing.T) {
	source := `<html data-pagecheck-node="0"><body data-pagecheck-node="1">
		<h1 data-pagecheck-node="2">Top</h1>
		<h1 data-pagecheck-node="3">Bottom</h1>
		<img data-pagecheck-node="4" src="/a.png">
	</body></html>`
	doc := parse(t, source, dom.WithGeometry(dom.Geometry{
		Scroll: dom.Scroll{Width: 1200, Height: 3000},
		Rects: []dom.Rect{
			{}, {},
			{X: 0, Y: 0},
			{X: 1190, Y: 2990},
			{X: -40, Y: 100000},
		},
	}))

	issues := NewEngine(Config{}).Evaluate(doc, nil)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", issues)
	}
	for _, i := range issues {
		if i.Position.X < dom.MinX || i.Position.X > dom.MaxX || i.Position.Y < dom.MinY || i.Position.Y > dom.MaxY {
			t.Errorf("%s position out of band: %+v", i.Kind, i.Position)
		}
	}
	seo := ofKind(issues, KindSEO)[0]
	if seo.Position.X != dom.MaxX || seo.Position.Y != dom.MaxY {
		t.Errorf("expected second h1 at bottom-right band, got %+v", seo.Position)
	}
}

func TestEvaluate_VerticalMode(t *testing.T) {
	e := NewEngine(Config{PositionMode: dom.ModeVertical})
	issues := e.Evaluate(parse(t, page("<h1>a</h1><h1>b</h1>")), nil)
	if len(issues) != 1 || issues[0].Position.X != dom.CenterX {
		t.Errorf("expected x fixed at %v, got %+v", dom.CenterX, issues)
	}
}

// --- Individual Rule Tests ---

func TestSpelling_NoFalsePositives(t *testing.T) {
	for _, c := range Misspellings {
		issues := evaluate(t, page("<p>We "+c.Right+" every order.</p>"))
		if got := ofKind(issues, KindSpelling); len(got) != 0 {
			t.Errorf("%q: unexpected spelling issues %+v", c.Right, got)
		}
	}
}

func TestSpelling_OneIssuePerMisspelling(t *testing.T) {
	for _, c := range Misspellings {
		issues := evaluate(t, page("<p>You will "+c.Wrong+" it.</p><p>Again: "+c.Wrong+".</p>"))
		got := ofKind(issues, KindSpelling)
		if len(got) != 1 {
			t.Errorf("%q: expected 1 issue, got %d", c.Wrong, len(got))
			continue
		}
		if got[0].Severity != SeverityCritical {
			t.Errorf("%q: expected critical severity", c.Wrong)
		}
		if !strings.Contains(got[0].Message, c.Right) {
			t.Errorf("%q: message %q does not reference %q", c.Wrong, got[0].Message, c.Right)
		}
	}
}

func TestSpelling_CaseInsensitive(t *testing.T) {
	issues := evaluate(t, page("<p>RECIEVE your bottle</p>"))
	if len(ofKind(issues, KindSpelling)) != 1 {
		t.Errorf("expected uppercase misspelling to be detected, got %+v", issues)
	}
}

func TestDiseaseClaims(t *testing.T) {
	issues := evaluate(t, page("<p>This formula cures cancer and treats diabetes.</p>"))
	got := ofKind(issues, KindDiseaseClaim)
	if len(got) != 2 {
		t.Fatalf("expected 2 disease claim issues, got %+v", got)
	}
	for _, i := range got {
		if i.Severity != SeverityCritical || i.Category != CategoryCompliance {
			t.Errorf("unexpected severity/category: %+v", i)
		}
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"wrong address in footer", `<main>x</main><footer><p>123 Main Street, Springfield</p></footer>`, 1},
		{"approved PO box", `<footer><p>NativePath, PO Box 1208</p><p>123 Main Street</p></footer>`, 0},
		{"approved city line", `<footer><p>Boise, ID 83701</p><p>99 Elm Road</p></footer>`, 0},
		{"no address-like text", `<footer><p>Copyright NativePath</p></footer>`, 0},
		{"lowercase after number", `<footer><p>open 24 hours</p></footer>`, 0},
		{"no footer uses body", `<p>Visit us at 742 Evergreen Terrace</p>`, 1},
		{"inline boundary adds no space", `<footer><p>Copyright 2024<a href="/">NativePath</a> LLC</p></footer>`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ofKind(evaluate(t, page(tt.body)), KindAddress)
			if len(got) != tt.want {
				t.Fatalf("expected %d address issues, got %+v", tt.want, got)
			}
			if tt.want == 1 && got[0].Severity != SeverityCritical {
				t.Errorf("expected critical, got %s", got[0].Severity)
			}
		})
	}
}

func TestAddress_MessageListsApprovedLines(t *testing.T) {
	got := ofKind(evaluate(t, page(`<footer><p>123 Main Street</p></footer>`)), KindAddress)
	if len(got) != 1 {
		t.Fatalf("expected 1 address issue, got %+v", got)
	}
	want := `(expected "PO Box 1208" or "Boise, ID 83701")`
	if !strings.Contains(got[0].Message, want) {
		t.Errorf("Message = %q, want it to contain %q", got[0].Message, want)
	}
	if strings.Contains(got[0].Message, `\`) {
		t.Errorf("Message contains escaped quotes: %q", got[0].Message)
	}
}

func TestAddress_CustomLines(t *testing.T) {
	e := NewEngine(Config{AddressLines: []string{"1 Infinite Loop"}})
	issues := e.Evaluate(parse(t, page(`<footer>1 Infinite Loop, Cupertino</footer>`)), nil)
	if len(ofKind(issues, KindAddress)) != 0 {
		t.Error("configured address should satisfy the rule")
	}
}

func TestThePathCapitalization(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"lowercase", `<p>Start on the path to wellness</p>`, 1},
		{"mixed case", `<p>Start on THE PATH to wellness</p>`, 1},
		{"proper", `<p>Start on The Path to wellness</p>`, 0},
		{"element already has proper form", `<p>The Path is simple: walk the path daily</p>`, 0},
		{"pathway is not the phrase", `<p>the pathway home</p>`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ofKind(evaluate(t, page(tt.body)), KindCapitalization)
			if len(got) != tt.want {
				t.Errorf("expected %d issues, got %+v", tt.want, got)
			}
		})
	}
}

func TestBreakEven(t *testing.T) {
	for _, phrase := range []string{"break even", "Break-Even", "BREAK EVEN"} {
		got := ofKind(evaluate(t, page("<p>You will "+phrase+" fast</p>")), KindProhibitedPhrase)
		if len(got) != 1 || got[0].Severity != SeverityWarning {
			t.Errorf("%q: expected 1 warning, got %+v", phrase, got)
		}
	}
}

func TestTestimonialDisclaimer(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"review without disclaimer", `<section><h2>Customer Review</h2><p>Loved it</p></section>`, 1},
		{"verified buyer without disclaimer", `<p>Verified Buyer - Jane</p>`, 1},
		{"with results may vary", `<p>Testimonials</p><small>Results may vary.</small>`, 0},
		{"with results not typical", `<p>Testimonial</p><small>Results not typical.</small>`, 0},
		{"no testimonial", `<p>Plain product copy</p>`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ofKind(evaluate(t, page(tt.body)), KindMissingDisclaimer)
			if len(got) != tt.want {
				t.Errorf("expected %d issues, got %+v", tt.want, got)
			}
		})
	}
}

func TestSavingsQualifier(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"percent without qualifier", `<p>Save 20% today</p>`, 1},
		{"dollars off without qualifier", `<p>Get $15 off your order</p>`, 1},
		{"up to", `<p>Save up to 20% today</p><p>Save 20%</p>`, 0},
		{"as low as", `<p>Save 30% - as low as $19 per bottle</p>`, 0},
		{"select bundles", `<p>Save 25% on select bundles</p>`, 0},
		{"no claim", `<p>Great value</p>`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ofKind(evaluate(t, page(tt.body)), KindMissingQualifier)
			if len(got) != tt.want {
				t.Errorf("expected %d issues, got %+v", tt.want, got)
			}
		})
	}
}

func TestBranding(t *testing.T) {
	if got := ofKind(evaluate(t, page(`<p>Welcome to Native Path</p>`)), KindBranding); len(got) != 1 {
		t.Errorf("expected branding issue, got %+v", got)
	}
	if got := ofKind(evaluate(t, page(`<p>Native Path</p><p>NativePath</p>`)), KindBranding); len(got) != 0 {
		t.Errorf("expected no issue when combined form present, got %+v", got)
	}
}

func TestImageAlt(t *testing.T) {
	issues := evaluate(t, page(`<img src="/a.png" alt="A"><img src="/b.png"><img src="/c.png" alt="  ">`))
	got := ofKind(issues, KindAccessibility)
	if len(got) != 1 {
		t.Fatalf("expected 1 issue, got %+v", got)
	}
	if !strings.Contains(got[0].Message, "2 image") {
		t.Errorf("message should report 2 images: %q", got[0].Message)
	}
	if got[0].Context != "/b.png" {
		t.Errorf("context should reference the first image, got %q", got[0].Context)
	}
}

func TestMultipleH1(t *testing.T) {
	got := ofKind(evaluate(t, page(`<h1>First</h1><p>x</p><h1>Second</h1>`)), KindSEO)
	if len(got) != 1 {
		t.Fatalf("expected 1 seo issue, got %+v", got)
	}
	if got[0].Severity != SeverityWarning {
		t.Errorf("expected warning, got %s", got[0].Severity)
	}
	if !strings.Contains(got[0].Message, "(2)") {
		t.Errorf("message should state count 2: %q", got[0].Message)
	}
	if got[0].Context != "Second" {
		t.Errorf("expected context from second h1, got %q", got[0].Context)
	}

	if got := ofKind(evaluate(t, page(`<h1>Only</h1>`)), KindSEO); len(got) != 0 {
		t.Errorf("single h1 should not fire, got %+v", got)
	}
}

// --- Excerpt Tests ---

func TestExcerpt_Bounded(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 40) + "recieve " + strings.Repeat("dolor sit ", 40)
	got := excerpt(long, "recieve")
	if n := len([]rune(got)); n > ContextLength {
		t.Errorf("excerpt has %d runes, want <= %d", n, ContextLength)
	}
	if !strings.Contains(got, "recieve") {
		t.Errorf("excerpt should contain the match: %q", got)
	}
}

func TestExcerpt_CaseFoldingKeepsMatchInWindow(t *testing.T) {
	// Lowercasing İ grows it by a byte, which must not shift the window.
	long := strings.Repeat("İ", 200) + " cures cancer " + strings.Repeat("x ", 100)
	got := excerpt(long, "Cures Cancer")
	if !strings.Contains(got, "cures cancer") {
		t.Errorf("excerpt should contain the match: %q", got)
	}
}

func TestExcerpt_ShortText(t *testing.T) {
	if got := excerpt("  short   text ", "short"); got != "short text" {
		t.Errorf("excerpt() = %q", got)
	}
}

func TestIssue_Row(t *testing.T) {
	i := Issue{Kind: KindSEO, Severity: SeverityWarning, Category: CategorySEO, Message: "m", Position: dom.Position{X: 50, Y: 12.4}}
	row := i.Row()
	if len(row) != len(i.Header()) {
		t.Fatalf("row/header length mismatch: %d vs %d", len(row), len(i.Header()))
	}
	if row[3] != "50%,12%" {
		t.Errorf("position column = %q", row[3])
	}
}
