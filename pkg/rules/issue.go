// Package rules runs content, compliance and SEO checks against a rendered
// page and reports each violation with its on-page position.
package rules

import (
	"fmt"

	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/dom"
)

// Kind identifies the check that produced an Issue.
type Kind string

const (
	KindSpelling          Kind = "spelling"
	KindDiseaseClaim      Kind = "disease-claim"
	KindAddress           Kind = "address"
	KindCapitalization    Kind = "capitalization"
	KindProhibitedPhrase  Kind = "prohibited-phrase"
	KindMissingDisclaimer Kind = "missing-disclaimer"
	KindMissingQualifier  Kind = "missing-qualifier"
	KindBranding          Kind = "branding"
	KindAccessibility     Kind = "accessibility"
	KindSEO               Kind = "seo"
)

// Severity of an Issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Category groups issues for reporting.
type Category string

const (
	CategoryContent    Category = "Content"
	CategoryCompliance Category = "Compliance"
	CategorySEO        Category = "SEO"
)

// Issue is a single detected violation.
type Issue struct {
	Kind     Kind         `json:"kind" yaml:"kind"`
	Severity Severity     `json:"severity" yaml:"severity"`
	Category Category     `json:"category" yaml:"category"`
	Message  string       `json:"message" yaml:"message"`
	Context  string       `json:"context" yaml:"context"`
	Position dom.Position `json:"position" yaml:"position"`
}

// Header implements output.Tabular.
func (Issue) Header() []string {
	return []string{"SEVERITY", "CATEGORY", "KIND", "POSITION", "MESSAGE"}
}

// Row implements output.Tabular.
func (i Issue) Row() []string {
	return []string{
		string(i.Severity),
		string(i.Category),
		string(i.Kind),
		fmt.Sprintf("%.0f%%,%.0f%%", i.Position.X, i.Position.Y),
		i.Message,
	}
}
