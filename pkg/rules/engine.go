package rules

import (
	"fmt"
	"strings"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/dom"
)

// Config tunes the default rule set.
type Config struct {
	// AddressLines are the approved footer address fragments
	// (default: DefaultAddressLines).
	AddressLines []string

	// PositionMode selects full or vertical position mapping (default: full).
	PositionMode dom.Mode
}

func (c Config) addressLines() []string {
	if len(c.AddressLines) == 0 {
		return DefaultAddressLines
	}
	return c.AddressLines
}

// Checks toggles rules by kind or lower-cased category. Rules default to
// enabled; only an explicit false disables one.
type Checks map[string]bool

// Enabled reports whether r should run.
func (c Checks) Enabled(r Rule) bool {
	if v, ok := c[string(r.Kind)]; ok && !v {
		return false
	}
	if v, ok := c[strings.ToLower(string(r.Category))]; ok && !v {
		return false
	}
	return true
}

// Engine evaluates an ordered list of rules against a document.
type Engine struct {
	rules  []Rule
	mapper dom.Mapper
}

// NewEngine creates an engine with the default rule set.
func NewEngine(cfg Config) *Engine {
	mode := cfg.PositionMode
	if mode == "" {
		mode = dom.ModeFull
	}
	return New(dom.Mapper{Mode: mode}, DefaultRules(cfg)...)
}

// New creates an engine with an explicit rule list.
func New(mapper dom.Mapper, rules ...Rule) *Engine {
	return &Engine{rules: rules, mapper: mapper}
}

// Evaluate runs every enabled rule and returns the issues in rule order.
// A failing rule contributes nothing and does not stop the others.
func (e *Engine) Evaluate(doc dom.Document, checks Checks) []Issue {
	page := NewPage(doc)
	issues := make([]Issue, 0)

	for _, r := range e.rules {
		if !checks.Enabled(r) {
			logger.Debug("rule disabled", "kind", r.Kind)
			continue
		}

		findings, err := run(r, page)
		if err != nil {
			logger.Warn("rule failed", "kind", r.Kind, "error", err)
			continue
		}

		for _, f := range findings {
			if f.Element == nil || f.Element.Length() == 0 {
				logger.Debug("finding without element dropped", "kind", r.Kind, "message", f.Message)
				continue
			}
			issues = append(issues, Issue{
				Kind:     r.Kind,
				Severity: r.Severity,
				Category: r.Category,
				Message:  f.Message,
				Context:  f.Context,
				Position: e.mapper.Position(doc, f.Element),
			})
		}
	}

	logger.Debug("rules evaluated", "rules", len(e.rules), "issues", len(issues))
	return issues
}

// run invokes a rule's check, converting a panic into an error.
func run(r Rule, p *Page) (findings []Finding, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			findings = nil
			err = fmt.Errorf("check panicked: %v", rec)
		}
	}()
	if r.Check == nil {
		return nil, fmt.Errorf("rule %s has no check", r.Kind)
	}
	return r.Check(p), nil
}
