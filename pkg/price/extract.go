// Package price reduces raw product-page HTML to a single canonical price.
//
// Extraction runs an ordered chain of strategies and stops at the first one
// that yields a positive number:
//
//  1. structured data (application/ld+json Product/Offer records)
//  2. platform markup patterns (platform sources only)
//  3. embedded product object (platform sources only)
//  4. generic price patterns
//
// A Result with Price == 0 and a non-empty Error means nothing was found; it
// is not a transport failure.
package price

import (
	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
)

// ErrNotFound is the message reported when every strategy is exhausted.
const ErrNotFound = "could not find a price on the page"

// GenericMaxPrice rejects implausible values from generic sources.
const GenericMaxPrice = 10000.0

// Result is the outcome of an extraction.
type Result struct {
	Price    float64 `json:"price" yaml:"price"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
	Strategy string  `json:"-" yaml:"-"`
}

// Found reports whether a price was extracted.
func (r Result) Found() bool {
	return r.Price > 0 && r.Error == ""
}

// Input is what each strategy sees.
type Input struct {
	HTML     string
	Platform bool
}

// Strategy is one step of the fallback chain. Extract returns the price and
// true on success.
type Strategy struct {
	Name         string
	PlatformOnly bool
	Extract      func(in Input) (float64, bool)
}

// DefaultStrategies returns the extraction chain in order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "structured-data", Extract: fromStructuredData},
		{Name: "platform-markup", PlatformOnly: true, Extract: fromPlatformMarkup},
		{Name: "embedded-product", PlatformOnly: true, Extract: fromEmbeddedProduct},
		{Name: "generic-patterns", Extract: fromGenericPatterns},
	}
}

// Extractor runs a strategy chain.
type Extractor struct {
	strategies []Strategy
}

// NewExtractor creates an extractor; with no strategies the default chain is used.
func NewExtractor(strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Extractor{strategies: strategies}
}

// Extract returns the first positive price found by the chain.
func (e *Extractor) Extract(html string, platform bool) Result {
	in := Input{HTML: html, Platform: platform}

	for _, s := range e.strategies {
		if s.PlatformOnly && !platform {
			continue
		}
		p, ok := s.Extract(in)
		if ok && p > 0 {
			logger.Debug("price extracted", "strategy", s.Name, "price", p, "platform", platform)
			return Result{Price: p, Strategy: s.Name}
		}
		logger.Debug("price strategy missed", "strategy", s.Name)
	}

	return Result{Price: 0, Error: ErrNotFound}
}

var defaultExtractor = NewExtractor()

// Extract runs the default chain.
func Extract(html string, platform bool) Result {
	return defaultExtractor.Extract(html, platform)
}
