// Package pricesync refreshes a product's external price sources and
// reconciles each one against the product's base price.
package pricesync

import (
	"fmt"
	"math"
	"time"
)

// Channel identifies where an external price comes from.
type Channel string

const (
	ChannelAmazon      Channel = "amazon"
	ChannelWebsite     Channel = "website"
	ChannelLandingPage Channel = "landing-page"
)

// MatchTolerance is the largest difference still treated as a match.
const MatchTolerance = 0.01

// ExternalPrice is one configured price source for a product. IsMatch and
// Difference are derived by Reconcile and never set directly.
type ExternalPrice struct {
	Channel Channel `json:"channel" yaml:"channel" validate:"required,oneof=amazon website landing-page"`
	URL     string  `json:"url,omitempty" yaml:"url,omitempty" validate:"required_unless=Channel amazon,excluded_if=Channel amazon"`
	ASIN    string  `json:"asin,omitempty" yaml:"asin,omitempty" validate:"required_if=Channel amazon,excluded_unless=Channel amazon"`

	CurrentPrice *float64  `json:"currentPrice,omitempty" yaml:"currentPrice,omitempty"`
	IsMatch      bool      `json:"isMatch" yaml:"isMatch"`
	Difference   *float64  `json:"difference,omitempty" yaml:"difference,omitempty"`
	Error        string    `json:"error,omitempty" yaml:"error,omitempty"`
	LastFetched  time.Time `json:"lastFetched,omitzero" yaml:"lastFetched,omitempty"`
}

// Product is the subset of a catalog product the syncer needs.
type Product struct {
	ID             string          `json:"id" yaml:"id" validate:"required"`
	Name           string          `json:"name,omitempty" yaml:"name,omitempty"`
	BasePrice      float64         `json:"basePrice" yaml:"basePrice" validate:"gte=0"`
	ExternalPrices []ExternalPrice `json:"externalPrices" yaml:"externalPrices"`
}

// Source returns the URL or ASIN the entry is fetched from.
func (e ExternalPrice) Source() string {
	if e.Channel == ChannelAmazon {
		return e.ASIN
	}
	return e.URL
}

// Reconcile recomputes IsMatch and Difference from CurrentPrice.
func (e *ExternalPrice) Reconcile(basePrice float64) {
	if e.CurrentPrice == nil {
		e.IsMatch = false
		e.Difference = nil
		return
	}
	d := *e.CurrentPrice - basePrice
	e.Difference = &d
	e.IsMatch = math.Abs(d) < MatchTolerance
}

// Header implements output.Tabular.
func (e ExternalPrice) Header() []string {
	return []string{"CHANNEL", "SOURCE", "PRICE", "MATCH", "DIFF", "ERROR"}
}

// Row implements output.Tabular.
func (e ExternalPrice) Row() []string {
	price, diff := "-", "-"
	if e.CurrentPrice != nil {
		price = fmt.Sprintf("%.2f", *e.CurrentPrice)
	}
	if e.Difference != nil {
		diff = fmt.Sprintf("%+.2f", *e.Difference)
	}
	return []string{
		string(e.Channel),
		e.Source(),
		price,
		fmt.Sprintf("%t", e.IsMatch),
		diff,
		e.Error,
	}
}
