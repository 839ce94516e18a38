package pricesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/price"
)

var (
	// ErrInvalidProduct wraps product-level validation failures.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrAmazonNotConfigured is returned for every ASIN lookup until a
	// credentialed marketplace integration exists.
	ErrAmazonNotConfigured = errors.New("amazon price lookup requires marketplace API credentials, which are not configured")
)

// PriceFetcher fetches and extracts the price of a web page.
type PriceFetcher interface {
	FetchPrice(ctx context.Context, url string) (price.Result, error)
}

// ASINFetcher looks up a marketplace price by ASIN.
type ASINFetcher interface {
	FetchASIN(ctx context.Context, asin string) (float64, error)
}

// AmazonFetcher is the placeholder marketplace integration.
type AmazonFetcher struct{}

// FetchASIN always fails with ErrAmazonNotConfigured.
func (AmazonFetcher) FetchASIN(_ context.Context, asin string) (float64, error) {
	return 0, ErrAmazonNotConfigured
}

// Syncer refreshes external prices.
type Syncer struct {
	prices   PriceFetcher
	amazon   ASINFetcher
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithASINFetcher replaces the marketplace fetcher.
func WithASINFetcher(f ASINFetcher) Option {
	return func(s *Syncer) {
		s.amazon = f
	}
}

// WithClock overrides the time source used for LastFetched.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) {
		s.now = now
	}
}

// NewSyncer creates a syncer that fetches web sources through prices.
func NewSyncer(prices PriceFetcher, opts ...Option) *Syncer {
	s := &Syncer{
		prices:   prices,
		amazon:   AmazonFetcher{},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type outcome struct {
	price float64
	err   error
}

// Sync refreshes every source of p in order and returns the updated entries.
// A failing source records its error and keeps its previous CurrentPrice;
// it never stops the remaining sources. p itself is not modified.
func (s *Syncer) Sync(ctx context.Context, p Product) ([]ExternalPrice, error) {
	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	log := logger.FromContext(ctx).With("product", p.ID)
	seen := make(map[string]outcome)
	out := make([]ExternalPrice, len(p.ExternalPrices))

	for i, src := range p.ExternalPrices {
		ep := src
		if src.CurrentPrice != nil {
			v := *src.CurrentPrice
			ep.CurrentPrice = &v
		}

		res := s.fetch(ctx, src, seen)
		ep.LastFetched = s.now()
		if res.err != nil {
			ep.Error = res.err.Error()
			logger.WarnContext(ctx, "price source failed",
				"product", p.ID,
				"channel", src.Channel,
				"source", src.Source(),
				"error", res.err)
		} else {
			v := res.price
			ep.CurrentPrice = &v
			ep.Error = ""
		}
		ep.Reconcile(p.BasePrice)
		out[i] = ep
	}

	log.Debug("price sync complete", "sources", len(out), "fetched", len(seen))
	return out, nil
}

// fetch resolves one source, reusing the result of an identical source
// already fetched during this call.
func (s *Syncer) fetch(ctx context.Context, src ExternalPrice, seen map[string]outcome) outcome {
	if err := s.validate.Struct(src); err != nil {
		return outcome{err: fmt.Errorf("invalid price source: %w", err)}
	}

	key := string(src.Channel) + "|" + src.Source()
	if src.Channel != ChannelAmazon {
		key = "url|" + src.URL
	}
	if res, ok := seen[key]; ok {
		return res
	}

	var res outcome
	if src.Channel == ChannelAmazon {
		res.price, res.err = s.amazon.FetchASIN(ctx, src.ASIN)
	} else {
		res = s.fetchPage(ctx, src.URL)
	}
	seen[key] = res
	return res
}

func (s *Syncer) fetchPage(ctx context.Context, url string) outcome {
	r, err := s.prices.FetchPrice(ctx, url)
	if err != nil {
		return outcome{err: fmt.Errorf("failed to fetch price: %w", err)}
	}
	if !r.Found() {
		msg := r.Error
		if msg == "" {
			msg = price.ErrNotFound
		}
		return outcome{err: errors.New(msg)}
	}
	return outcome{price: r.Price}
}
