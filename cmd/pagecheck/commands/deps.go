package commands

import (
	"fmt"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/config"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/dom"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/fetcher"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/price"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/pricesync"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/render"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/rules"
)

func newFetcher(cfg *config.Config) (*fetcher.StaticFetcher, error) {
	maxBody, err := cfg.Fetch.MaxBodyBytes()
	if err != nil {
		return nil, fmt.Errorf("invalid fetch.max_body_size: %w", err)
	}
	return fetcher.NewStatic(fetcher.StaticConfig{
		UserAgent:   cfg.Fetch.UserAgent,
		Timeout:     cfg.Fetch.Timeout,
		MaxBodySize: maxBody,
	}), nil
}

func fetchOptions(cfg *config.Config) fetcher.Options {
	return fetcher.Options{Headers: cfg.Fetch.Headers}
}

func newPriceClient(cfg *config.Config, f fetcher.Fetcher) *price.Client {
	return price.NewClient(f,
		price.WithPlatformHosts(cfg.Price.PlatformHosts),
		price.WithFetchOptions(fetchOptions(cfg)),
	)
}

func newSyncer(prices pricesync.PriceFetcher) *pricesync.Syncer {
	return pricesync.NewSyncer(prices)
}

func newRenderer(cfg *config.Config) *render.Renderer {
	return render.New(render.Config{
		Timeout:        cfg.Render.Timeout,
		ChromePath:     cfg.Render.ChromePath,
		UserAgent:      cfg.Render.UserAgent,
		ViewportWidth:  cfg.Render.ViewportWidth,
		ViewportHeight: cfg.Render.ViewportHeight,
	})
}

func newEngine(cfg *config.Config) *rules.Engine {
	return rules.NewEngine(rules.Config{
		AddressLines: cfg.Rules.AddressLines,
		PositionMode: dom.Mode(cfg.Rules.PositionMode),
	})
}
