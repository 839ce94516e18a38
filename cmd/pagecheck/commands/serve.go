package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
	"github.com/shelbytessier/nativepath-promotions-sub001/internal/server"
	"github.com/shelbytessier/nativepath-promotions-sub001/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the page analysis, price and proxy endpoints:

  POST /api/analyze-page   {"url": "...", "checksToRun": {"seo": false}}
  GET  /api/fetch-price?url=...
  GET  /api/proxy-page?url=...
  POST /api/sync-prices    product with externalPrices
  GET  /healthz`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.StringSlice("allowed-origins", nil, "CORS origins; a trailing * matches by prefix")
	flags.Float64("rate-limit", 5, "requests per second per client (0 disables)")

	_ = viper.BindPFlag("server.addr", flags.Lookup("addr"))
	_ = viper.BindPFlag("server.allowed_origins", flags.Lookup("allowed-origins"))
	_ = viper.BindPFlag("server.rate_limit", flags.Lookup("rate-limit"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	prices := newPriceClient(cfg, f)

	srv := server.New(server.Deps{
		Renderer: newRenderer(cfg),
		Prices:   prices,
		Fetcher:  f,
		Syncer:   newSyncer(prices),
		Engine:   newEngine(cfg),
	}, server.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      cfg.Server.RateLimit,
		Burst:          cfg.Server.Burst,
		FetchOptions:   fetchOptions(cfg),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting pagecheck", "version", version.String(), "addr", cfg.Server.Addr)
	return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
}
