package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
	"github.com/shelbytessier/nativepath-promotions-sub001/internal/output"
)

// priceLookup is the per-URL result written by the price command.
type priceLookup struct {
	URL      string  `json:"url" yaml:"url"`
	Price    float64 `json:"price" yaml:"price"`
	Strategy string  `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Header implements output.Tabular.
func (priceLookup) Header() []string {
	return []string{"URL", "PRICE", "STRATEGY", "ERROR"}
}

// Row implements output.Tabular.
func (p priceLookup) Row() []string {
	price := ""
	if p.Price > 0 {
		price = fmt.Sprintf("%.2f", p.Price)
	}
	return []string{p.URL, price, p.Strategy, p.Error}
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Extract the current price from product pages",
	Long: `Fetch each URL and extract a single price from its HTML.

Structured data is tried first, then storefront markup (for hosts matching
price.platform_hosts), then generic price patterns.

Examples:
  pagecheck price -u "https://shop.example.com/products/collagen"
  pagecheck price -u "https://a.example.com/p" -u "https://b.example.com/p" --format text`,
	RunE: runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)

	flags := priceCmd.Flags()
	flags.StringSliceP("url", "u", nil, "URL(s) to price (can be repeated)")
	flags.String("format", "json", "output format: json, jsonl, yaml, text")

	_ = priceCmd.MarkFlagRequired("url")
}

func runPrice(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	urls, _ := cmd.Flags().GetStringSlice("url")
	formatName, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	f, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	client := newPriceClient(cfg, f)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w, err := output.New(os.Stdout, format)
	if err != nil {
		return err
	}

	found := 0
	for _, u := range urls {
		logInfo("Fetching price for %s", u)
		lookup := priceLookup{URL: u}

		res, err := client.FetchPrice(ctx, u)
		switch {
		case err != nil:
			logger.Error("price fetch failed", "url", u, "error", err)
			lookup.Error = fmt.Sprintf("failed to fetch price: %v", err)
		case !res.Found():
			lookup.Error = res.Error
		default:
			lookup.Price = res.Price
			lookup.Strategy = res.Strategy
			found++
		}

		if err := w.Write(lookup); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	logInfo("Found %d of %d price(s)", found, len(urls))
	return nil
}
