package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/catalog"
	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
	"github.com/shelbytessier/nativepath-promotions-sub001/internal/output"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/pricesync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh external prices for products in a catalog file",
	Long: `Fetch every external price source of the catalog's products and
compare it with the product's base price.

The catalog is a YAML file:

  products:
    - id: collagen
      name: Collagen Peptides
      basePrice: 39.99
      externalPrices:
        - channel: website
          url: https://shop.example.com/products/collagen
        - channel: amazon
          asin: B00EXAMPLE

Examples:
  pagecheck sync -f products.yaml --format text
  pagecheck sync -f products.yaml --product collagen --write`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	flags := syncCmd.Flags()
	flags.StringP("file", "f", "", "catalog file (YAML)")
	flags.StringSlice("product", nil, "only sync these product ids")
	flags.Bool("write", false, "write refreshed prices back to the catalog")
	flags.String("format", "text", "output format: json, jsonl, yaml, text")

	_ = syncCmd.MarkFlagRequired("file")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	path, _ := flags.GetString("file")
	only, _ := flags.GetStringSlice("product")
	write, _ := flags.GetBool("write")
	formatName, _ := flags.GetString("format")

	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	cat, err := catalog.Open(path)
	if err != nil {
		return err
	}

	products := cat.Products
	if len(only) > 0 {
		products = make([]pricesync.Product, 0, len(only))
		for _, id := range only {
			p, err := cat.Find(id)
			if err != nil {
				return err
			}
			products = append(products, p)
		}
	}

	f, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	syncer := newSyncer(newPriceClient(cfg, f))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w, err := output.New(os.Stdout, format)
	if err != nil {
		return err
	}

	mismatches := 0
	for _, p := range products {
		logInfo("Syncing %s (%d source(s))", p.ID, len(p.ExternalPrices))

		prices, err := syncer.Sync(ctx, p)
		if err != nil {
			logger.Error("sync failed", "product", p.ID, "error", err)
			return err
		}
		if err := cat.Update(p.ID, prices); err != nil {
			return err
		}

		if format == output.FormatText {
			for _, ep := range prices {
				if !ep.IsMatch {
					mismatches++
				}
				if err := w.Write(ep); err != nil {
					return err
				}
			}
			continue
		}
		p.ExternalPrices = prices
		for _, ep := range prices {
			if !ep.IsMatch {
				mismatches++
			}
		}
		if err := w.Write(p); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	logInfo("%d source(s) off base price or unavailable", mismatches)

	if write {
		if err := cat.Save(); err != nil {
			return err
		}
		logInfo("Saved %s", path)
	}
	return nil
}
