// Package commands implements the CLI commands for pagecheck.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/config"
	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pagecheck",
	Short: "Compliance checks and price extraction for product pages",
	Long: `Pagecheck renders product and landing pages in headless Chrome, checks
them against content and compliance rules, and extracts prices from
storefront HTML.

Examples:
  # Check a landing page for compliance issues
  pagecheck analyze -u "https://example.com/landing" --format text

  # Extract the current price of a product page
  pagecheck price -u "https://example.com/products/collagen"

  # Refresh every external price in a catalog file and save the results
  pagecheck sync -f products.yaml --write

  # Run the HTTP API
  pagecheck serve --addr :8080`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default ./.pagecheck.yaml or $HOME/.pagecheck.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	config.Configure(viper.GetViper(), viper.GetString("config"))
}

// loadConfig reads and validates configuration, then initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
	})
	logger.Debug("configuration loaded", "file", viper.ConfigFileUsed())
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
