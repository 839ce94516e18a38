package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
	"github.com/shelbytessier/nativepath-promotions-sub001/internal/output"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/rules"
)

// analysis is the per-URL result written by the analyze command.
type analysis struct {
	URL      string        `json:"url" yaml:"url"`
	BodyText string        `json:"bodyText,omitempty" yaml:"bodyText,omitempty"`
	Issues   []rules.Issue `json:"issues" yaml:"issues"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Check rendered pages for compliance issues",
	Long: `Render each URL in headless Chrome and run the compliance rules.

Rules can be disabled by kind (spelling, disease-claim, address,
capitalization, prohibited-phrase, missing-disclaimer, missing-qualifier,
branding, accessibility, seo) or by category (content, compliance, seo).

Examples:
  pagecheck analyze -u "https://example.com/landing"
  pagecheck analyze -u "https://example.com/a" -u "https://example.com/b" \
      --disable seo,accessibility --format text`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	flags := analyzeCmd.Flags()
	flags.StringSliceP("url", "u", nil, "URL(s) to analyze (can be repeated)")
	flags.String("format", "json", "output format: json, jsonl, yaml, text")
	flags.StringSlice("disable", nil, "rule kinds or categories to skip")
	flags.String("position-mode", "", "position mapping: full or vertical")
	flags.Duration("timeout", 0, "render timeout (default from config, 30s)")

	_ = analyzeCmd.MarkFlagRequired("url")

	_ = viper.BindPFlag("rules.position_mode", flags.Lookup("position-mode"))
	_ = viper.BindPFlag("render.timeout", flags.Lookup("timeout"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	urls, _ := flags.GetStringSlice("url")
	formatName, _ := flags.GetString("format")
	disabled, _ := flags.GetStringSlice("disable")

	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}
	checks := make(rules.Checks, len(disabled))
	for _, d := range disabled {
		checks[strings.ToLower(strings.TrimSpace(d))] = false
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	renderer := newRenderer(cfg)
	engine := newEngine(cfg)

	w, err := output.New(os.Stdout, format)
	if err != nil {
		return err
	}

	failed := 0
	for _, u := range urls {
		logInfo("Analyzing %s", u)
		result := analysis{URL: u, Issues: []rules.Issue{}}

		page, err := renderer.Render(ctx, u)
		if err != nil {
			logger.Error("analysis failed", "url", u, "error", err)
			result.Error = err.Error()
			failed++
		} else {
			result.BodyText = page.BodyText
			result.Issues = engine.Evaluate(page.Document, checks)
			logInfo("  %d issue(s)", len(result.Issues))
		}

		if format == output.FormatText {
			for _, issue := range result.Issues {
				if err := w.Write(issue); err != nil {
					return err
				}
			}
			continue
		}
		if err := w.Write(result); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if failed == len(urls) {
		return fmt.Errorf("analysis failed for all %d URL(s)", failed)
	}
	return nil
}
