package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/noisepop/internal/model"
	"github.com/ppiankov/noisepop/internal/pipeline"
	"github.com/ppiankov/noisepop/internal/summary"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	comma       string
	noCache     bool
	noRobots    bool
	noFooter    bool
	showRecords bool
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [url]",
	Short: "Fetch a noise exposure CSV and print its summary sentence",
	Long: `Summarize fetches the dataset, drops the rollup row, converts "n/a" to
zero and numeric text to integers, then reports the most and least
populated agglomerations and their Lden >= 75dB exposure.

The URL may point at the CSV itself or at an HTML landing page that links
to it. Without an argument, source.url from the configuration is used.

Example:
  noisepop summarize https://data.example.org/noise/agglomerations.csv
  noisepop summarize --json report.json --md report.md --records`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	// Output flags
	summarizeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	summarizeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	summarizeCmd.Flags().BoolVar(&showRecords, "records", false, "pretty-print the most and least populated records")
	summarizeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	summarizeCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall fetch timeout")
	summarizeCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (overrides config)")
	summarizeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max response bytes to read (overrides config)")
	summarizeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	summarizeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "do not consult robots.txt")

	// Parsing flags
	summarizeCmd.Flags().StringVar(&comma, "comma", "", "field separator (overrides config)")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	url := cfg.Source.URL
	if len(args) == 1 {
		url = args[0]
	}
	if url == "" {
		return fmt.Errorf("no dataset URL: pass one as an argument or set source.url")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Summarizing: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", cfg.HTTP.Timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg, logger, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	report, err := p.Run(ctx, url)
	if err != nil {
		logger.Debug("Summarize failed", zap.String("url", url), zap.Error(err))
		if summary.IsDataError(err) {
			return fmt.Errorf("summarize failed: %w (check the columns.* settings against the dataset header)", err)
		}
		return fmt.Errorf("summarize failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Fetched %s (from cache: %v)\n", report.SourceURL, report.FetchMeta.FromCache)
		fmt.Fprintf(os.Stderr, "✓ Kept %d rows with %d columns\n", report.Summary.Rows, report.Summary.Columns)
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, showRecords, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

// applyFlags lets explicitly set flags win over config and environment
func applyFlags(cmd *cobra.Command, cfg *model.Config) {
	f := cmd.Flags()
	if f.Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if f.Changed("ua") && userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if f.Changed("max-bytes") && maxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if f.Changed("comma") {
		cfg.Source.Comma = comma
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = model.DefaultConfig().HTTP.Timeout
	}
}
