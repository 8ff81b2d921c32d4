package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bundlescan/configs"
	"bundlescan/pkg/client"
	"bundlescan/pkg/reporter"
	"bundlescan/pkg/scanner"
	"bundlescan/pkg/utils"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [source]",
	Short: "Scan a bundle with a pattern table",
	Long: `Scan a JavaScript bundle (file path or http(s) URL) with a table of
labeled patterns and keywords, printing the unique matches per label.

The table comes from --config, --preset or ad hoc -e/-k flags; with none of
them the default preset is used:
  bundlescan scan bundle.js
  bundlescan scan bundle.js --preset params
  bundlescan scan bundle.js -e 'Methods=TournamentApi/([a-zA-Z0-9_]+)' --max-len 50
  bundlescan scan https://example.com/static/main.js -k W15 -k M25 --before 80

Each pattern reports its first capture group when it has one, otherwise the
whole match. Keywords report the text surrounding every occurrence.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	addScanFlags(scanCmd)
	rootCmd.AddCommand(scanCmd)
}

// addScanFlags registers the pattern table, report and fetch flags.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("preset", "p", "", "Built-in pattern table (see 'bundlescan presets')")
	cmd.Flags().StringArrayP("pattern", "e", nil, "Ad hoc pattern as 'Label=regex' (repeatable)")
	cmd.Flags().StringArrayP("keyword", "k", nil, "Ad hoc context keyword (repeatable)")
	cmd.Flags().Bool("regex-keywords", false, "Treat -k keywords as regular expressions")
	cmd.Flags().Int("before", scanner.DefaultBefore, "Context bytes before each keyword occurrence")
	cmd.Flags().Int("after", scanner.DefaultAfter, "Context bytes after each keyword occurrence")
	cmd.Flags().Int("max-len", 0, "Drop ad hoc matches of this many characters or more (0 = keep all)")
	cmd.Flags().Bool("case-sensitive", false, "Match case-sensitively (patterns default to case-insensitive)")
	cmd.Flags().Bool("keep-going", false, "Report a broken pattern under its label and continue")
	cmd.Flags().StringP("output", "o", "", "Also write a JSON report to this file")
	cmd.Flags().Bool("no-stats", false, "Do not print the statistics table")
	addFetchFlags(cmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	outputFile, _ := cmd.Flags().GetString("output")
	noStats, _ := cmd.Flags().GetBool("no-stats")

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	source := cfg.Source
	if len(args) > 0 {
		source = args[0]
	}
	if source == "" {
		return errors.New("no source given: pass a file or URL, or set 'source' in the config")
	}

	utils.Info.Printf("Source: %s\n", source)
	utils.Info.Printf("Entries: %d | Case-sensitive: %v | Keep going: %v\n",
		len(cfg.Patterns), cfg.CaseSensitive, cfg.KeepGoing)

	text, err := loadSource(cmd, source, cfg.Fetch)
	if err != nil {
		return err
	}
	utils.Debug.Printf("Loaded %d bytes\n", len(text))

	stats := reporter.NewStats(len(text))
	results, err := scanner.Run(text, cfg.Entries(), scanner.RunOptions{KeepGoing: cfg.KeepGoing})
	if err != nil {
		return err
	}
	stats.Record(results)

	if err := reporter.Print(cmd.OutOrStdout(), cfg.Title, results); err != nil {
		return err
	}

	if !noStats {
		if err := stats.Print(); err != nil {
			utils.Warning.Printf("Failed to render statistics: %v\n", err)
		}
	}

	if outputFile != "" {
		rep := reporter.NewReporter(source)
		rep.AddResults(results...)
		if err := rep.GenerateReport(outputFile); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		utils.Success.Printf("Report saved to %s\n", outputFile)
	}

	if stats.Failed > 0 {
		utils.Warning.Printf("%d entries failed, see the '!!' lines above\n", stats.Failed)
	}
	utils.Debug.Println(stats.Summary())
	return nil
}

// resolveConfig picks the pattern table: --config, then --preset, then the
// ad hoc flags, falling back to the default preset. Flags override the table.
func resolveConfig(cmd *cobra.Command) (*utils.Config, error) {
	preset, _ := cmd.Flags().GetString("preset")
	patterns, _ := cmd.Flags().GetStringArray("pattern")
	keywords, _ := cmd.Flags().GetStringArray("keyword")

	var cfg *utils.Config
	var err error
	switch {
	case cfgFile != "":
		cfg, err = utils.LoadConfig(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		utils.Debug.Printf("Loaded config %s\n", cfgFile)
	case preset != "" || (len(patterns) == 0 && len(keywords) == 0):
		if preset == "" {
			preset = configs.Default
		}
		data, err := configs.Load(preset)
		if err != nil {
			return nil, err
		}
		if cfg, err = utils.ParseConfig(data); err != nil {
			return nil, fmt.Errorf("preset %s: %w", preset, err)
		}
		utils.Debug.Printf("Using preset %s\n", preset)
	default:
		cfg = &utils.Config{Title: "Scan Results:", Fetch: utils.DefaultFetchConfig()}
	}

	adHoc, err := adHocPatterns(cmd, patterns, keywords)
	if err != nil {
		return nil, err
	}
	cfg.Patterns = append(cfg.Patterns, adHoc...)

	if cmd.Flags().Changed("case-sensitive") {
		cfg.CaseSensitive, _ = cmd.Flags().GetBool("case-sensitive")
	}
	if keepGoing, _ := cmd.Flags().GetBool("keep-going"); keepGoing {
		cfg.KeepGoing = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pattern table: %w", err)
	}
	return cfg, nil
}

func adHocPatterns(cmd *cobra.Command, patterns, keywords []string) ([]utils.PatternConfig, error) {
	regexKeywords, _ := cmd.Flags().GetBool("regex-keywords")
	before, _ := cmd.Flags().GetInt("before")
	after, _ := cmd.Flags().GetInt("after")
	maxLen, _ := cmd.Flags().GetInt("max-len")

	if before < 0 || after < 0 {
		return nil, errors.New("--before and --after must not be negative")
	}

	var entries []utils.PatternConfig
	for _, p := range patterns {
		label, expr := splitPattern(p)
		entries = append(entries, utils.PatternConfig{
			Label:   label,
			Pattern: expr,
			Filter:  scanner.Rules{MaxLen: maxLen},
		})
	}
	for _, kw := range keywords {
		entries = append(entries, utils.PatternConfig{
			Label:   kw,
			Keyword: kw,
			Regex:   regexKeywords,
			Before:  &before,
			After:   &after,
		})
	}
	return entries, nil
}

// splitPattern splits "Label=regex". Without a label the pattern names itself.
func splitPattern(s string) (string, string) {
	label, expr, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(label) == "" || expr == "" {
		return s, s
	}
	return strings.TrimSpace(label), expr
}

func loadSource(cmd *cobra.Command, source string, fetch utils.FetchConfig) (string, error) {
	if !client.IsRemote(source) {
		return scanner.Load(source)
	}

	f, err := newFetcher(cmd, fetch)
	if err != nil {
		return "", err
	}
	return fetchWithSpinner(cmd.Context(), f, source)
}

func fetchWithSpinner(ctx context.Context, f *client.Fetcher, url string) (string, error) {
	spinner, _ := pterm.DefaultSpinner.Start("Fetching " + url)

	text, err := f.Fetch(ctx, url)
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		return "", err
	}

	if spinner != nil {
		spinner.Success(fmt.Sprintf("Fetched %d bytes", len(text)))
	}
	return text, nil
}
