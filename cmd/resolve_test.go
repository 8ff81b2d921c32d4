package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bundlescan/configs"
	"bundlescan/pkg/scanner"
	"bundlescan/pkg/utils"

	"github.com/spf13/cobra"
)

func newTestScanCmd(t *testing.T, flags map[string][]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "scan", Args: cobra.MaximumNArgs(1), RunE: runScan, SilenceUsage: true, SilenceErrors: true}
	addScanFlags(c)
	for name, values := range flags {
		for _, v := range values {
			if err := c.Flags().Set(name, v); err != nil {
				t.Fatalf("Failed to set --%s=%s: %v", name, v, err)
			}
		}
	}
	return c
}

func presetLabels(t *testing.T, name string) []string {
	t.Helper()
	data, err := configs.Load(name)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", name, err)
	}
	cfg, err := utils.ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig(%s) failed: %v", name, err)
	}
	labels := make([]string, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		labels = append(labels, p.Label)
	}
	return labels
}

func useConfigFile(t *testing.T, path string) {
	t.Helper()
	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })
}

func TestResolveConfig(t *testing.T) {
	dir := t.TempDir()
	tablePath := filepath.Join(dir, "table.yaml")
	table := "case_sensitive: true\nkeep_going: true\npatterns:\n  - label: FromFile\n    pattern: Get\\w+\n"
	if err := os.WriteFile(tablePath, []byte(table), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	defaults := presetLabels(t, configs.Default)
	params := presetLabels(t, "params")

	tests := []struct {
		name          string
		config        string
		flags         map[string][]string
		labels        []string
		caseSensitive bool
		keepGoing     bool
	}{
		{
			name:   "no table falls back to default preset",
			labels: defaults,
		},
		{
			name:   "preset",
			flags:  map[string][]string{"preset": {"params"}},
			labels: params,
		},
		{
			name:   "ad hoc flags replace the default preset",
			flags:  map[string][]string{"pattern": {"Methods=TournamentApi/(\\w+)"}, "keyword": {"W15"}},
			labels: []string{"Methods", "W15"},
		},
		{
			name:   "ad hoc flags are appended to a preset",
			flags:  map[string][]string{"preset": {"params"}, "pattern": {"Extra=x"}},
			labels: append(append([]string{}, params...), "Extra"),
		},
		{
			name:          "preset table setting survives without the flag",
			flags:         map[string][]string{"preset": {"methods"}},
			labels:        presetLabels(t, "methods"),
			caseSensitive: true,
		},
		{
			name:   "explicit case flag overrides the table",
			flags:  map[string][]string{"preset": {"methods"}, "case-sensitive": {"false"}},
			labels: presetLabels(t, "methods"),
		},
		{
			name:          "config file wins over preset",
			config:        tablePath,
			flags:         map[string][]string{"preset": {"params"}, "keyword": {"M15"}},
			labels:        []string{"FromFile", "M15"},
			caseSensitive: true,
			keepGoing:     true,
		},
		{
			name:          "keep going is or-ed in",
			flags:         map[string][]string{"pattern": {"A=a"}, "keep-going": {"true"}, "case-sensitive": {"true"}},
			labels:        []string{"A"},
			caseSensitive: true,
			keepGoing:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfigFile(t, tt.config)
			c := newTestScanCmd(t, tt.flags)

			cfg, err := resolveConfig(c)
			if err != nil {
				t.Fatalf("resolveConfig failed: %v", err)
			}

			labels := make([]string, 0, len(cfg.Patterns))
			for _, p := range cfg.Patterns {
				labels = append(labels, p.Label)
			}
			if strings.Join(labels, "|") != strings.Join(tt.labels, "|") {
				t.Errorf("labels = %v, want %v", labels, tt.labels)
			}
			if cfg.CaseSensitive != tt.caseSensitive {
				t.Errorf("CaseSensitive = %v, want %v", cfg.CaseSensitive, tt.caseSensitive)
			}
			if cfg.KeepGoing != tt.keepGoing {
				t.Errorf("KeepGoing = %v, want %v", cfg.KeepGoing, tt.keepGoing)
			}
		})
	}
}

func TestResolveConfigAdHocSettings(t *testing.T) {
	useConfigFile(t, "")
	c := newTestScanCmd(t, map[string][]string{
		"pattern":        {"Paths=/api/\\w+"},
		"keyword":        {"W1\\d"},
		"regex-keywords": {"true"},
		"before":         {"5"},
		"after":          {"7"},
		"max-len":        {"20"},
	})

	cfg, err := resolveConfig(c)
	if err != nil {
		t.Fatalf("resolveConfig failed: %v", err)
	}

	paths, kw := cfg.Patterns[0], cfg.Patterns[1]
	if paths.Pattern != "/api/\\w+" || paths.Filter.MaxLen != 20 {
		t.Errorf("Unexpected ad hoc pattern: %+v", paths)
	}
	if kw.Keyword != "W1\\d" || !kw.Regex || *kw.Before != 5 || *kw.After != 7 {
		t.Errorf("Unexpected ad hoc keyword: %+v", kw)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string][]string
	}{
		{"unknown preset", map[string][]string{"preset": {"nope"}}},
		{"negative context", map[string][]string{"keyword": {"W15"}, "before": {"-1"}}},
		{"negative max len", map[string][]string{"pattern": {"A=a"}, "max-len": {"-3"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfigFile(t, "")
			if _, err := resolveConfig(newTestScanCmd(t, tt.flags)); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	useConfigFile(t, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := resolveConfig(newTestScanCmd(t, nil)); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func writeBundle(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.js")
	content := `e.get("TournamentApi/GetCalendar");fetch("/api/v2/live");`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write bundle: %v", err)
	}
	return path
}

func TestRunScan(t *testing.T) {
	useConfigFile(t, "")
	path := writeBundle(t)

	c := newTestScanCmd(t, nil)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{path, "-e", "API=[\"'](/api/[^\"']+)", "-e", "None=NeverThere", "--no-stats"})

	if err := c.Execute(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	expected := "Scan Results:\n\n--- API ---\n/api/v2/live\n\n--- None ---\n"
	if out.String() != expected {
		t.Errorf("report =\n%q\nwant\n%q", out.String(), expected)
	}
}

func TestRunScanBrokenPattern(t *testing.T) {
	useConfigFile(t, "")
	path := writeBundle(t)

	c := newTestScanCmd(t, nil)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{path, "-e", "Broken=(", "--no-stats"})

	err := c.Execute()
	var perr *scanner.PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected *scanner.PatternError, got %v", err)
	}
	if perr.Label != "Broken" {
		t.Errorf("Expected label Broken, got %s", perr.Label)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no report after a fatal error, got %q", out.String())
	}
}

func TestRunScanKeepGoing(t *testing.T) {
	useConfigFile(t, "")
	path := writeBundle(t)

	c := newTestScanCmd(t, nil)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{path, "-e", "Broken=(", "-e", "Methods=TournamentApi/(\\w+)", "--keep-going", "--no-stats"})

	if err := c.Execute(); err != nil {
		t.Fatalf("scan with --keep-going failed: %v", err)
	}
	if !strings.Contains(out.String(), "--- Broken ---\n!! ") {
		t.Errorf("Expected failure marker, got %q", out.String())
	}
	if !strings.Contains(out.String(), "--- Methods ---\nGetCalendar\n") {
		t.Errorf("Expected later entries to run, got %q", out.String())
	}
}

func TestRunExitStatus(t *testing.T) {
	useConfigFile(t, "")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	missing := filepath.Join(t.TempDir(), "missing.js")
	if code := run(context.Background(), []string{"scan", missing, "--no-banner", "--no-stats"}); code != 1 {
		t.Errorf("Expected exit status 1 for a missing source, got %d", code)
	}

	if code := run(context.Background(), []string{"scan", writeBundle(t), "--no-banner", "--no-stats"}); code != 0 {
		t.Errorf("Expected exit status 0, got %d", code)
	}
	if !strings.Contains(out.String(), "--- API Paths ---\n/api/v2/live\n") {
		t.Errorf("Expected default preset report, got %q", out.String())
	}
}

func TestPresetsWriteToStdout(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	if code := run(context.Background(), []string{"presets", "--no-banner"}); code != 0 {
		t.Fatalf("presets exited with %d", code)
	}
	for _, name := range configs.Names() {
		if !strings.Contains(out.String(), name) {
			t.Errorf("Expected preset %s in the listing, got %q", name, out.String())
		}
	}

	out.Reset()
	if code := run(context.Background(), []string{"presets", "show", configs.Default, "--no-banner"}); code != 0 {
		t.Fatalf("presets show exited with %d", code)
	}
	want, _ := configs.Load(configs.Default)
	if out.String() != string(want) {
		t.Errorf("presets show = %q, want the embedded YAML", out.String())
	}
}
