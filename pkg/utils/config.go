package utils

import (
	"errors"
	"fmt"
	"os"

	"bundlescan/pkg/scanner"

	"gopkg.in/yaml.v3"
)

// Config represents a pattern table and the run settings around it
type Config struct {
	Title         string          `yaml:"title"`
	Source        string          `yaml:"source"`
	CaseSensitive bool            `yaml:"case_sensitive"`
	KeepGoing     bool            `yaml:"keep_going"`
	Patterns      []PatternConfig `yaml:"patterns"`
	Fetch         FetchConfig     `yaml:"fetch"`
}

// PatternConfig is one labeled entry. Exactly one of Pattern or Keyword is set.
type PatternConfig struct {
	Label         string        `yaml:"label"`
	Pattern       string        `yaml:"pattern,omitempty"`
	Keyword       string        `yaml:"keyword,omitempty"`
	Regex         bool          `yaml:"regex,omitempty"`
	CaseSensitive *bool         `yaml:"case_sensitive,omitempty"`
	Before        *int          `yaml:"before,omitempty"`
	After         *int          `yaml:"after,omitempty"`
	Filter        scanner.Rules `yaml:"filter,omitempty"`
}

type FetchConfig struct {
	Timeout    string            `yaml:"timeout"`
	MaxRetries int               `yaml:"max_retries"`
	VerifyTLS  bool              `yaml:"verify_tls"`
	UserAgent  string            `yaml:"user_agent"`
	Proxy      string            `yaml:"proxy"`
	Cookies    string            `yaml:"cookies"`
	Headers    map[string]string `yaml:"headers"`
}

// DefaultFetchConfig returns the HTTP settings used when a config omits them
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Timeout:    "30s",
		MaxRetries: 2,
		VerifyTLS:  true,
		UserAgent:  "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// ParseConfig decodes and validates a YAML pattern table
func ParseConfig(data []byte) (*Config, error) {
	config := Config{Fetch: DefaultFetchConfig()}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks every pattern entry
func (c *Config) Validate() error {
	var errs []error
	for i, p := range c.Patterns {
		switch {
		case p.Label == "":
			errs = append(errs, fmt.Errorf("patterns[%d]: missing label", i))
		case p.Pattern == "" && p.Keyword == "":
			errs = append(errs, fmt.Errorf("patterns[%d] %q: needs a pattern or a keyword", i, p.Label))
		case p.Pattern != "" && p.Keyword != "":
			errs = append(errs, fmt.Errorf("patterns[%d] %q: pattern and keyword are exclusive", i, p.Label))
		}
		if (p.Before != nil && *p.Before < 0) || (p.After != nil && *p.After < 0) {
			errs = append(errs, fmt.Errorf("patterns[%d] %q: context bounds must not be negative", i, p.Label))
		}
		if p.Filter.MaxLen < 0 || p.Filter.MinLen < 0 {
			errs = append(errs, fmt.Errorf("patterns[%d] %q: max_len and min_len must not be negative", i, p.Label))
		}
	}
	return errors.Join(errs...)
}

// Entries converts the table into scanner entries, in file order
func (c *Config) Entries() []scanner.Entry {
	entries := make([]scanner.Entry, 0, len(c.Patterns))
	for _, p := range c.Patterns {
		entries = append(entries, p.Entry(c.CaseSensitive))
	}
	return entries
}

// Entry converts one pattern entry. caseSensitive applies unless the entry
// overrides it.
func (p PatternConfig) Entry(caseSensitive bool) scanner.Entry {
	if p.CaseSensitive != nil {
		caseSensitive = *p.CaseSensitive
	}

	e := scanner.Entry{
		Label:         p.Label,
		Pattern:       p.Pattern,
		Keyword:       p.Keyword,
		Regex:         p.Regex,
		CaseSensitive: caseSensitive,
		Before:        scanner.DefaultBefore,
		After:         scanner.DefaultAfter,
		Keep:          p.Filter.Predicate(),
	}
	if p.Before != nil {
		e.Before = *p.Before
	}
	if p.After != nil {
		e.After = *p.After
	}
	return e
}
