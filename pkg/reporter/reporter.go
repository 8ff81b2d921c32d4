package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"bundlescan/pkg/scanner"
	"bundlescan/pkg/utils"

	"github.com/google/uuid"
)

// Print writes the text report: an optional title, then one
// "--- <label> ---" section per result in the order given. Sections without
// matches keep their header so an empty scan is distinguishable from a
// missing one.
func Print(w io.Writer, title string, results []scanner.Result) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(w, "\n--- %s ---\n", r.Label); err != nil {
			return err
		}
		for _, line := range Lines(r) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// Lines renders the body of one section.
func Lines(r scanner.Result) []string {
	if r.Err != nil {
		return []string{"!! " + r.Err.Error()}
	}

	if r.Kind == scanner.KindContext {
		lines := make([]string, 0, len(r.Windows))
		for _, w := range r.Windows {
			lines = append(lines, fmt.Sprintf("@%d ...%s...", w.Offset, flatten(w.Snippet)))
		}
		return lines
	}
	return r.Matches
}

var flattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// flatten keeps a snippet on a single output line.
func flatten(s string) string {
	return flattener.Replace(s)
}

type Reporter struct {
	RunID   string
	Source  string
	Results []scanner.Result
}

type Report struct {
	RunID    string    `json:"run_id"`
	ScanTime time.Time `json:"scan_time"`
	Source   string    `json:"source"`
	Results  []Section `json:"results"`
}

// Section is the JSON form of a scanner.Result.
type Section struct {
	Label   string           `json:"label"`
	Kind    scanner.Kind     `json:"kind"`
	Matches []string         `json:"matches,omitempty"`
	Windows []scanner.Window `json:"windows,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func NewReporter(source string) *Reporter {
	return &Reporter{
		RunID:  uuid.NewString(),
		Source: source,
	}
}

func (r *Reporter) AddResults(results ...scanner.Result) {
	r.Results = append(r.Results, results...)
}

func (r *Reporter) Build() Report {
	report := Report{
		RunID:    r.RunID,
		ScanTime: time.Now(),
		Source:   r.Source,
		Results:  make([]Section, 0, len(r.Results)),
	}

	for _, res := range r.Results {
		s := Section{
			Label:   res.Label,
			Kind:    res.Kind,
			Matches: res.Matches,
			Windows: res.Windows,
		}
		if res.Err != nil {
			s.Error = res.Err.Error()
		}
		report.Results = append(report.Results, s)
	}
	return report
}

func (r *Reporter) GenerateReport(filename string) error {
	data, err := json.MarshalIndent(r.Build(), "", "  ")
	if err != nil {
		return err
	}

	return utils.WriteFile(filename, data)
}
