package reporter

import (
	"fmt"
	"time"

	"bundlescan/pkg/scanner"

	"github.com/pterm/pterm"
)

// Stats summarises one scan run.
type Stats struct {
	Entries     int
	Failed      int
	Lines       int
	Empty       int
	SourceBytes int
	StartTime   time.Time
}

// NewStats starts the clock for a run over a source of the given size.
func NewStats(sourceBytes int) *Stats {
	return &Stats{
		SourceBytes: sourceBytes,
		StartTime:   time.Now(),
	}
}

// Record counts the results of a run.
func (s *Stats) Record(results []scanner.Result) {
	for _, r := range results {
		s.Entries++
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Len() == 0:
			s.Empty++
		default:
			s.Lines += r.Len()
		}
	}
}

// GetElapsed returns elapsed time
func (s *Stats) GetElapsed() time.Duration {
	return time.Since(s.StartTime)
}

// Print displays stats in a formatted table
func (s *Stats) Print() error {
	pterm.DefaultSection.Println("Scan Statistics")

	failed := fmt.Sprintf("%d", s.Failed)
	if s.Failed > 0 {
		failed = pterm.LightRed(failed)
	}

	tableData := pterm.TableData{
		{"Metric", "Value"},
		{"Source Bytes", fmt.Sprintf("%d", s.SourceBytes)},
		{"Entries", fmt.Sprintf("%d", s.Entries)},
		{"Lines Reported", fmt.Sprintf("%d", s.Lines)},
		{"Empty Entries", fmt.Sprintf("%d", s.Empty)},
		{"Failed Entries", failed},
		{"Elapsed", s.GetElapsed().Round(time.Millisecond).String()},
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

// Summary returns a one-line summary
func (s *Stats) Summary() string {
	return fmt.Sprintf("Entries: %d | Lines: %d | Empty: %d | Failed: %d | Time: %s",
		s.Entries, s.Lines, s.Empty, s.Failed, s.GetElapsed().Round(time.Millisecond))
}
