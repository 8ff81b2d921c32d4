package scanner

import (
	"errors"
	"fmt"
)

// Kind tells how an entry is applied to the text.
type Kind string

const (
	KindMatches Kind = "matches"
	KindContext Kind = "context"
)

// Entry is one row of a pattern table: either a Pattern to extract values
// with, or a Keyword to show surrounding context for.
type Entry struct {
	Label         string
	Pattern       string
	Keyword       string
	Regex         bool
	CaseSensitive bool
	Before        int
	After         int
	Keep          Predicate
}

// Kind reports whether the entry extracts matches or context windows.
func (e Entry) Kind() Kind {
	if e.Pattern == "" && e.Keyword != "" {
		return KindContext
	}
	return KindMatches
}

// Result is the outcome of one entry. Matches are sorted; windows keep their
// offset order. Err is only set when the run keeps going past failures.
type Result struct {
	Label   string   `json:"label"`
	Kind    Kind     `json:"kind"`
	Matches []string `json:"matches,omitempty"`
	Windows []Window `json:"windows,omitempty"`
	Err     error    `json:"-"`
}

// Len returns the number of lines the result contributes to a report.
func (r Result) Len() int {
	if r.Kind == KindContext {
		return len(r.Windows)
	}
	return len(r.Matches)
}

// RunOptions tunes Run.
type RunOptions struct {
	// KeepGoing records a failing entry in its Result instead of aborting.
	KeepGoing bool
}

// ErrNoEntries is returned by Run when the pattern table is empty.
var ErrNoEntries = errors.New("no patterns or keywords to scan for")

// Run applies entries to text in the order given.
func Run(text string, entries []Entry, opts RunOptions) ([]Result, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		res, err := apply(text, e)
		if err != nil {
			if !opts.KeepGoing {
				return results, err
			}
			res.Err = err
		}
		results = append(results, res)
	}
	return results, nil
}

func apply(text string, e Entry) (Result, error) {
	res := Result{Label: e.Label, Kind: e.Kind()}

	switch res.Kind {
	case KindContext:
		re, err := Keyword(e.Label, e.Keyword, e.Regex, !e.CaseSensitive)
		if err != nil {
			return res, err
		}
		for w := range Contextualize(text, re, e.Before, e.After) {
			if e.Keep == nil || e.Keep(w.Snippet) {
				res.Windows = append(res.Windows, w)
			}
		}
	default:
		if e.Pattern == "" {
			return res, &PatternError{Label: e.Label, Err: fmt.Errorf("empty pattern")}
		}
		matches, err := Scan(text, e.Label, e.Pattern, !e.CaseSensitive)
		if err != nil {
			return res, err
		}
		res.Matches = Filter(matches, e.Keep)
	}
	return res, nil
}
