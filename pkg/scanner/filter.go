package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Predicate decides whether a match or snippet is kept.
type Predicate func(s string) bool

// Filter returns the elements of matches accepted by keep, in their original
// order. A nil predicate keeps everything.
func Filter(matches []string, keep Predicate) []string {
	kept := make([]string, 0, len(matches))
	for _, m := range matches {
		if keep == nil || keep(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

// Rules is the declarative form of a Predicate used by pattern tables.
type Rules struct {
	// MaxLen keeps values strictly shorter than MaxLen characters. Zero
	// disables it.
	MaxLen int `yaml:"max_len,omitempty" json:"max_len,omitempty"`
	// MinLen keeps values at least MinLen characters long.
	MinLen int `yaml:"min_len,omitempty" json:"min_len,omitempty"`
	// ContainsAny and ContainsAnyFold are OR-ed together: a value passes if
	// it contains any listed substring.
	ContainsAny     []string `yaml:"contains_any,omitempty" json:"contains_any,omitempty"`
	ContainsAnyFold []string `yaml:"contains_any_fold,omitempty" json:"contains_any_fold,omitempty"`
	// Fuzzy keeps values in which the characters of Fuzzy appear in order,
	// ignoring case.
	Fuzzy string `yaml:"fuzzy,omitempty" json:"fuzzy,omitempty"`
}

// IsZero reports whether the rules keep everything.
func (r Rules) IsZero() bool {
	return r.MaxLen == 0 && r.MinLen == 0 && len(r.ContainsAny) == 0 &&
		len(r.ContainsAnyFold) == 0 && r.Fuzzy == ""
}

// Predicate builds the keep function. Zero rules return nil.
func (r Rules) Predicate() Predicate {
	if r.IsZero() {
		return nil
	}

	var checks []Predicate
	if r.MaxLen > 0 {
		checks = append(checks, MaxLen(r.MaxLen))
	}
	if r.MinLen > 0 {
		checks = append(checks, MinLen(r.MinLen))
	}
	if len(r.ContainsAny) > 0 || len(r.ContainsAnyFold) > 0 {
		checks = append(checks, Any(ContainsAny(r.ContainsAny...), ContainsAnyFold(r.ContainsAnyFold...)))
	}
	if r.Fuzzy != "" {
		checks = append(checks, Fuzzy(r.Fuzzy))
	}
	return All(checks...)
}

// MaxLen keeps strings shorter than n characters.
func MaxLen(n int) Predicate {
	return func(s string) bool { return utf8.RuneCountInString(s) < n }
}

// MinLen keeps strings of at least n characters.
func MinLen(n int) Predicate {
	return func(s string) bool { return utf8.RuneCountInString(s) >= n }
}

// ContainsAny keeps strings containing any of subs. No subs keeps nothing.
func ContainsAny(subs ...string) Predicate {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

// ContainsAnyFold is ContainsAny ignoring case.
func ContainsAnyFold(subs ...string) Predicate {
	lowered := make([]string, len(subs))
	for i, sub := range subs {
		lowered[i] = strings.ToLower(sub)
	}
	return func(s string) bool {
		return ContainsAny(lowered...)(strings.ToLower(s))
	}
}

// Fuzzy keeps strings in which the runes of term appear in order.
func Fuzzy(term string) Predicate {
	return func(s string) bool { return fuzzy.MatchFold(term, s) }
}

// All keeps a string only when every predicate keeps it.
func All(preds ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range preds {
			if p != nil && !p(s) {
				return false
			}
		}
		return true
	}
}

// Any keeps a string when at least one predicate keeps it.
func Any(preds ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range preds {
			if p != nil && p(s) {
				return true
			}
		}
		return false
	}
}
