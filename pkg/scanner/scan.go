package scanner

import (
	"regexp"
	"sort"
)

// Compile compiles pattern, prefixing (?i) when caseInsensitive is set.
func Compile(label, pattern string, caseInsensitive bool) (*regexp.Regexp, error) {
	expr := pattern
	if caseInsensitive {
		expr = "(?i)" + pattern
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Label: label, Pattern: pattern, Err: err}
	}
	return re, nil
}

// Scan returns the sorted set of distinct values pattern extracts from text.
// With capture groups the value is the first group, otherwise the whole match.
func Scan(text, label, pattern string, caseInsensitive bool) ([]string, error) {
	re, err := Compile(label, pattern, caseInsensitive)
	if err != nil {
		return nil, err
	}
	return Extract(text, re), nil
}

// Extract is Scan for an already compiled expression.
func Extract(text string, re *regexp.Regexp) []string {
	seen := make(map[string]bool)
	matches := []string{}

	grouped := re.NumSubexp() > 0
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		if grouped {
			// group 1 did not take part in this match
			if loc[2] < 0 {
				continue
			}
			start, end = loc[2], loc[3]
		}

		value := text[start:end]
		if !seen[value] {
			seen[value] = true
			matches = append(matches, value)
		}
	}

	sort.Strings(matches)
	return matches
}
