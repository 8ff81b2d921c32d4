package scanner

import (
	"iter"
	"regexp"
	"unicode/utf8"
)

// Default context bounds, in bytes.
const (
	DefaultBefore = 50
	DefaultAfter  = 50
)

// Window is the text surrounding one keyword occurrence.
type Window struct {
	Offset  int    `json:"offset"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Snippet string `json:"snippet"`
}

// Keyword compiles a context keyword. Plain keywords match literally.
func Keyword(label, keyword string, regex, caseInsensitive bool) (*regexp.Regexp, error) {
	pattern := keyword
	if !regex {
		pattern = regexp.QuoteMeta(keyword)
	}
	return Compile(label, pattern, caseInsensitive)
}

// Contextualize yields a window for every non-overlapping occurrence of
// keyword, left to right. Windows extend before bytes ahead of the
// occurrence and after bytes past its end, clipped to the text and to rune
// boundaries. The sequence can be ranged over any number of times.
func Contextualize(text string, keyword *regexp.Regexp, before, after int) iter.Seq[Window] {
	before = max(before, 0)
	after = max(after, 0)

	return func(yield func(Window) bool) {
		for _, loc := range keyword.FindAllStringIndex(text, -1) {
			if !yield(window(text, loc[0], loc[1], before, after)) {
				return
			}
		}
	}
}

func window(text string, mStart, mEnd, before, after int) Window {
	start := max(0, mStart-before)
	end := min(len(text), mEnd+after)

	for start < mStart && !utf8.RuneStart(text[start]) {
		start++
	}
	for end > mEnd && end < len(text) && !utf8.RuneStart(text[end]) {
		end--
	}

	return Window{
		Offset:  mStart,
		Start:   start,
		End:     end,
		Snippet: text[start:end],
	}
}
