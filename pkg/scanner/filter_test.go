package scanner

import (
	"reflect"
	"testing"
)

func TestFilter(t *testing.T) {
	matches := []string{"GetCalendar", "GetTieMatches", "api/v1", "filterBy", "x", "Search"}

	tests := []struct {
		name     string
		keep     Predicate
		expected []string
	}{
		{"nil keeps all", nil, matches},
		{"max len", MaxLen(7), []string{"api/v1", "x", "Search"}},
		{"min len", MinLen(4), []string{"GetCalendar", "GetTieMatches", "api/v1", "filterBy", "Search"}},
		{"contains any", ContainsAny("Get", "api"), []string{"GetCalendar", "GetTieMatches", "api/v1"}},
		{"contains any fold", ContainsAnyFold("FILTER"), []string{"filterBy"}},
		{"fuzzy", Fuzzy("gtm"), []string{"GetTieMatches"}},
		{"all", All(MinLen(4), ContainsAny("Get")), []string{"GetCalendar", "GetTieMatches"}},
		{"any", Any(MaxLen(2), ContainsAny("Search")), []string{"x", "Search"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(matches, tt.keep)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Filter() = %v, want %v", got, tt.expected)
			}
			if len(got) > len(matches) {
				t.Errorf("Filter returned a superset: %d > %d", len(got), len(matches))
			}
		})
	}
}

func TestRulesPredicate(t *testing.T) {
	matches := []string{"GetCalendar", "api", "filterList", "Get", "somethingElseEntirely"}

	tests := []struct {
		name     string
		rules    Rules
		expected []string
	}{
		{"zero rules", Rules{}, matches},
		{"max and min", Rules{MaxLen: 12, MinLen: 4}, []string{"GetCalendar", "filterList"}},
		{
			"substring lists are or-ed",
			Rules{ContainsAny: []string{"Get", "api"}, ContainsAnyFold: []string{"FILTER"}},
			[]string{"GetCalendar", "api", "filterList", "Get"},
		},
		{"length and substring are and-ed", Rules{MinLen: 4, ContainsAny: []string{"Get"}}, []string{"GetCalendar"}},
		{"fuzzy", Rules{Fuzzy: "sel"}, []string{"somethingElseEntirely"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(matches, tt.rules.Predicate())
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Filter(%+v) = %v, want %v", tt.rules, got, tt.expected)
			}
		})
	}
}

func TestRulesIsZero(t *testing.T) {
	if !(Rules{}).IsZero() {
		t.Error("empty Rules should be zero")
	}
	if (Rules{Fuzzy: "a"}).IsZero() {
		t.Error("Rules with fuzzy term should not be zero")
	}
	if (Rules{}).Predicate() != nil {
		t.Error("zero Rules should produce a nil predicate")
	}
}

func TestLengthCountsCharacters(t *testing.T) {
	matches := []string{"été", "Zürich", "abc"}

	if got := Filter(matches, MaxLen(4)); !reflect.DeepEqual(got, []string{"été", "abc"}) {
		t.Errorf("MaxLen(4) = %v, want [été abc]", got)
	}
	if got := Filter(matches, MinLen(6)); !reflect.DeepEqual(got, []string{"Zürich"}) {
		t.Errorf("MinLen(6) = %v, want [Zürich]", got)
	}
}
