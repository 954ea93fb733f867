// Package filters builds the per-depth predicates a walker uses to decide
// which prefixes to recurse into.
//
// A Builder collects one level at a time. Each level tests the segment at its
// depth (a regular expression), the whole relative prefix (a regular
// expression that may refer back to earlier levels), or a date/time fragment.
// Temporal levels are compared against a cutoff that is rounded down to the
// granularity available at that depth, so "dt=2019-04-19/" is kept for a
// cutoff of 2019-04-19T15:30:00Z while "dt=2019-04-19/h=14/" is not.
//
// For example, to walk
//
//	activity-logs/date=20190415/hour=9/orders/
//
// from 2019-04-15T10:00:00Z onwards:
//
//	fs, err := filters.NewBuilder('/').
//		After(time.Date(2019, 4, 15, 10, 0, 0, 0, time.UTC)).
//		AddTemporalSegment("'date='yyyyMMdd").
//		AddTemporalSegment("'hour='H").
//		AddSegmentPattern("orders").
//		Filters()
package filters

import "strings"

// Filter decides whether a prefix, relative to the walk's start prefix, is
// accepted at the filter's depth. Relative prefixes end with the delimiter,
// the way listings return them.
type Filter interface {
	Match(relative string) bool
}

// Func adapts an ordinary function to a Filter.
type Func func(relative string) bool

// Match calls f(relative).
func (f Func) Match(relative string) bool {
	return f(relative)
}

// Anything returns a filter that accepts every prefix. Use it to recurse into
// any prefix at a given depth.
func Anything() Filter {
	return Func(func(string) bool { return true })
}

// EndsWith returns a filter that accepts prefixes ending with suffix. The
// suffix should include the trailing delimiter.
func EndsWith(suffix string) Filter {
	return Func(func(relative string) bool {
		return strings.HasSuffix(relative, suffix)
	})
}

// Repeat returns n filters that accept every prefix.
func Repeat(n int) []Filter {
	out := make([]Filter, n)
	for i := range out {
		out[i] = Anything()
	}
	return out
}
