package filters

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/internal/prefix"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/internal/temporal"
)

type levelKind int

const (
	// levelSegment full-matches the segment at the level's depth.
	levelSegment levelKind = iota
	// levelRelative full-matches the whole relative prefix.
	levelRelative
	// levelTemporal compares the temporal segments seen so far with the cutoff.
	levelTemporal
	// levelAny accepts every segment.
	levelAny
	// levelFunc calls a caller supplied predicate.
	levelFunc
)

func (k levelKind) String() string {
	switch k {
	case levelSegment:
		return "segment"
	case levelRelative:
		return "relative"
	case levelTemporal:
		return "temporal"
	case levelAny:
		return "any"
	case levelFunc:
		return "func"
	}
	return "unknown"
}

// level is one depth of a filter chain. Only the fields for its kind are set.
type level struct {
	kind  levelKind
	depth int

	re *regexp2.Regexp

	layout  *temporal.Layout
	indexes []int
	loc     *time.Location
	lower   time.Time
	upper   time.Time

	fn func(segments []string) bool
}

func (l *level) match(delim rune, segments []string) bool {
	switch l.kind {
	case levelSegment:
		return fullMatch(l.re, segments[l.depth])

	case levelRelative:
		return fullMatch(l.re, prefix.Join(delim, segments))

	case levelTemporal:
		parts := make([]string, len(l.indexes))
		for i, idx := range l.indexes {
			parts[i] = segments[idx]
		}

		t, ok := l.layout.Parse(strings.Join(parts, " "), l.loc)
		if !ok {
			return false
		}
		return !t.Before(l.lower) && t.Before(l.upper)

	case levelFunc:
		return l.fn(segments)
	}

	return true
}

// compileFull compiles expr so that it only matches whole inputs.
func compileFull(expr string) (*regexp2.Regexp, error) {
	// reject expressions that only parse once wrapped, e.g. "a)|(b"
	if _, err := regexp2.Compile(expr, regexp2.None); err != nil {
		return nil, err
	}
	return regexp2.Compile(`\A(?:`+expr+`)\z`, regexp2.None)
}

// fullMatch treats a matcher error (e.g. a timeout) as no match.
func fullMatch(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// chain is the Filter for depth len(levels)-1. It accepts a prefix when it
// has at least len(levels) segments and every level up to its own accepts.
type chain struct {
	delim  rune
	levels []level
}

func (c *chain) Match(relative string) bool {
	segments := prefix.Split(c.delim, relative)
	if len(segments) < len(c.levels) {
		return false
	}

	for i := range c.levels {
		if !c.levels[i].match(c.delim, segments) {
			return false
		}
	}
	return true
}

// Depth returns the zero-based depth the chain filters.
func (c *chain) Depth() int {
	return len(c.levels) - 1
}

func (c *chain) String() string {
	kinds := make([]string, len(c.levels))
	for i := range c.levels {
		kinds[i] = c.levels[i].kind.String()
	}
	return strings.Join(kinds, "/")
}
