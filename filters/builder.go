package filters

import (
	"slices"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/errors"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/internal/temporal"
)

// Builder assembles filters level by level. The first configuration error is
// kept and every later call is a no-op; it is reported by Err and Filters.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	delim  rune
	levels []level

	// cutoff
	cutoffSet bool
	loc       *time.Location
	lower     time.Time
	upper     time.Time

	// cumulative temporal layout and the depths that feed it
	layout   *temporal.Layout
	temporal []int

	err error
}

// NewBuilder returns a builder for prefixes split on delim.
func NewBuilder(delim rune) *Builder {
	return &Builder{delim: delim}
}

// Err returns the first configuration error, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err *errors.Error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Between sets the allowed temporal range: min inclusive, max exclusive.
// Temporal segments are read in min's location.
func (b *Builder) Between(minTime, maxTime time.Time) *Builder {
	return b.BetweenIn(minTime, maxTime, minTime.Location())
}

// BetweenIn is like Between but reads temporal segments in loc.
func (b *Builder) BetweenIn(minTime, maxTime time.Time, loc *time.Location) *Builder {
	if b.err != nil {
		return b
	}
	if b.cutoffSet {
		return b.fail(errors.NewConfigError("cutoff", "cutoff already set"))
	}
	if !minTime.Before(maxTime) {
		return b.fail(errors.NewConfigError("cutoff", "min (%s) must be before max (%s)",
			minTime.Format(time.RFC3339Nano), maxTime.Format(time.RFC3339Nano)))
	}
	if loc == nil {
		loc = time.UTC
	}

	b.cutoffSet = true
	b.loc = loc
	b.lower = minTime.In(loc)
	b.upper = maxTime
	return b
}

// After sets an inclusive lower bound with no upper bound. Temporal segments
// are read in min's location.
func (b *Builder) After(minTime time.Time) *Builder {
	return b.BetweenIn(minTime, temporal.Forever, minTime.Location())
}

// AfterIn is like After but reads temporal segments in loc.
func (b *Builder) AfterIn(minTime time.Time, loc *time.Location) *Builder {
	return b.BetweenIn(minTime, temporal.Forever, loc)
}

// BetweenZoned is like Between with both bounds in the form accepted by
// ParseZoned, e.g. "2019-04-19T09:54:00-04:00[America/New_York]".
func (b *Builder) BetweenZoned(minText, maxText string) *Builder {
	if b.err != nil {
		return b
	}
	minTime, err := ParseZoned(minText)
	if err != nil {
		return b.fail(errors.NewConfigError("cutoff", "min: %v", err))
	}
	maxTime, err := ParseZoned(maxText)
	if err != nil {
		return b.fail(errors.NewConfigError("cutoff", "max: %v", err))
	}
	return b.Between(minTime, maxTime)
}

// AfterZoned is like After with the bound in the form accepted by ParseZoned.
func (b *Builder) AfterZoned(text string) *Builder {
	if b.err != nil {
		return b
	}
	minTime, err := ParseZoned(text)
	if err != nil {
		return b.fail(errors.NewConfigError("cutoff", "min: %v", err))
	}
	return b.After(minTime)
}

// AddSegmentPattern adds a level whose segment must fully match expr.
// Expressions use .NET/Java syntax, so backreferences and lookaround work.
func (b *Builder) AddSegmentPattern(expr string) *Builder {
	if b.err != nil {
		return b
	}
	re, err := compileFull(expr)
	if err != nil {
		return b.fail(errors.NewConfigError("segment", "pattern %q: %v", expr, err))
	}
	return b.add(level{kind: levelSegment, re: re})
}

// AddRelativePattern adds a level whose whole relative prefix, trailing
// delimiter included, must fully match expr. Use it to relate levels to one
// another, e.g. `.*/src=(\w+)/dst=(?!\1).+/` for differing src and dst.
func (b *Builder) AddRelativePattern(expr string) *Builder {
	if b.err != nil {
		return b
	}
	re, err := compileFull(expr)
	if err != nil {
		return b.fail(errors.NewConfigError("relative", "pattern %q: %v", expr, err))
	}
	return b.add(level{kind: levelRelative, re: re})
}

// AddAnySegment adds a level that accepts any non-empty segment.
func (b *Builder) AddAnySegment() *Builder {
	return b.AddSegmentPattern(".+")
}

// AddPredicate adds a level tested by fn with the relative prefix split into
// segments. fn is only called with at least as many segments as levels.
func (b *Builder) AddPredicate(fn func(segments []string) bool) *Builder {
	if b.err != nil {
		return b
	}
	if fn == nil {
		return b.fail(errors.NewConfigError("predicate", "nil predicate"))
	}
	return b.add(level{kind: levelFunc, fn: fn})
}

// AddTemporalSegment adds a level holding a date/time fragment described by
// pattern (see package temporal for the letters). The fragments of every
// temporal level so far are read together and compared with the lower bound
// rounded down to the fields they provide. The upper bound is compared at
// full precision.
//
// Until the temporal levels provide at least a year the level accepts
// anything. The cutoff must be set first.
func (b *Builder) AddTemporalSegment(pattern string) *Builder {
	if b.err != nil {
		return b
	}
	if !b.cutoffSet {
		return b.fail(errors.NewConfigError("temporal", "cutoff must be set before temporal segment %q", pattern))
	}

	part, err := temporal.Compile(pattern)
	if err != nil {
		return b.fail(errors.NewConfigError("temporal", "%v", err))
	}

	layout := part
	if b.layout != nil {
		layout = b.layout.Concat(part)
	}

	b.temporal = append(b.temporal, len(b.levels))
	b.layout = layout

	lower, ok := b.widened(layout)
	if !ok {
		return b.add(level{kind: levelAny})
	}

	return b.add(level{
		kind:    levelTemporal,
		layout:  layout,
		indexes: slices.Clone(b.temporal),
		loc:     b.loc,
		lower:   lower,
		upper:   b.upper,
	})
}

// widened rounds the lower bound down to the fields layout provides.
func (b *Builder) widened(layout *temporal.Layout) (time.Time, bool) {
	return layout.Parse(layout.Format(b.lower), b.loc)
}

func (b *Builder) add(l level) *Builder {
	l.depth = len(b.levels)
	b.levels = append(b.levels, l)
	return b
}

// Filters returns one filter per level. The filter at depth i accepts a
// relative prefix when it has at least i+1 segments and levels 0 through i
// all accept it.
//
// It fails when temporal levels were added but together cannot provide a
// year. That failure is not kept, so more levels can be added and Filters
// called again.
func (b *Builder) Filters() ([]Filter, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.layout != nil {
		if _, ok := b.widened(b.layout); !ok {
			return nil, errors.NewConfigError("filters", "too few temporal fields in %q to resolve a year", b.layout.String())
		}
	}

	levels := slices.Clone(b.levels)
	out := make([]Filter, len(levels))
	for i := range levels {
		out[i] = &chain{delim: b.delim, levels: levels[: i+1 : i+1]}
	}
	return out, nil
}

// ParseZoned parses an RFC 3339 timestamp with an optional zone id in square
// brackets, e.g. "2019-04-19T09:54:00-04:00[America/New_York]".
func ParseZoned(s string) (time.Time, error) {
	return temporal.ParseZoned(s)
}
