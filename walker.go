package recursor

import (
	"context"
	"iter"
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/errors"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/filters"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/internal/prefix"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/walktypes"
)

// Walker lists the objects under the prefixes its filters accept. A Walker is
// immutable and may start any number of walks, including concurrently; each
// walk itself has a single consumer.
type Walker struct {
	lister   walktypes.Lister
	delim    rune
	start    string
	pageSize int
	filters  []filters.Filter
	logger   *slog.Logger
}

// New creates a Walker over lister.
//
// Example:
//
//	fs, err := filters.NewBuilder('/').
//	    AfterZoned("2019-04-19T09:54:00-04:00[America/New_York]").
//	    AddTemporalSegment("'dt='yyyy'-'MM'-'dd").
//	    AddTemporalSegment("'h='H").
//	    Filters()
//	if err != nil {
//	    return err
//	}
//	w, err := recursor.New(lister,
//	    recursor.WithStartPrefix("activity-logs"),
//	    recursor.WithFilters(fs...),
//	)
func New(lister walktypes.Lister, opts ...walktypes.Option) (*Walker, error) {
	cfg := &walktypes.Config{
		Delimiter: '/',
		PageSize:  DefaultPageSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if lister == nil {
		return nil, errors.NewConfigError("new", "lister is required")
	}
	if cfg.PageSize < 1 {
		return nil, errors.NewConfigError("new", "page size must be at least 1, got %d", cfg.PageSize)
	}
	for i, f := range cfg.Filters {
		if f == nil {
			return nil, errors.NewConfigError("new", "filter at depth %d is nil", i)
		}
	}

	return &Walker{
		lister:   lister,
		delim:    cfg.Delimiter,
		start:    prefix.WithTrailingDelimiter(cfg.Delimiter, cfg.StartPrefix),
		pageSize: cfg.PageSize,
		filters:  cfg.Filters,
		logger:   cfg.Logger,
	}, nil
}

// StartPrefix returns the normalized start prefix, empty for the root.
func (w *Walker) StartPrefix() string {
	return w.start
}

// Depth returns the number of levels walked below the start prefix.
func (w *Walker) Depth() int {
	return len(w.filters)
}

// Objects returns the objects under every accepted prefix at the final depth,
// depth first and in listing order. Nothing is listed until the sequence is
// ranged over, and breaking out of the loop stops further listing.
//
// A listing error is yielded once and ends the sequence.
func (w *Walker) Objects(ctx context.Context) iter.Seq2[walktypes.Object, error] {
	return func(yield func(walktypes.Object, error) bool) {
		it := w.Iterator(ctx)
		for it.Next() {
			if !yield(it.Object(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(walktypes.Object{}, err)
		}
	}
}

// Prefixes returns the prefixes accepted at depth, where depth 0 is the start
// prefix itself and depth Depth() is the last filtered level.
func (w *Walker) Prefixes(ctx context.Context, depth int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if depth < 0 || depth > len(w.filters) {
			yield("", errors.NewError("prefixes", errors.ErrInvalidInput).
				WithMessage("depth out of range"))
			return
		}

		it := newIterator(ctx, w, w.start, 0, depth)
		for it.Next() {
			if !yield(it.Prefix(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield("", err)
		}
	}
}

// Iterator returns a pull iterator over the same objects as Objects.
func (w *Walker) Iterator(ctx context.Context) *Iterator {
	if w.logger != nil {
		w.logger.InfoContext(ctx, "starting walk",
			"start_prefix", w.start,
			"depth", len(w.filters),
			"page_size", w.pageSize)
	}
	return newIterator(ctx, w, w.start, 0, emitObjects)
}

// relative strips the start prefix.
func (w *Walker) relative(p string) string {
	return prefix.Relative(p, len(w.start))
}
