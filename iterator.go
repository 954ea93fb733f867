package recursor

import (
	"context"
	"fmt"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/errors"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/walktypes"
)

// emitObjects makes an iterator yield objects instead of prefixes.
const emitObjects = -1

// pager reads the listing of one prefix a page at a time. Only the current
// page is held; the cursor is dropped once the listing is exhausted.
type pager struct {
	prefix  string
	cursor  string
	fetched bool
	page    *walktypes.Page
	pos     int
}

// Iterator walks prefixes depth first, pulling a page from the lister only
// when the current page of an open prefix is used up.
//
//	it := w.Iterator(ctx)
//	for it.Next() {
//	    obj := it.Object()
//	    ...
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
//
// An Iterator is not safe for concurrent use.
type Iterator struct {
	ctx context.Context
	w   *Walker

	// from is a prefix already accepted at depth base
	from string
	base int
	// emit is the depth whose prefixes are yielded, or emitObjects
	emit int

	started bool
	// open[j] lists the children of a prefix accepted at depth base+j
	open []*pager
	leaf *pager

	obj    walktypes.Object
	prefix string
	err    error
	done   bool
}

func newIterator(ctx context.Context, w *Walker, from string, base, emit int) *Iterator {
	return &Iterator{
		ctx:  ctx,
		w:    w,
		from: from,
		base: base,
		emit: emit,
	}
}

// Next advances to the next object (or prefix) and reports whether there is
// one. It returns false at the end of the walk or after an error.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}

	if !it.started {
		it.started = true
		switch {
		case it.emit == it.base:
			it.prefix = it.from
			it.done = true
			return true
		case it.base == len(it.w.filters):
			it.leaf = &pager{prefix: it.from}
		default:
			it.open = append(it.open, &pager{prefix: it.from})
		}
	}

	for {
		if it.leaf != nil {
			obj, ok, err := it.nextObject(it.leaf)
			if err != nil {
				return it.fail(err)
			}
			if ok {
				it.obj = obj
				return true
			}
			it.leaf = nil
			continue
		}

		if len(it.open) == 0 {
			it.done = true
			return false
		}

		top := it.open[len(it.open)-1]
		depth := it.base + len(it.open) - 1

		child, ok, err := it.nextChild(top)
		if err != nil {
			return it.fail(err)
		}
		if !ok {
			it.open[len(it.open)-1] = nil
			it.open = it.open[:len(it.open)-1]
			continue
		}

		if !it.w.filters[depth].Match(it.w.relative(child)) {
			continue
		}

		switch {
		case depth+1 == it.emit:
			it.prefix = child
			return true
		case depth+1 == len(it.w.filters):
			it.leaf = &pager{prefix: child}
		default:
			it.open = append(it.open, &pager{prefix: child})
		}
	}
}

// Object returns the current object.
func (it *Iterator) Object() walktypes.Object {
	return it.obj
}

// Prefix returns the current prefix when iterating prefixes.
func (it *Iterator) Prefix() string {
	return it.prefix
}

// Err returns the error that ended the walk, if any.
func (it *Iterator) Err() error {
	return it.err
}

func (it *Iterator) fail(err error) bool {
	it.err = err
	it.done = true
	it.open = nil
	it.leaf = nil
	return false
}

func (it *Iterator) nextChild(p *pager) (string, bool, error) {
	for {
		if p.page != nil && p.pos < len(p.page.Prefixes) {
			child := p.page.Prefixes[p.pos]
			p.pos++
			return child, true, nil
		}
		if more, err := it.fetch(p); !more || err != nil {
			return "", false, err
		}
	}
}

func (it *Iterator) nextObject(p *pager) (walktypes.Object, bool, error) {
	for {
		if p.page != nil && p.pos < len(p.page.Objects) {
			obj := p.page.Objects[p.pos]
			p.pos++
			return obj, true, nil
		}
		if more, err := it.fetch(p); !more || err != nil {
			return walktypes.Object{}, false, err
		}
	}
}

// fetch loads the next page of p. It reports false once the listing is
// exhausted.
func (it *Iterator) fetch(p *pager) (bool, error) {
	if p.fetched && (p.page == nil || !p.page.Truncated) {
		p.page = nil
		p.cursor = ""
		return false, nil
	}

	if err := it.ctx.Err(); err != nil {
		return false, errors.NewListError(p.prefix, err)
	}

	if it.w.logger != nil {
		it.w.logger.DebugContext(it.ctx, "listing prefix",
			"prefix", p.prefix,
			"continued", p.cursor != "")
	}

	page, err := it.w.lister.List(it.ctx, walktypes.ListRequest{
		Prefix:    p.prefix,
		Delimiter: it.w.delim,
		PageSize:  it.w.pageSize,
		Cursor:    p.cursor,
	})
	if err != nil {
		if it.w.logger != nil {
			it.w.logger.ErrorContext(it.ctx, "failed to list prefix",
				"prefix", p.prefix,
				"error", err)
		}
		return false, errors.NewListError(p.prefix, err)
	}

	if page != nil && page.Truncated && page.NextCursor == "" {
		return false, errors.NewListError(p.prefix,
			fmt.Errorf("%w: truncated page without a cursor", errors.ErrInvalidInput))
	}

	p.fetched = true
	p.page = page
	p.pos = 0
	if page != nil {
		p.cursor = page.NextCursor
	}
	return true, nil
}
