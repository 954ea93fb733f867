// Package memlist provides an in-memory object store that lists keys by
// delimiter the way S3 ListObjectsV2 does. It is meant for tests, examples
// and dry runs of filter configurations.
package memlist

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/errors"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/walktypes"
)

// Cursor kinds. A cursor is the last entry of the previous page, tagged with
// whether it was a common prefix.
const (
	cursorObject = "o"
	cursorPrefix = "p"
)

// Store is a sorted set of objects. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	keys    []string
	objects map[string]walktypes.Object

	calls atomic.Int64
}

// New returns a store holding the given keys, each with zero size.
func New(keys ...string) *Store {
	s := &Store{objects: make(map[string]walktypes.Object)}
	for _, k := range keys {
		s.Put(walktypes.Object{Key: k})
	}
	return s
}

// Put adds or replaces an object.
func (s *Store) Put(obj walktypes.Object) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[obj.Key]; !ok {
		i := sort.SearchStrings(s.keys, obj.Key)
		s.keys = append(s.keys, "")
		copy(s.keys[i+1:], s.keys[i:])
		s.keys[i] = obj.Key
	}
	if obj.LastModified.IsZero() {
		obj.LastModified = time.Unix(0, 0).UTC()
	}
	s.objects[obj.Key] = obj
}

// Delete removes an object if present.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return
	}
	delete(s.objects, key)
	i := sort.SearchStrings(s.keys, key)
	s.keys = append(s.keys[:i], s.keys[i+1:]...)
}

// Len returns the number of objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Calls returns the number of List calls served.
func (s *Store) Calls() int64 {
	return s.calls.Load()
}

// List returns one page of the children of req.Prefix.
func (s *Store) List(ctx context.Context, req walktypes.ListRequest) (*walktypes.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.PageSize < 1 {
		return nil, fmt.Errorf("%w: page size must be at least 1", errors.ErrInvalidInput)
	}

	after, afterPrefix, err := decodeCursor(req.Cursor)
	if err != nil {
		return nil, err
	}

	s.calls.Add(1)

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := sort.SearchStrings(s.keys, req.Prefix)
	if req.Cursor != "" {
		i := sort.SearchStrings(s.keys, after)
		if i < len(s.keys) && s.keys[i] == after && !afterPrefix {
			i++
		}
		if i > start {
			start = i
		}
	}

	page := &walktypes.Page{}
	n := 0
	last, lastPrefix := "", false

	for i := start; i < len(s.keys); i++ {
		key := s.keys[i]
		if !strings.HasPrefix(key, req.Prefix) {
			break
		}
		if afterPrefix && strings.HasPrefix(key, after) {
			continue
		}

		rest := key[len(req.Prefix):]
		if req.Delimiter != 0 {
			if idx := strings.IndexRune(rest, req.Delimiter); idx >= 0 {
				common := req.Prefix + rest[:idx+utf8.RuneLen(req.Delimiter)]
				if lastPrefix && last == common {
					continue
				}
				if n == req.PageSize {
					page.Truncated = true
					break
				}
				page.Prefixes = append(page.Prefixes, common)
				n++
				last, lastPrefix = common, true
				continue
			}
		}

		if n == req.PageSize {
			page.Truncated = true
			break
		}
		page.Objects = append(page.Objects, s.objects[key])
		n++
		last, lastPrefix = key, false
	}

	if page.Truncated {
		page.NextCursor = encodeCursor(last, lastPrefix)
	}
	return page, nil
}

func encodeCursor(last string, isPrefix bool) string {
	if isPrefix {
		return cursorPrefix + last
	}
	return cursorObject + last
}

func decodeCursor(c string) (string, bool, error) {
	if c == "" {
		return "", false, nil
	}
	switch c[:1] {
	case cursorObject:
		return c[1:], false, nil
	case cursorPrefix:
		return c[1:], true, nil
	}
	return "", false, fmt.Errorf("%w: malformed cursor %q", errors.ErrInvalidInput, c)
}

var _ walktypes.Lister = (*Store)(nil)
