// Package walktypes provides shared type definitions for the recursor module:
// the listing contract the walker consumes and the walker configuration.
package walktypes

import (
	"context"
	"log/slog"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/filters"
)

// Object represents a leaf item returned by a listing.
type Object struct {
	// Key is the full object key
	Key string

	// Size is the object size in bytes
	Size int64

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the entity tag for the object
	ETag string

	// StorageClass is the provider storage class, if reported
	StorageClass string
}

// ListRequest asks for one page of the immediate children of Prefix.
type ListRequest struct {
	// Prefix is the prefix to list. Empty lists the root.
	Prefix string

	// Delimiter groups keys into child prefixes
	Delimiter rune

	// PageSize is the maximum number of prefixes plus objects to return
	PageSize int

	// Cursor is the NextCursor of the previous page, empty for the first page
	Cursor string
}

// Page is one page of a listing.
type Page struct {
	// Prefixes are the child prefixes, each ending with the delimiter
	Prefixes []string

	// Objects are the leaf items directly under the listed prefix
	Objects []Object

	// Truncated reports whether more pages follow
	Truncated bool

	// NextCursor continues the listing when Truncated is set
	NextCursor string
}

// Lister lists the children of a prefix one page at a time. Implementations
// must return no more than req.PageSize entries per page.
type Lister interface {
	List(ctx context.Context, req ListRequest) (*Page, error)
}

// ListerFunc adapts an ordinary function to a Lister.
type ListerFunc func(ctx context.Context, req ListRequest) (*Page, error)

// List calls f(ctx, req).
func (f ListerFunc) List(ctx context.Context, req ListRequest) (*Page, error) {
	return f(ctx, req)
}

// Config holds the walker configuration.
type Config struct {
	// Delimiter separates prefix levels. Default '/'.
	Delimiter rune

	// StartPrefix is where the walk begins. Empty walks from the root.
	StartPrefix string

	// PageSize is the maximum number of entries requested per listing call.
	// Default 1000. Must be at least 1.
	PageSize int

	// Filters select the prefixes to recurse into, one per depth
	Filters []filters.Filter

	// Logger receives walk progress. Nil disables logging.
	Logger *slog.Logger
}

// Option configures a walker.
type Option func(*Config)
