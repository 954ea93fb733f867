package recursor

import (
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/filters"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/walktypes"
)

// DefaultPageSize is the page size requested when none is configured.
// It is the maximum S3 returns per ListObjectsV2 call.
const DefaultPageSize = 1000

// WithDelimiter sets the character separating prefix levels.
// Default is '/'.
func WithDelimiter(delim rune) walktypes.Option {
	return func(c *walktypes.Config) {
		c.Delimiter = delim
	}
}

// WithStartPrefix sets the prefix the walk starts from. A trailing delimiter
// is added if missing. Default is the root of the bucket.
func WithStartPrefix(prefix string) walktypes.Option {
	return func(c *walktypes.Config) {
		c.StartPrefix = prefix
	}
}

// WithPageSize sets the maximum number of entries requested per listing call.
// Must be at least 1; New fails otherwise.
func WithPageSize(size int) walktypes.Option {
	return func(c *walktypes.Config) {
		c.PageSize = size
	}
}

// WithDepth recurses n levels below the start prefix into every prefix.
// It replaces any filters set before it.
func WithDepth(n int) walktypes.Option {
	return func(c *walktypes.Config) {
		c.Filters = filters.Repeat(n)
	}
}

// WithFilters sets one filter per depth below the start prefix. Use a
// filters.Builder to create them. It replaces any filters set before it.
func WithFilters(fs ...filters.Filter) walktypes.Option {
	return func(c *walktypes.Config) {
		c.Filters = fs
	}
}

// WithLogger sets the logger for walk progress.
// Listing calls are logged at debug level. Nil disables logging.
func WithLogger(logger *slog.Logger) walktypes.Option {
	return func(c *walktypes.Config) {
		c.Logger = logger
	}
}
