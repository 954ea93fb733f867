package temporal

import (
	"fmt"
	"strings"
	"time"
)

// Forever is the latest instant the walker compares against. It is used as
// the upper bound when only a lower bound is configured.
var Forever = time.Unix(1<<63-1-62135596801, 999999999).UTC()

// ParseZoned parses an RFC 3339 timestamp with an optional zone id suffix in
// square brackets, e.g. "2019-04-19T09:54:00-04:00[America/New_York]". With a
// zone id the result is in that location; otherwise it carries the parsed
// offset.
func ParseZoned(s string) (time.Time, error) {
	text, zone := s, ""
	if strings.HasSuffix(s, "]") {
		open := strings.LastIndexByte(s, '[')
		if open < 0 {
			return time.Time{}, fmt.Errorf("parse %q: missing '['", s)
		}
		text, zone = s[:open], s[open+1:len(s)-1]
	}

	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", s, err)
	}

	if zone == "" {
		return t, nil
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", s, err)
	}
	return t.In(loc), nil
}
