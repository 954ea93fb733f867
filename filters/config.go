package filters

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/errors"
)

// Config is a declarative form of a Builder, e.g.
//
//	delimiter: "/"
//	after: "2019-04-19T09:54:00-04:00[America/New_York]"
//	levels:
//	  - segment: 'depth\d+'
//	  - temporal: "'dt='yyyy'-'MM'-'dd"
//	  - temporal: "'h='H"
//	  - any: true
//	  - relative: '.*/src=(\w+)/dst=(?!\1).+/'
type Config struct {
	// Delimiter is a single character. Defaults to "/".
	Delimiter string `yaml:"delimiter,omitempty"`

	// After is the inclusive lower bound, see ParseZoned.
	After string `yaml:"after,omitempty"`

	// Before is the exclusive upper bound. Requires After.
	Before string `yaml:"before,omitempty"`

	Levels []LevelConfig `yaml:"levels"`
}

// LevelConfig describes one level. Exactly one field must be set.
type LevelConfig struct {
	Segment  string `yaml:"segment,omitempty"`
	Relative string `yaml:"relative,omitempty"`
	Temporal string `yaml:"temporal,omitempty"`
	Any      bool   `yaml:"any,omitempty"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter config: %w", err)
	}
	return DecodeConfig(bytes.NewReader(data))
}

// DecodeConfig decodes a YAML config. Unknown keys are rejected.
func DecodeConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Config
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, errors.NewConfigError("config", "decode: %v", err)
	}
	return &c, nil
}

// Builder returns a Builder configured from c. Problems with c are reported
// by the builder's Err and Filters.
func (c *Config) Builder() *Builder {
	delim := '/'
	if c.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(c.Delimiter)
		if size != len(c.Delimiter) {
			return NewBuilder('/').fail(errors.NewConfigError("config", "delimiter %q must be one character", c.Delimiter))
		}
		delim = r
	}

	b := NewBuilder(delim)

	switch {
	case c.After != "" && c.Before != "":
		b.BetweenZoned(c.After, c.Before)
	case c.After != "":
		b.AfterZoned(c.After)
	case c.Before != "":
		return b.fail(errors.NewConfigError("config", "before requires after"))
	}

	for i, l := range c.Levels {
		if n := l.count(); n != 1 {
			return b.fail(errors.NewConfigError("config", "level %d sets %d kinds, want exactly one", i, n))
		}

		switch {
		case l.Segment != "":
			b.AddSegmentPattern(l.Segment)
		case l.Relative != "":
			b.AddRelativePattern(l.Relative)
		case l.Temporal != "":
			b.AddTemporalSegment(l.Temporal)
		default:
			b.AddAnySegment()
		}
	}

	return b
}

// Filters is shorthand for c.Builder().Filters().
func (c *Config) Filters() ([]Filter, error) {
	return c.Builder().Filters()
}

func (l LevelConfig) count() int {
	n := 0
	for _, set := range []bool{l.Segment != "", l.Relative != "", l.Temporal != "", l.Any} {
		if set {
			n++
		}
	}
	return n
}
