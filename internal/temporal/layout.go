// Package temporal compiles date/time patterns found in prefix segments and
// resolves partially specified values onto a zoned baseline.
//
// Patterns use the familiar letter syntax:
//
//	y, u   year ("yy" is a two-digit year based at 2000)
//	M      month ("MMM" short name, "MMMM" full name)
//	d      day of month
//	H      hour of day (0-23)
//	m      minute of hour
//	s      second of minute
//	S      fraction of second, one letter per digit (up to 9)
//
// Text inside single quotes is literal, and "''" is a literal quote. Any other
// non-letter character is literal.
package temporal

import (
	"fmt"
	"strings"
	"unicode"
)

// Field is a calendar field a layout can populate. Fields are ordered from the
// coarsest to the finest.
type Field int

const (
	FieldYear Field = iota
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldSecond
	FieldFraction

	numFields
)

var fieldNames = [numFields]string{"year", "month", "day", "hour", "minute", "second", "fraction"}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenNumber
	tokenFraction
	tokenMonthText
)

type token struct {
	kind    tokenKind
	literal string
	field   Field

	// digit bounds for numeric tokens, digit count for fractions
	minDigits int
	maxDigits int

	twoDigitYear bool
	fullText     bool
}

func (t token) numeric() bool {
	return t.kind == tokenNumber || t.kind == tokenFraction
}

func (t token) fixed() bool {
	return t.minDigits == t.maxDigits
}

// Layout is a compiled date/time pattern. A Layout is immutable and safe for
// concurrent use.
type Layout struct {
	pattern string
	tokens  []token
	fields  [numFields]bool
}

// Compile compiles a date/time pattern.
func Compile(pattern string) (*Layout, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty temporal pattern")
	}

	l := &Layout{pattern: pattern}
	runes := []rune(pattern)

	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case r == '\'':
			lit, next, err := quoted(runes, i)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", pattern, err)
			}
			l.appendLiteral(lit)
			i = next

		case isLetter(r):
			n := 1
			for i+n < len(runes) && runes[i+n] == r {
				n++
			}
			tok, err := letterToken(r, n)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", pattern, err)
			}
			l.tokens = append(l.tokens, tok)
			l.fields[tok.field] = true
			i += n

		default:
			l.appendLiteral(string(r))
			i++
		}
	}

	if err := l.checkAdjacent(); err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	return l, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Layout {
	l, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return l
}

// Concat returns a new layout matching l, a single space, then next.
func (l *Layout) Concat(next *Layout) *Layout {
	out := &Layout{
		pattern: l.pattern + " " + next.pattern,
		tokens:  make([]token, 0, len(l.tokens)+len(next.tokens)+1),
	}
	out.tokens = append(out.tokens, l.tokens...)
	out.appendLiteral(" ")
	out.tokens = append(out.tokens, next.tokens...)

	for f := Field(0); f < numFields; f++ {
		out.fields[f] = l.fields[f] || next.fields[f]
	}
	return out
}

// String returns the source pattern.
func (l *Layout) String() string {
	return l.pattern
}

// Has reports whether the layout populates f.
func (l *Layout) Has(f Field) bool {
	return l.fields[f]
}

// Granularity returns the number of leading fields, in year → fraction order,
// the layout populates. A layout with no year has granularity zero.
func (l *Layout) Granularity() int {
	n := 0
	for n < int(numFields) && l.fields[n] {
		n++
	}
	return n
}

func (l *Layout) appendLiteral(s string) {
	if n := len(l.tokens); n > 0 && l.tokens[n-1].kind == tokenLiteral {
		l.tokens[n-1].literal += s
		return
	}
	l.tokens = append(l.tokens, token{kind: tokenLiteral, literal: s})
}

// checkAdjacent rejects runs of numeric fields with no literal between them
// unless every field after the first has a fixed width.
func (l *Layout) checkAdjacent() error {
	for i := 1; i < len(l.tokens); i++ {
		if l.tokens[i].numeric() && l.tokens[i-1].numeric() && !l.tokens[i].fixed() {
			return fmt.Errorf("adjacent %s field must have a fixed width", l.tokens[i].field)
		}
	}
	return nil
}

func quoted(runes []rune, start int) (string, int, error) {
	// '' outside quotes is a literal quote
	if start+1 < len(runes) && runes[start+1] == '\'' {
		return "'", start + 2, nil
	}

	var b strings.Builder
	for i := start + 1; i < len(runes); i++ {
		if runes[i] != '\'' {
			b.WriteRune(runes[i])
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '\'' {
			b.WriteRune('\'')
			i++
			continue
		}
		return b.String(), i + 1, nil
	}
	return "", 0, fmt.Errorf("unterminated quote at %d", start)
}

func isLetter(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsLetter(r)
}

func letterToken(r rune, n int) (token, error) {
	switch r {
	case 'y', 'u':
		if n == 2 {
			return token{kind: tokenNumber, field: FieldYear, minDigits: 2, maxDigits: 2, twoDigitYear: true}, nil
		}
		if n > 9 {
			return token{}, fmt.Errorf("too many year letters: %d", n)
		}
		return token{kind: tokenNumber, field: FieldYear, minDigits: n, maxDigits: 9}, nil

	case 'M':
		switch n {
		case 1, 2:
			return token{kind: tokenNumber, field: FieldMonth, minDigits: n, maxDigits: 2}, nil
		case 3:
			return token{kind: tokenMonthText, field: FieldMonth}, nil
		case 4:
			return token{kind: tokenMonthText, field: FieldMonth, fullText: true}, nil
		}
		return token{}, fmt.Errorf("too many month letters: %d", n)

	case 'd', 'H', 'm', 's':
		if n > 2 {
			return token{}, fmt.Errorf("too many %q letters: %d", r, n)
		}
		return token{kind: tokenNumber, field: numericField(r), minDigits: n, maxDigits: 2}, nil

	case 'S':
		if n > 9 {
			return token{}, fmt.Errorf("fraction supports at most 9 digits, got %d", n)
		}
		return token{kind: tokenFraction, field: FieldFraction, minDigits: n, maxDigits: n}, nil
	}

	return token{}, fmt.Errorf("unsupported pattern letter %q", r)
}

func numericField(r rune) Field {
	switch r {
	case 'd':
		return FieldDay
	case 'H':
		return FieldHour
	case 'm':
		return FieldMinute
	default:
		return FieldSecond
	}
}
