package temporal

import (
	"strconv"
	"strings"
	"time"
)

// parsed holds the field values read from a text.
type parsed struct {
	values [numFields]int
	set    [numFields]bool
}

func (p *parsed) put(f Field, v int) bool {
	if p.set[f] && p.values[f] != v {
		// the same field appeared twice with different values
		return false
	}
	p.values[f] = v
	p.set[f] = true
	return true
}

// Parse reads text with the layout and resolves it to an instant in loc.
//
// The result is invalid (ok is false) when the text does not match the
// layout, a field is out of range, or the layout does not populate a year.
// Otherwise fields are applied in year → fraction order onto the baseline
// 1970-01-01T00:00:00 in loc, stopping at the first field the layout does not
// populate. A layout with a date but no hour therefore resolves to midnight,
// which is what makes partial prefixes comparable with a full cutoff.
func (l *Layout) Parse(text string, loc *time.Location) (time.Time, bool) {
	p, ok := l.scan(text)
	if !ok {
		return time.Time{}, false
	}
	return l.resolve(p, loc)
}

func (l *Layout) scan(text string) (*parsed, bool) {
	p := &parsed{}
	pos := 0

	for i := 0; i < len(l.tokens); i++ {
		tok := l.tokens[i]

		switch tok.kind {
		case tokenLiteral:
			if !strings.HasPrefix(text[pos:], tok.literal) {
				return nil, false
			}
			pos += len(tok.literal)

		case tokenMonthText:
			names := monthShort[:]
			if tok.fullText {
				names = monthFull[:]
			}
			matched := false
			for m, name := range names {
				if strings.HasPrefix(text[pos:], name) {
					if !p.put(FieldMonth, m+1) {
						return nil, false
					}
					pos += len(name)
					matched = true
					break
				}
			}
			if !matched {
				return nil, false
			}

		default:
			// a numeric run: the first field takes what the fixed-width
			// fields after it leave over
			end := i + 1
			reserved := 0
			for end < len(l.tokens) && l.tokens[end].numeric() {
				reserved += l.tokens[end].minDigits
				end++
			}

			digits := countDigits(text[pos:])
			width := digits - reserved
			if width > tok.maxDigits {
				width = tok.maxDigits
			}
			if width < tok.minDigits {
				return nil, false
			}

			for j := i; j < end; j++ {
				if j > i {
					width = l.tokens[j].minDigits
				}
				if pos+width > len(text) {
					return nil, false
				}
				v, err := strconv.Atoi(text[pos : pos+width])
				if err != nil {
					return nil, false
				}
				if !store(p, l.tokens[j], v) {
					return nil, false
				}
				pos += width
			}
			i = end - 1
		}
	}

	if pos != len(text) {
		return nil, false
	}
	return p, true
}

func store(p *parsed, tok token, v int) bool {
	switch {
	case tok.kind == tokenFraction:
		v *= pow10(9 - tok.minDigits)
	case tok.twoDigitYear:
		v += 2000
	}

	if !inRange(tok.field, v) {
		return false
	}
	return p.put(tok.field, v)
}

func inRange(f Field, v int) bool {
	switch f {
	case FieldMonth:
		return v >= 1 && v <= 12
	case FieldDay:
		return v >= 1 && v <= 31
	case FieldHour:
		return v >= 0 && v <= 23
	case FieldMinute, FieldSecond:
		return v >= 0 && v <= 59
	}
	return v >= 0
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func (l *Layout) resolve(p *parsed, loc *time.Location) (time.Time, bool) {
	stop := l.Granularity()
	if stop == 0 {
		return time.Time{}, false
	}

	// 1970-01-01T00:00:00.000 baseline
	v := [numFields]int{1970, 1, 1, 0, 0, 0, 0}
	for f := Field(0); int(f) < stop; f++ {
		v[f] = p.values[f]
	}

	month := time.Month(v[FieldMonth])
	if last := daysIn(month, v[FieldYear]); v[FieldDay] > last {
		v[FieldDay] = last
	}

	return time.Date(v[FieldYear], month, v[FieldDay], v[FieldHour], v[FieldMinute], v[FieldSecond], v[FieldFraction], loc), true
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
