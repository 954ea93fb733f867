package temporal

import (
	"strconv"
	"strings"
	"time"
)

var (
	monthShort = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	monthFull  = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

// Format renders t with the layout. Fields are taken from t in its own
// location; callers convert with t.In first.
func (l *Layout) Format(t time.Time) string {
	var b strings.Builder

	for _, tok := range l.tokens {
		switch tok.kind {
		case tokenLiteral:
			b.WriteString(tok.literal)

		case tokenMonthText:
			if tok.fullText {
				b.WriteString(monthFull[t.Month()-1])
			} else {
				b.WriteString(monthShort[t.Month()-1])
			}

		case tokenFraction:
			v := t.Nanosecond() / pow10(9-tok.minDigits)
			b.WriteString(pad(v, tok.minDigits))

		case tokenNumber:
			v := fieldValue(t, tok.field)
			if tok.twoDigitYear {
				v %= 100
			}
			b.WriteString(pad(v, tok.minDigits))
		}
	}

	return b.String()
}

func fieldValue(t time.Time, f Field) int {
	switch f {
	case FieldYear:
		return t.Year()
	case FieldMonth:
		return int(t.Month())
	case FieldDay:
		return t.Day()
	case FieldHour:
		return t.Hour()
	case FieldMinute:
		return t.Minute()
	case FieldSecond:
		return t.Second()
	}
	return t.Nanosecond()
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func pow10(n int) int {
	p := 1
	for ; n > 0; n-- {
		p *= 10
	}
	return p
}
