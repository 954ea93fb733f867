package temporal

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"empty", ""},
		{"unsupported letter", "'w='w"},
		{"unterminated quote", "'dt=yyyy"},
		{"too many hour letters", "HHH"},
		{"too many month letters", "MMMMM"},
		{"variable width after numeric", "yyyyM"},
		{"fraction too long", "SSSSSSSSSS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			assert.Error(t, err)
		})
	}
}

func TestLayout_Granularity(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"'m='m", 0},
		{"'h='H", 0},
		{"'y='yyyy", 1},
		{"yyyy-MM", 2},
		{"'dt='yyyyMMdd", 3},
		{"'dt='yyyy-MM-dd'T'HH", 4},
		{"yyyy-MM-dd HH:mm:ss.SSS", 7},
		{"yyyy dd", 1},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, MustCompile(tt.pattern).Granularity())
		})
	}
}

func TestLayout_Concat(t *testing.T) {
	l := MustCompile("'h='H").Concat(MustCompile("'dt='yyyy'-'MM'-'dd"))

	assert.Equal(t, "'h='H 'dt='yyyy'-'MM'-'dd", l.String())
	assert.True(t, l.Has(FieldHour))
	assert.True(t, l.Has(FieldYear))
	assert.False(t, l.Has(FieldMinute))
	assert.Equal(t, 4, l.Granularity())

	got, ok := l.Parse("h=9 dt=2019-04-19", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2019, 4, 19, 9, 0, 0, 0, time.UTC), got)
}

func TestLayout_Format(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	ts := time.Date(2019, 4, 9, 7, 4, 3, 120_000_000, ny)

	tests := []struct {
		pattern string
		want    string
	}{
		{"'dt='yyyyMMdd", "dt=20190409"},
		{"'dt='yyyy'-'MM'-'dd", "dt=2019-04-09"},
		{"'h='H", "h=7"},
		{"'h='HH", "h=07"},
		{"'m='m", "m=4"},
		{"yy", "19"},
		{"MMM d", "Apr 9"},
		{"MMMM", "April"},
		{"ss.SSS", "03.120"},
		{"''yyyy''", "'2019'"},
		{"'it''s' y", "it's 2019"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, MustCompile(tt.pattern).Format(ts))
		})
	}
}

func TestLayout_Parse(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	tests := []struct {
		name    string
		pattern string
		text    string
		loc     *time.Location
		want    time.Time
		ok      bool
	}{
		{
			name:    "date only rounds down to midnight",
			pattern: "'dt='yyyyMMdd",
			text:    "dt=20190419",
			loc:     time.UTC,
			want:    time.Date(2019, 4, 19, 0, 0, 0, 0, time.UTC),
			ok:      true,
		},
		{
			name:    "midnight in zone",
			pattern: "yyyy-MM-dd",
			text:    "2019-04-19",
			loc:     ny,
			want:    time.Date(2019, 4, 19, 0, 0, 0, 0, ny),
			ok:      true,
		},
		{
			name:    "year and month",
			pattern: "yyyy/MM",
			text:    "2019/04",
			loc:     time.UTC,
			want:    time.Date(2019, 4, 1, 0, 0, 0, 0, time.UTC),
			ok:      true,
		},
		{
			name:    "scan stops at first missing field",
			pattern: "yyyy dd",
			text:    "2019 19",
			loc:     time.UTC,
			want:    time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
			ok:      true,
		},
		{
			name:    "minute before date is ignored without hour",
			pattern: "'m='m 'dt='yyyyMMdd",
			text:    "m=53 dt=20190419",
			loc:     ny,
			want:    time.Date(2019, 4, 19, 0, 0, 0, 0, ny),
			ok:      true,
		},
		{
			name:    "full precision",
			pattern: "yyyy-MM-dd'T'HH:mm:ss.SSSSSSSSS",
			text:    "2019-04-19T09:54:07.123456789",
			loc:     time.UTC,
			want:    time.Date(2019, 4, 19, 9, 54, 7, 123456789, time.UTC),
			ok:      true,
		},
		{
			name:    "millisecond fraction",
			pattern: "yyyyMMddHHmmssSSS",
			text:    "20190419095407123",
			loc:     time.UTC,
			want:    time.Date(2019, 4, 19, 9, 54, 7, 123_000_000, time.UTC),
			ok:      true,
		},
		{
			name:    "two digit year",
			pattern: "yyMMdd",
			text:    "190419",
			loc:     time.UTC,
			want:    time.Date(2019, 4, 19, 0, 0, 0, 0, time.UTC),
			ok:      true,
		},
		{
			name:    "month name",
			pattern: "dd MMM yyyy",
			text:    "19 Apr 2019",
			loc:     time.UTC,
			want:    time.Date(2019, 4, 19, 0, 0, 0, 0, time.UTC),
			ok:      true,
		},
		{
			name:    "day clamped to month end",
			pattern: "yyyy-MM-dd",
			text:    "2019-04-31",
			loc:     time.UTC,
			want:    time.Date(2019, 4, 30, 0, 0, 0, 0, time.UTC),
			ok:      true,
		},
		{name: "no year", pattern: "'h='H", text: "h=9", loc: time.UTC},
		{name: "wrong literal", pattern: "'h='H 'dt='yyyyMMdd", text: "hour=8 dt=20190419", loc: time.UTC},
		{name: "hour out of range", pattern: "yyyy HH", text: "2019 24", loc: time.UTC},
		{name: "trailing text", pattern: "yyyy", text: "2019x", loc: time.UTC},
		{name: "empty", pattern: "'m='mm", text: "", loc: time.UTC},
		{name: "too few digits", pattern: "yyyyMMdd", text: "2019041", loc: time.UTC},
		{name: "month zero", pattern: "yyyy-MM", text: "2019-00", loc: time.UTC},
		{name: "conflicting repeat", pattern: "yyyy yyyy", text: "2019 2020", loc: time.UTC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MustCompile(tt.pattern).Parse(tt.text, tt.loc)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
				assert.Equal(t, tt.loc, got.Location())
			}
		})
	}
}

func TestLayout_FormatThenParse_Widens(t *testing.T) {
	cutoff := time.Date(2019, 4, 19, 23, 0, 0, 0, time.UTC)

	date := MustCompile("yyyyMMdd")
	got, ok := date.Parse(date.Format(cutoff), time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2019, 4, 19, 0, 0, 0, 0, time.UTC), got)

	hour := date.Concat(MustCompile("H"))
	got, ok = hour.Parse(hour.Format(cutoff), time.UTC)
	require.True(t, ok)
	assert.Equal(t, cutoff, got)
}

func TestParseZoned(t *testing.T) {
	got, err := ParseZoned("2019-04-19T09:54:00-04:00[America/New_York]")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", got.Location().String())
	assert.True(t, got.Equal(time.Date(2019, 4, 19, 13, 54, 0, 0, time.UTC)))

	got, err = ParseZoned("2019-04-20T04:01:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())

	_, err = ParseZoned("2019-04-20T04:01:00Z[Nowhere/Atlantis]")
	assert.Error(t, err)

	_, err = ParseZoned("yesterday")
	assert.Error(t, err)

	_, err = ParseZoned("2019-04-20T04:01:00Z]")
	assert.Error(t, err)
}

func TestForever(t *testing.T) {
	assert.True(t, time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC).Before(Forever))
}
