package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "slash day first",
			in:   "05/08/2023",
			want: "05/08/2023",
		},
		{
			name: "dash short year",
			in:   "5-8-23",
			want: "05/08/2023",
		},
		{
			name: "dot separated",
			in:   "5.8.2023",
			want: "05/08/2023",
		},
		{
			name: "month name",
			in:   "17 Aug 2025",
			want: "17/08/2025",
		},
		{
			name: "full month name",
			in:   "17 August 2025",
			want: "17/08/2025",
		},
		{
			name: "year first",
			in:   "2023/08/05",
			want: "05/08/2023",
		},
		{
			name: "year first dashed",
			in:   "2023-08-15",
			want: "15/08/2023",
		},
		{
			name: "canonical form unchanged",
			in:   "15/08/2023",
			want: "15/08/2023",
		},
		{
			name: "unparsable returned unchanged",
			in:   "99/99/9999",
			want: "99/99/9999",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeDate(tc.in))
		})
	}
}

func TestNormalizeDate_DayFirstWinsOverYearFirst(t *testing.T) {
	// Ambiguous forms read as day-first.
	assert.Equal(t, "05/08/2023", NormalizeDate("05/08/2023"))
	assert.Equal(t, "01/02/2003", NormalizeDate("1/2/2003"))
}

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "14:30", NormalizeTime("14:30:25"))
	assert.Equal(t, "14:30", NormalizeTime("14:30"))
	assert.Equal(t, "14:05", NormalizeTime("2:05 PM"))
	assert.Equal(t, "not a time", NormalizeTime("not a time"))
	assert.Equal(t, "", NormalizeTime(""))
}

func TestExtractDateTime(t *testing.T) {
	date, clock := ExtractDateTime("GOMACHI RESTO\n05/08/2023 14:30\nTOTAL 25.000")
	assert.Equal(t, "05/08/2023", date)
	assert.Equal(t, "14:30", clock)
}

func TestExtractDateTime_Missing(t *testing.T) {
	date, clock := ExtractDateTime("WARUNG MAKMUR\nNASI GORENG")
	assert.Empty(t, date)
	assert.Empty(t, clock)
}
