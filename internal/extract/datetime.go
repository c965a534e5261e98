package extract

import "time"

// Input layouts tried in order; the first that parses wins. Day-first
// numeric forms come before year-first so "05/08/2023" reads as 5 August.
var dateLayouts = []string{
	"2/1/2006", "2/1/06", "2-1-2006", "2-1-06",
	"2.1.2006", "2.1.06", "2 January 2006", "2 Jan 2006",
	"2006/1/2", "06/1/2", "2006-1-2", "06-1-2",
	"2006.1.2", "06.1.2", "January 2 2006", "Jan 2 2006",
}

var timeLayouts = []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM"}

// NormalizeDate canonicalizes a captured date substring to DD/MM/YYYY. An
// unparsable string is returned unchanged; callers treat that as degraded
// output, not an error.
func NormalizeDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

// NormalizeTime canonicalizes a captured time substring to 24-hour HH:MM,
// with the same degradation rule as NormalizeDate.
func NormalizeTime(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}

// ExtractDateTime locates the first date-like and time-like substrings in
// the receipt text and canonicalizes each. Missing fields come back empty.
func ExtractDateTime(fullText string) (date, clock string) {
	if m := reDate.FindString(fullText); m != "" {
		date = NormalizeDate(m)
	}
	if m := reTime.FindString(fullText); m != "" {
		clock = NormalizeTime(m)
	}
	return date, clock
}
