package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// incidentDateLayouts lists the accepted date formats, most common first.
var incidentDateLayouts = []string{
	"January 2, 2006",
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseIncidentDate parses a date cell. Unparseable values yield the zero
// time and false, matching a coerce-to-null read of the source.
func ParseIncidentDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range incidentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseFloatOrZero parses a string as float64, returning 0 on failure.
func ParseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseCount parses an integer cell that may carry thousands separators
// ("1,122,878") or a trailing fraction ("3.0"). Failures return 0.
func ParseCount(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return int(math.Round(ParseFloatOrZero(s)))
}
