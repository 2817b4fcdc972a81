package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseIncidentDate(t *testing.T) {
	want := time.Date(2023, time.March, 7, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{"March 7, 2023", want, true},
		{"2023-03-07", want, true},
		{"3/7/2023", want, true},
		{"03/07/2023", want, true},
		{"2023-03-07T00:00:00Z", want, true},
		{"  2023-03-07 ", want, true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
		{"2023-13-40", time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseIncidentDate(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 1122878, ParseCount("1,122,878"))
	assert.Equal(t, 3, ParseCount("3.0"))
	assert.Equal(t, 0, ParseCount(""))
	assert.Equal(t, 0, ParseCount("n/a"))
	assert.Equal(t, -2, ParseCount(" -2 "))
}

func TestParseFloatOrZero(t *testing.T) {
	assert.InDelta(t, -97.74, ParseFloatOrZero("-97.74"), 1e-9)
	assert.Zero(t, ParseFloatOrZero("NaN"))
	assert.Zero(t, ParseFloatOrZero("abc"))
}
