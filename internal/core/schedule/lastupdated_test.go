package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLastUpdated(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"dash form", "last updated - friday 9th may at 3:30pm", utc(2025, time.May, 9, 15, 30), true},
		{"page prefix", "page last updated: 9 may 2025", utc(2025, time.May, 9, 0, 0), true},
		{"lead-in sentence", "this page was last updated on friday 9th may at 3:30pm", utc(2025, time.May, 9, 15, 30), true},
		{"no date", "last updated recently", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, isLastUpdated(tt.in))
			got, ok, _ := parseLastUpdated(tt.in, monMorning, DefaultRollover())
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.False(t, isLastUpdated("monday 12 may from 9am to 11am"))
}
