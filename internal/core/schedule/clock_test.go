package schedule

import (
	"testing"
)

func TestParseRangeTokens(t *testing.T) {
	tests := []struct {
		start, end string
		ok         bool
		wantS      int
		wantE      int
		detail     bool
	}{
		{"9:00am", "10:30am", true, 9 * 60, 10*60 + 30, false},
		{"9:00 am", "10:30 pm", true, 9 * 60, 22*60 + 30, false},
		{"9", "11pm", true, 21 * 60, 23 * 60, false},
		{"11", "1pm", true, 11 * 60, 13 * 60, false},
		{"11", "1am", true, 23 * 60, 1 * 60, false},
		{"11am", "1", true, 11 * 60, 13 * 60, false},
		{"9pm", "1", true, 21 * 60, 1 * 60, false},
		{"21:15", "22:45", true, 21*60 + 15, 22*60 + 45, false},
		{"12am", "12pm", true, 0, 12 * 60, false},
		{"10pm", "midnight", true, 22 * 60, 0, false},
		{"10pm", "12 midnight", true, 22 * 60, 0, false},
		{"noon", "2pm", true, 12 * 60, 14 * 60, false},
		{"2", "3", false, 0, 0, false},
		{"13pm", "2pm", false, 0, 0, true},
		{"9:75am", "10am", false, 0, 0, true},
		{"9:00", "10", false, 0, 0, false},
	}
	for _, tc := range tests {
		tr, ok, detail := parseRangeTokens(tc.start, tc.end)
		if ok != tc.ok {
			t.Fatalf("parseRangeTokens(%q, %q) ok = %v, want %v", tc.start, tc.end, ok, tc.ok)
		}
		if (detail != "") != tc.detail {
			t.Fatalf("parseRangeTokens(%q, %q) detail = %q", tc.start, tc.end, detail)
		}
		if !ok {
			continue
		}
		if tr.start != tc.wantS || tr.end != tc.wantE {
			t.Fatalf("parseRangeTokens(%q, %q) = %d-%d, want %d-%d", tc.start, tc.end, tr.start, tr.end, tc.wantS, tc.wantE)
		}
	}
}

func TestFindRange(t *testing.T) {
	tests := []struct {
		in    string
		found bool
		start int
	}{
		{"from 9:00am to 10:30am", true, 9 * 60},
		{"between 9pm and 11pm", true, 21 * 60},
		{"9am - 11am", true, 9 * 60},
		{"9am-11am", true, 9 * 60},
		{"closed 10pm until 6am", true, 22 * 60},
		{"lanes 2 to 3 and from 9pm to 11pm", true, 21 * 60},
		{"the bridge will close at 9pm", false, 0},
		{"monday 12 may", false, 0},
		{"", false, 0},
	}
	for _, tc := range tests {
		tr, found, _ := findRange(tc.in)
		if found != tc.found {
			t.Fatalf("findRange(%q) found = %v, want %v", tc.in, found, tc.found)
		}
		if found && tr.start != tc.start {
			t.Fatalf("findRange(%q) start = %d, want %d", tc.in, tr.start, tc.start)
		}
	}
}
