package sentinel

import "testing"

func TestClassify_Table(t *testing.T) {
	tests := []struct {
		in   string
		want Assertion
	}{
		{"", Unaffected},
		{"monday 12 may from 9am to 10am", Unaffected},
		{"there are no closures currently planned", AssertsNoClosures},
		{"no closure currently planned", AssertsNoClosures},
		{"no road closures planned", AssertsNoClosures},
		{"no further closures scheduled at this time", AssertsNoClosures},
		{"no closures are expected this week", AssertsNoClosures},
		{"any further closures will be added to this page", AssertsMoreMayFollow},
		{"any further closures required will be announced here", AssertsMoreMayFollow},
		{"any additional closure will be published in advance", AssertsMoreMayFollow},
		{"closures may be announced", Unaffected},
		{"no parking at any time", Unaffected},
	}
	for _, tc := range tests {
		if got := Classify(tc.in); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestNegates(t *testing.T) {
	yes := []string{
		"no closures on saturday 17 may",
		"there will be no closure on sunday 11th may",
		"no planned closures for monday 2 june",
	}
	for _, s := range yes {
		if !Negates(s) {
			t.Fatalf("Negates(%q) = false, want true", s)
		}
	}
	no := []string{
		"",
		"closure on sunday 11th may from 9pm to 10pm",
		"know closures happen", // "know" is not "no"
	}
	for _, s := range no {
		if Negates(s) {
			t.Fatalf("Negates(%q) = true, want false", s)
		}
	}
}

func TestUnnegated(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"monday 12 may from 9am to 10am", "monday 12 may from 9am to 10am"},
		{"no closures on saturday 17 may", ""},
		{"no closures on tuesday 13 may but the bridge will close on wednesday 14 may from 9am to 10am",
			"the bridge will close on wednesday 14 may from 9am to 10am"},
		{"no closure on monday; tuesday 13 may 9pm to 11pm", "tuesday 13 may 9pm to 11pm"},
		{"closed friday, but no closures on saturday 17 may", ""},
	}
	for _, tt := range tests {
		if got := Unnegated(tt.in); got != tt.want {
			t.Fatalf("Unnegated(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMergeAndString(t *testing.T) {
	if got := Merge(Unaffected, AssertsMoreMayFollow); got != AssertsMoreMayFollow {
		t.Fatalf("Merge = %s", got)
	}
	if got := Merge(AssertsNoClosures, AssertsMoreMayFollow); got != AssertsNoClosures {
		t.Fatalf("Merge = %s", got)
	}
	b, err := AssertsNoClosures.MarshalText()
	if err != nil || string(b) != "no_closures" {
		t.Fatalf("MarshalText = %q, %v", b, err)
	}
}
