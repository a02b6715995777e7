package raw

import "testing"

func TestConfGet(t *testing.T) {
	t.Setenv("APP_NAME", " bridgewatch ")
	t.Setenv("LOG_LEVEL", " info ")

	root := New()
	logc := root.Prefix("LOG_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root hit trimmed", conf: root, key: "APP_NAME", def: "x", want: "bridgewatch"},
		{name: "prefixed hit", conf: logc, key: "LEVEL", def: "x", want: "info"},
		{name: "missing returns default", conf: logc, key: "MISSING", def: "defv", want: "defv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfGetFirst(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_SERVICE", "bridgewatch-api")

	if got := c.GetFirst("none", "NAME", "SERVICE"); got != "bridgewatch-api" {
		t.Fatalf("GetFirst = %q", got)
	}
	if got := c.GetFirst("none", "NAME", "OTHER"); got != "none" {
		t.Fatalf("GetFirst default = %q", got)
	}
}

func TestConfGetBool(t *testing.T) {
	c := New().Prefix("B_")
	for k, v := range map[string]string{"T1": "true", "T2": "1", "T3": "YES", "T4": " on ", "F1": "false", "F2": "0", "F3": "nah"} {
		t.Setenv("B_"+k, v)
	}
	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"T3", false, true},
		{"T4", false, true},
		{"F1", true, false},
		{"F2", true, false},
		{"F3", true, false},
		{"MISSING", true, true},
		{"MISSING", false, false},
	}
	for _, tt := range tests {
		if got := c.GetBool(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tt.key, tt.def, got, tt.want)
		}
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("SYS_")
	t.Setenv("SYS_OK", "42")
	t.Setenv("SYS_WS", "  7  ")
	t.Setenv("SYS_NONNUM", "12x")
	t.Setenv("SYS_NEG", "-5")
	t.Setenv("SYS_PLUS", "+5")

	tests := []struct {
		key  string
		def  int
		want int
	}{
		{"OK", 0, 42},
		{"WS", 1, 7},
		{"NONNUM", 9, 9},
		{"NEG", 3, 3},
		{"PLUS", 4, 4},
		{"MISSING", 11, 11},
	}
	for _, tt := range tests {
		if got := c.GetInt(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}
