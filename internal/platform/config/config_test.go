package config

import (
	"testing"
	"time"

	kit "bridgewatch/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	core := New().Prefix("CORE_")
	bridge := core.Prefix("BRIDGE_")
	if got := bridge.key("URL"); got != "CORE_BRIDGE_URL" {
		t.Fatalf("key() = %q, want %q", got, "CORE_BRIDGE_URL")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  bridgewatch ")
	if got := c.MustString("NAME"); got != "bridgewatch" {
		t.Fatalf("MustString = %q, want %q", got, "bridgewatch")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q, want %q", got, "def")
	}
	t.Setenv("S_CLASS", " newsflash__padding ")
	if got := c.MayString("CLASS", "x"); got != "newsflash__padding" {
		t.Fatalf("MayString value = %q", got)
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("MISSING", 9); got != 9 {
		t.Fatalf("MayInt default = %d, want %d", got, 9)
	}
	t.Setenv("I_OK", " 7 ")
	if got := c.MayInt("OK", 0); got != 7 {
		t.Fatalf("MayInt ok = %d, want %d", got, 7)
	}
	t.Setenv("I_BAD", "x")
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt bad -> default = %d, want %d", got, 3)
	}
}

func TestMayFloat64(t *testing.T) {
	c := New().Prefix("F_")
	t.Setenv("F_RATE", "0.5")
	if got := c.MayFloat64("RATE", 1); got != 0.5 {
		t.Fatalf("MayFloat64 = %v, want 0.5", got)
	}
	t.Setenv("F_BAD", "half")
	if got := c.MayFloat64("BAD", 2); got != 2 {
		t.Fatalf("MayFloat64 bad -> default = %v", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	if !c.MayBool("MISSING", true) {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("B_T", "true")
	if !c.MayBool("T", false) {
		t.Fatalf("MayBool true expected")
	}
	t.Setenv("B_BAD", "nope")
	if c.MayBool("BAD", false) {
		t.Fatalf("MayBool bad -> default false expected")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("DUR_")
	if got := c.MayDuration("MISS", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration default expected")
	}
	t.Setenv("DUR_OK", "36h")
	if got := c.MayDuration("OK", time.Second); got != 36*time.Hour {
		t.Fatalf("MayDuration ok = %v", got)
	}
	t.Setenv("DUR_BAD", "nope")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad -> default expected")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	if got := c.MayCSV("MISS", []string{"a"}); len(got) != 1 || got[0] != "a" {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CSV_VALS", " one, two , ,three ,, ")
	got := c.MayCSV("VALS", nil)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	t.Setenv("CSV_EMPTY", " , ,")
	if got := c.MayCSV("EMPTY", []string{"fallback"}); len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("MayCSV all-empty -> default mismatch: %#v", got)
	}
}

func TestMayURL(t *testing.T) {
	c := New().Prefix("U_")
	if got := c.MayURL("MISSING", "https://example.com/news"); got.Host != "example.com" {
		t.Fatalf("MayURL default host = %q", got.Host)
	}
	t.Setenv("U_BASE", "http://localhost:8080/page")
	if got := c.MayURL("BASE", "https://example.com"); got.Port() != "8080" {
		t.Fatalf("MayURL port = %q", got.Port())
	}
	t.Setenv("U_REL", "/relative")
	kit.MustPanic(t, func() { _ = c.MayURL("REL", "") })
	t.Setenv("U_FTP", "ftp://example.com/x")
	kit.MustPanic(t, func() { _ = c.MayURL("FTP", "") })
}

func TestMayLocation(t *testing.T) {
	c := New().Prefix("TZ_")
	if got := c.MayLocation("MISSING", "UTC"); got.String() != "UTC" {
		t.Fatalf("MayLocation default = %q", got)
	}
	t.Setenv("TZ_BAD", "Mars/Olympus")
	kit.MustPanic(t, func() { _ = c.MayLocation("BAD", "UTC") })
}

func TestMayPort(t *testing.T) {
	c := New().Prefix("P_")
	if got := c.MayPort("MISSING", 4000); got != ":4000" {
		t.Fatalf("MayPort default = %q", got)
	}
	t.Setenv("P_PORT", ":8081")
	if got := c.MayPort("PORT", 4000); got != ":8081" {
		t.Fatalf("MayPort = %q, want %q", got, ":8081")
	}
	t.Setenv("P_BAD", "abc")
	kit.MustPanic(t, func() { _ = c.MayPort("BAD", 4000) })
	t.Setenv("P_OOB", "70000")
	kit.MustPanic(t, func() { _ = c.MayPort("OOB", 4000) })
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")
	if got := c.MayEnum("MISS", "json", "json", "console"); got != "json" {
		t.Fatalf("MayEnum default = %q, want %q", got, "json")
	}
	t.Setenv("E_FMT", "Console")
	if got := c.MayEnum("FMT", "json", "json", "console"); got != "console" {
		t.Fatalf("MayEnum allowed value = %q, want %q", got, "console")
	}
	t.Setenv("E_BAD", "xml")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "json", "json", "console") })
	if got := c.MayEnum("MISSING", "", "json"); got != "" {
		t.Fatalf("MayEnum with empty def = %q", got)
	}
}
