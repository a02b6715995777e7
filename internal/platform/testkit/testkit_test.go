package testkit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()
	MustNotPanic(t, func() {})
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, "bridge closed until 10:30", "closed")
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(p, []byte("<p>hi</p>"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := string(ReadFile(t, p)); got != "<p>hi</p>" {
		t.Fatalf("ReadFile = %q", got)
	}
}

func TestNoLeaks(t *testing.T) {
	NoLeaks(t)
	done := make(chan struct{})
	go func() {
		time.Sleep(time.Millisecond)
		close(done)
	}()
	<-done
}
