package testkit

import (
	"sync"
	"testing"
	"time"
)

var (
	clockFn         = func() string { return "wall" }
	refreshInterval = 5 * time.Minute
)

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &clockFn, func() string { return "fixed" })
		if got := clockFn(); got != "fixed" {
			t.Fatalf("swap did not take effect, got %q", got)
		}
		Swap(t, &refreshInterval, time.Second)
		if refreshInterval != time.Second {
			t.Fatalf("swap of value did not take effect, got %v", refreshInterval)
		}
	})
	if got := clockFn(); got != "wall" {
		t.Fatalf("func not restored, got %q", got)
	}
	if refreshInterval != 5*time.Minute {
		t.Fatalf("value not restored, got %v", refreshInterval)
	}
}

func TestSerial_DoesNotInterleave(t *testing.T) {
	var (
		mu  sync.Mutex
		seq []string
	)
	record := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"A", "B"} {
			name := name
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				record(name + "-start")
				time.Sleep(20 * time.Millisecond)
				record(name + "-end")
			})
		}
	})

	if len(seq) != 4 {
		t.Fatalf("unexpected sequence %v", seq)
	}
	// each start must be followed directly by its own end
	for i := 0; i < 4; i += 2 {
		if seq[i][:1] != seq[i+1][:1] {
			t.Fatalf("interleaved execution: %v", seq)
		}
	}
}
