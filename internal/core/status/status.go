// Package status derives the point-in-time bridge status from a list of closure intervals
package status

import (
	"sort"
	"time"

	ptime "bridgewatch/internal/platform/time"
)

// Interval is one closure span. End is always after Start once accepted
type Interval struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	SourceBlock int       `json:"source_block"`
}

// Contains reports whether t falls inside the closed range [Start, End]
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// Duration returns End - Start
func (iv Interval) Duration() time.Duration { return iv.End.Sub(iv.Start) }

// Snapshot is the derived status for one reference clock.
// The pointer fields are nil when there is nothing to report
type Snapshot struct {
	BridgeClosed      bool       `json:"bridge_closed"`
	CurrentClosureEnd *time.Time `json:"current_closure_end,omitempty"`
	NextClosureStart  *time.Time `json:"next_closure_start,omitempty"`
	NextClosureEnd    *time.Time `json:"next_closure_end,omitempty"`
	ClosureTimes      []Interval `json:"closure_times"`
}

// State maps the snapshot to the open/closed wording used by displays
func (s Snapshot) State() string {
	if s.BridgeClosed {
		return "closed"
	}
	return "open"
}

// SortIntervals returns a copy ordered by start then end. The sort is stable so equal
// pairs keep their block order
func SortIntervals(in []Interval) []Interval {
	out := make([]Interval, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].End.Before(out[j].End)
	})
	return out
}

// Derive computes the snapshot for now. It is total: any input yields a snapshot.
// Intervals are sorted defensively, callers may pass them in any order
func Derive(intervals []Interval, now time.Time) Snapshot {
	sorted := SortIntervals(intervals)
	snap := Snapshot{ClosureTimes: sorted}

	// earliest start containing now wins when inputs overlap
	for _, iv := range sorted {
		if iv.Contains(now) {
			snap.BridgeClosed = true
			snap.CurrentClosureEnd = ptime.Ptr(iv.End)
			break
		}
	}

	// smallest start strictly after now, ties broken by smallest end (sort order)
	for _, iv := range sorted {
		if iv.Start.After(now) {
			snap.NextClosureStart = ptime.Ptr(iv.Start)
			snap.NextClosureEnd = ptime.Ptr(iv.End)
			break
		}
	}

	return snap
}
