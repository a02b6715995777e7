package schedule

import (
	"time"

	"bridgewatch/internal/core/status"
)

// DefaultMaxDuration is the exclusive upper bound on one closure's length
const DefaultMaxDuration = 24 * time.Hour

// materialize places a candidate on the clock in loc. An end at or before the start on
// the same date is read as running past midnight and moved forward 24 hours
func materialize(c candidate, order int, loc *time.Location) status.Interval {
	start := c.date.At(c.span.start/60, c.span.start%60, loc)
	end := c.date.At(c.span.end/60, c.span.end%60, loc)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return status.Interval{Start: start, End: end, SourceBlock: order}
}

// filter accepts plausible, previously unseen intervals in block order
type filter struct {
	max      time.Duration
	seen     map[[2]int64]struct{}
	accepted []status.Interval
}

func newFilter(max time.Duration) *filter {
	if max <= 0 {
		max = DefaultMaxDuration
	}
	return &filter{max: max, seen: make(map[[2]int64]struct{})}
}

// offer returns zero when iv was accepted, otherwise the rejection reason.
// Dedup is on exact instants; near duplicates are kept apart
func (f *filter) offer(iv status.Interval) Reason {
	if !iv.End.After(iv.Start) {
		return ReasonRejectedNonPositive
	}
	if iv.Duration() >= f.max {
		return ReasonRejectedTooLong
	}
	key := [2]int64{iv.Start.UnixNano(), iv.End.UnixNano()}
	if _, dup := f.seen[key]; dup {
		return ReasonDuplicate
	}
	f.seen[key] = struct{}{}
	f.accepted = append(f.accepted, iv)
	return 0
}
