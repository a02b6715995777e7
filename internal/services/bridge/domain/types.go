// Package domain holds the bridge service types and ports
package domain

import (
	"time"

	"bridgewatch/internal/core/schedule"
	"bridgewatch/internal/core/sentinel"
	"bridgewatch/internal/core/status"
)

// Status is one accepted refresh of the announcement page
type Status struct {
	RunID     string          `json:"run_id"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
	Result    schedule.Result `json:"result"`
}

// At re-derives the snapshot for another reference clock from the accepted intervals
func (s Status) At(now time.Time) Status {
	out := s
	out.Result.Snapshot = status.Derive(s.Result.Intervals(), now)
	return out
}

// StatusView is the flat payload served by GET /status
type StatusView struct {
	State             string             `json:"state"`
	BridgeClosed      bool               `json:"bridge_closed"`
	CurrentClosureEnd *time.Time         `json:"current_closure_end"`
	NextClosureStart  *time.Time         `json:"next_closure_start"`
	NextClosureEnd    *time.Time         `json:"next_closure_end"`
	LastUpdated       *time.Time         `json:"last_updated"`
	Sentinel          sentinel.Assertion `json:"sentinel"`
	FetchedAt         time.Time          `json:"fetched_at"`
	AsOf              time.Time          `json:"as_of"`
	RunID             string             `json:"run_id"`
}

// View flattens s as seen at asOf. s must already be derived at asOf
func (s Status) View(asOf time.Time) StatusView {
	snap := s.Result.Snapshot
	return StatusView{
		State:             snap.State(),
		BridgeClosed:      snap.BridgeClosed,
		CurrentClosureEnd: snap.CurrentClosureEnd,
		NextClosureStart:  snap.NextClosureStart,
		NextClosureEnd:    snap.NextClosureEnd,
		LastUpdated:       s.Result.LastUpdated,
		Sentinel:          s.Result.Sentinel,
		FetchedAt:         s.FetchedAt,
		AsOf:              asOf,
		RunID:             s.RunID,
	}
}

// ClosuresView is the payload served by GET /closures
type ClosuresView struct {
	ClosureTimes []status.Interval    `json:"closure_times"`
	Matches      []schedule.Match      `json:"matches"`
	Diagnostics  []schedule.Diagnostic `json:"diagnostics"`
	FetchedAt    time.Time             `json:"fetched_at"`
	RunID        string                `json:"run_id"`
}

// Closures lists the accepted intervals and per block diagnostics of s
func (s Status) Closures() ClosuresView {
	return ClosuresView{
		ClosureTimes: s.Result.Snapshot.ClosureTimes,
		Matches:      s.Result.Matches,
		Diagnostics:  s.Result.Diagnostics,
		FetchedAt:    s.FetchedAt,
		RunID:        s.RunID,
	}
}

// ParseInput is an ad hoc extraction request. Exactly one of HTML or Blocks is read,
// HTML wins when both are set
type ParseInput struct {
	HTML     string              `json:"html" validate:"required_without=Blocks"`
	Blocks   []schedule.RawBlock `json:"blocks" validate:"required_without=HTML"`
	Class    string              `json:"class"`
	Now      string              `json:"now"`
	Timezone string              `json:"timezone" validate:"omitempty,timezone"`
}
