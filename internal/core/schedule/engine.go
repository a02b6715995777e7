package schedule

import (
	"sort"
	"time"

	"bridgewatch/internal/core/normalize"
	"bridgewatch/internal/core/sentinel"
	"bridgewatch/internal/core/status"
)

// Options tunes the engine. The zero value is not useful, start from DefaultOptions
type Options struct {
	Rollover    RolloverPolicy
	MaxDuration time.Duration
}

// DefaultOptions returns the rollover rule enabled with a one day margin and a 24h cap
func DefaultOptions() Options {
	return Options{Rollover: DefaultRollover(), MaxDuration: DefaultMaxDuration}
}

// Match ties an accepted interval back to the block and shape that produced it
type Match struct {
	OrderIndex int             `json:"order_index"`
	Format     Format          `json:"format"`
	Interval   status.Interval `json:"interval"`
}

// Result is everything one extraction call returns
type Result struct {
	Snapshot    status.Snapshot    `json:"snapshot"`
	Matches     []Match            `json:"matches"`
	Diagnostics []Diagnostic       `json:"diagnostics"`
	Sentinel    sentinel.Assertion `json:"sentinel"`
	LastUpdated *time.Time         `json:"last_updated,omitempty"`
}

// Intervals returns the accepted intervals in block order
func (r Result) Intervals() []status.Interval {
	out := make([]status.Interval, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Interval
	}
	return out
}

// scanState is folded through the block sequence. Contexts are never mutated once built,
// each step hands back a new state value
type scanState struct {
	ctx    *DateContext // last standalone date from any block
	anchor *DateContext // last dated paragraph; a container with text of its own drops it
}

// Context returns the live date context, nil when none has been seen
func (s scanState) Context() *DateContext { return s.ctx }

// outcome is what one block contributed
type outcome struct {
	cand  *candidate
	diags []Diagnostic
}

// Engine is safe for concurrent use; Extract keeps all scan state on its own stack
type Engine struct {
	opts Options
	norm *normalize.Normalizer
}

// New builds an Engine
func New(opts Options) *Engine {
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = DefaultMaxDuration
	}
	return &Engine{opts: opts, norm: normalize.New()}
}

// Options returns the effective options
func (e *Engine) Options() Options { return e.opts }

// Extract runs one pass over blocks and derives the status at now. Dates are built in
// now's location. Blocks are read in OrderIndex order; the input slice is not modified
func (e *Engine) Extract(blocks []RawBlock, now time.Time) Result {
	ordered := make([]RawBlock, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].OrderIndex < ordered[j].OrderIndex })

	res := Result{Matches: []Match{}, Diagnostics: []Diagnostic{}}
	f := newFilter(e.opts.MaxDuration)
	var st scanState

	for _, b := range ordered {
		norm := e.norm.Normalize(b.Text)
		if norm == "" {
			continue
		}
		res.Sentinel = sentinel.Merge(res.Sentinel, sentinel.Classify(norm))

		if isLastUpdated(norm) {
			if stamp, ok, detail := parseLastUpdated(norm, now, e.opts.Rollover); ok {
				res.LastUpdated = &stamp
			} else {
				res.Diagnostics = append(res.Diagnostics, diag(b.OrderIndex, ReasonNumericParseFailure, detail))
			}
			continue
		}

		var out outcome
		st, out = e.step(st, b, norm, now)
		res.Diagnostics = append(res.Diagnostics, out.diags...)
		if out.cand == nil {
			continue
		}

		iv := materialize(*out.cand, b.OrderIndex, now.Location())
		if r := f.offer(iv); r != 0 {
			res.Diagnostics = append(res.Diagnostics, diag(b.OrderIndex, r, iv.Start.Format(time.RFC3339)+" / "+iv.End.Format(time.RFC3339)))
			continue
		}
		res.Matches = append(res.Matches, Match{OrderIndex: b.OrderIndex, Format: out.cand.format, Interval: iv})
	}

	res.Snapshot = status.Derive(f.accepted, now)
	return res
}

// step is the per block transition (state_in, block) -> (state_out, outcome)
func (e *Engine) step(st scanState, b RawBlock, norm string, now time.Time) (scanState, outcome) {
	var out outcome

	dr := scanDate(norm, now, e.opts.Rollover)

	if sentinel.Negates(norm) {
		if dr.found || rangeRe.MatchString(norm) {
			out.diags = append(out.diags, diag(b.OrderIndex, ReasonNegated, "block states no closure"))
		}
		// only a self contained inline closure after a contrast survives; the
		// context is left as it was
		if rest := sentinel.Unnegated(norm); rest != "" {
			in := input{order: b.OrderIndex, norm: rest, kind: b.Kind, state: st, now: now, policy: e.opts.Rollover}
			for _, withYear := range []bool{false, true} {
				if a := tryFullDate(in, withYear); a.matched {
					c := a.cand
					out.cand = &c
					out.diags = append(out.diags, dateFlags(b.OrderIndex, c.rolled, c.wdMiss)...)
					break
				}
			}
		}
		return st, out
	}

	next := st
	if b.Kind == Container {
		next.anchor = nil
	}
	if dr.ok {
		dc := &DateContext{Date: dr.date, SetAt: b.OrderIndex}
		next.ctx = dc
		if b.Kind == Paragraph {
			next.anchor = dc
		}
	}

	in := input{order: b.OrderIndex, norm: norm, kind: b.Kind, date: dr, state: next, now: now, policy: e.opts.Rollover}

	var first *attempt
	for _, rc := range recognizers {
		a := rc.try(in)
		if a.matched {
			c := a.cand
			out.cand = &c
			first = nil
			break
		}
		if a.reason != 0 && first == nil {
			a := a
			first = &a
		}
	}

	switch {
	case out.cand != nil:
	case first != nil:
		out.diags = append(out.diags, diag(b.OrderIndex, first.reason, first.detail))
	case dr.found && !dr.ok:
		out.diags = append(out.diags, diag(b.OrderIndex, ReasonNumericParseFailure, dr.detail))
	}

	rolled := dr.rolled || (out.cand != nil && out.cand.rolled)
	wdMiss := dr.wdMiss || (out.cand != nil && out.cand.wdMiss)
	out.diags = append(out.diags, dateFlags(b.OrderIndex, rolled, wdMiss)...)

	return next, out
}

func dateFlags(order int, rolled, wdMiss bool) []Diagnostic {
	var ds []Diagnostic
	if rolled {
		ds = append(ds, diag(order, ReasonAmbiguousYearRollover, "january date read in december moved to next year"))
	}
	if wdMiss {
		ds = append(ds, diag(order, ReasonWeekdayMismatch, "stated weekday does not match the date"))
	}
	return ds
}
