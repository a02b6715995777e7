package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// one time of day as written: 9, 9:30, 9am, 9:30 pm, 21:15, noon, midnight
	clockExpr = `(?:\b12(?::00)?\s*(?:midnight|noon|midday)\b|\b\d{1,2}(?::\d{2})?(?:\s*(?:am|pm)\b)?|\bnoon\b|\bmidday\b|\bmidnight\b)`

	// groups: start, end
	rangeExpr = `(?:\b(?:from|between)\s+)?(` + clockExpr + `)\s*(?:-|\bto\b|\buntil\b|\btill\b|\band\b)\s*(` + clockExpr + `)`
)

var (
	clockPartsRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
	rangeRe      = regexp.MustCompile(rangeExpr)
)

// clock is a parsed time of day token before am/pm inheritance is settled
type clock struct {
	hour, minute int
	period       string // "am", "pm" or "" when unstated
	named        bool   // noon, midday, midnight
	colon        bool
}

// explicit reports whether the token alone pins a time of day
func (c clock) explicit() bool { return c.period != "" || c.named || c.colon }

// parseClock reads one clockExpr token. It only checks the token shape and ranges,
// the hour is resolved to 24h by settleRange
func parseClock(tok string) (clock, bool) {
	tok = strings.TrimSpace(tok)
	switch {
	case strings.HasSuffix(tok, "noon"), strings.HasSuffix(tok, "midday"):
		return clock{hour: 12, period: "pm", named: true}, true
	case strings.HasSuffix(tok, "midnight"):
		return clock{hour: 12, period: "am", named: true}, true
	}
	m := clockPartsRe.FindStringSubmatch(tok)
	if m == nil {
		return clock{}, false
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return clock{}, false
	}
	c := clock{hour: h, period: m[3], colon: m[2] != ""}
	if c.colon {
		c.minute, err = strconv.Atoi(m[2])
		if err != nil || c.minute > 59 {
			return clock{}, false
		}
	}
	if c.period != "" {
		if h < 1 || h > 12 {
			return clock{}, false
		}
	} else if h > 23 {
		return clock{}, false
	}
	return c, true
}

// to24 converts to minutes since midnight
func (c clock) to24() int {
	h := c.hour
	switch c.period {
	case "am":
		if h == 12 {
			h = 0
		}
	case "pm":
		if h != 12 {
			h += 12
		}
	}
	return h*60 + c.minute
}

// settleRange resolves a start/end token pair to minutes since midnight.
// A side without am/pm borrows a period from the other side, picking whichever of am or
// pm gives the shorter forward span: "9 to 11pm" is 21:00-23:00, "11 to 1pm" is
// 11:00-13:00 and "9pm to 1" runs to 01:00. With no period on either side both tokens
// are read as 24h clock values. Bare numbers on both sides ("2 to 3") are not a range
func settleRange(a, b clock) (start, end int, ok bool) {
	if !a.explicit() && !b.explicit() {
		return 0, 0, false
	}
	switch {
	case a.period == "" && b.period != "" && !a.named:
		if a.hour < 1 || a.hour > 12 {
			return 0, 0, false
		}
		a.period = closest(a, b.to24(), true)
	case b.period == "" && a.period != "" && !b.named:
		if b.hour < 1 || b.hour > 12 {
			return 0, 0, false
		}
		b.period = closest(b, a.to24(), false)
	}
	if a.period == "" && b.period == "" && !(a.colon && b.colon) {
		return 0, 0, false
	}
	return a.to24(), b.to24(), true
}

// closest picks the period for the unpinned side c so the span to or from the pinned
// side other is shortest. isStart says which end of the range c is
func closest(c clock, other int, isStart bool) string {
	best, bestSpan := "", 0
	for _, p := range [...]string{"am", "pm"} {
		c.period = p
		span := forward(c.to24(), other)
		if !isStart {
			span = forward(other, c.to24())
		}
		if best == "" || span < bestSpan {
			best, bestSpan = p, span
		}
	}
	return best
}

// forward is the minutes from a to b going forward, a full day when they are equal
func forward(a, b int) int {
	d := (b - a + 24*60) % (24 * 60)
	if d == 0 {
		return 24 * 60
	}
	return d
}

// timeRange is a settled pair of times of day in minutes since midnight
type timeRange struct {
	start, end int
}

// parseRangeTokens settles two captured clock tokens. ok=false with a non-empty detail
// means the tokens looked like times but held impossible values
func parseRangeTokens(startTok, endTok string) (tr timeRange, ok bool, detail string) {
	a, okA := parseClock(startTok)
	b, okB := parseClock(endTok)
	if !okA || !okB {
		return tr, false, "time out of range " + strconv.Quote(startTok+" / "+endTok)
	}
	s, e, okS := settleRange(a, b)
	if !okS {
		return tr, false, ""
	}
	return timeRange{start: s, end: e}, true, ""
}

// findRange returns the first well formed time range anywhere in norm
func findRange(norm string) (tr timeRange, found bool, detail string) {
	for _, m := range rangeRe.FindAllStringSubmatch(norm, -1) {
		tr, ok, d := parseRangeTokens(m[1], m[2])
		if ok {
			return tr, true, ""
		}
		if d != "" && detail == "" {
			detail = d
		}
	}
	return tr, false, detail
}
