package schedule

import (
	"regexp"
	"time"
)

// groups: weekday, day, ordinal, month, year, clock
var lastUpdatedRe = regexp.MustCompile(
	`\blast\s+updated\b[\s:,-]*(?:on\s+)?` + dateExpr + yearExpr + `(?:[\s,]*(?:at\s+)?(` + clockExpr + `))?`,
)

var lastUpdatedPrefixRe = regexp.MustCompile(`\blast\s+updated\b`)

// isLastUpdated reports whether the block is a "last updated" stamp. Such blocks are
// never read as closures even though they carry a date
func isLastUpdated(norm string) bool { return lastUpdatedPrefixRe.MatchString(norm) }

// parseLastUpdated reads "last updated - monday 12th may at 10:15am", including lead-ins
// such as "this page was last updated on friday 9th may at 3:30pm". A stamp is never in
// the future, so a yearless date landing more than the policy margin after now is read
// as last year. A missing or unreadable clock leaves the stamp at midnight
func parseLastUpdated(norm string, now time.Time, policy RolloverPolicy) (time.Time, bool, string) {
	m := lastUpdatedRe.FindStringSubmatch(norm)
	if m == nil {
		return time.Time{}, false, "last updated stamp without a date"
	}
	dr := resolveDate(dateFields{weekday: m[1], day: m[2], month: m[4], year: m[5]}, now, RolloverPolicy{})
	if !dr.ok {
		return time.Time{}, false, dr.detail
	}
	mins := 0
	if m[6] != "" {
		if c, ok := parseClock(m[6]); ok && (c.period != "" || c.colon) {
			mins = c.to24()
		}
	}
	stamp := dr.date.At(mins/60, mins%60, now.Location())
	if m[5] == "" && policy.Enabled && stamp.Sub(now) > policy.Margin {
		stamp = stamp.AddDate(-1, 0, 0)
	}
	return stamp, true, ""
}
