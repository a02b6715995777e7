package schedule

import (
	"strconv"
	"time"
)

// Regex fragments shared by the recognizers. Alternations list long names first
// because Go regexp is leftmost-first, not longest
const (
	weekdayExpr = `(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tues|tue|wed|thurs|thur|thu|fri|sat|sun)\.?`
	monthExpr   = `(january|february|march|april|may|june|july|august|september|october|november|december|` +
		`jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\b\.?`

	// groups: weekday, day, ordinal, month
	dateExpr = `(?:\b` + weekdayExpr + `,?\s+)?(?:the\s+)?\b(\d{1,2})(st|nd|rd|th)?\s+(?:of\s+)?` + monthExpr

	// group: year
	yearExpr = `(?:,?\s+(\d{4})\b)?`
)

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tues": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thurs": time.Thursday, "thur": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// RolloverPolicy is the January-after-December rule for dates written without a year.
// When enabled, a January date read while now is in December is moved to next year
// if it would otherwise lie more than Margin in the past
type RolloverPolicy struct {
	Enabled bool
	Margin  time.Duration
}

// DefaultRollover is the policy used when none is configured
func DefaultRollover() RolloverPolicy {
	return RolloverPolicy{Enabled: true, Margin: 24 * time.Hour}
}

// Year picks the year for a yearless month/day relative to now.
// applied reports whether the rollover moved it
func (p RolloverPolicy) Year(month time.Month, day int, now time.Time) (year int, applied bool) {
	year = now.Year()
	if !p.Enabled || month != time.January || now.Month() != time.December {
		return year, false
	}
	naive := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	if now.Sub(naive) > p.Margin {
		return year + 1, true
	}
	return year, false
}

// dateFields are the raw captures of one date expression
type dateFields struct {
	weekday string
	day     string
	month   string
	year    string
}

// dateResult is what the scan learned from one block's date expression
type dateResult struct {
	found  bool // a date shaped substring exists
	ok     bool // and it resolved to a real calendar date
	date   Date
	rolled bool
	wdMiss bool
	detail string
}

// resolveDate turns captured fields into a calendar date. Numeric problems such as
// day 31 in June or day 0 yield ok=false with a detail for the diagnostic
func resolveDate(f dateFields, now time.Time, policy RolloverPolicy) dateResult {
	res := dateResult{found: true}

	m, okm := months[f.month]
	if !okm {
		res.detail = "unknown month " + strconv.Quote(f.month)
		return res
	}
	day, err := strconv.Atoi(f.day)
	if err != nil || day < 1 || day > 31 {
		res.detail = "day out of range " + strconv.Quote(f.day)
		return res
	}

	var year int
	if f.year != "" {
		y, err := strconv.Atoi(f.year)
		if err != nil || y < 1900 || y > 2999 {
			res.detail = "year out of range " + strconv.Quote(f.year)
			return res
		}
		year = y
	} else {
		year, res.rolled = policy.Year(m, day, now)
	}

	if day > daysIn(m, year) {
		res.detail = "day " + f.day + " does not exist in " + m.String() + " " + strconv.Itoa(year)
		return res
	}

	res.ok = true
	res.date = Date{Year: year, Month: m, Day: day}
	if wd, okw := weekdays[f.weekday]; okw && wd != res.date.Weekday() {
		res.wdMiss = true
	}
	return res
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
