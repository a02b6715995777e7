package schedule

import (
	"regexp"
	"time"
)

// Format names one phrasing shape a closure can be written in
type Format uint8

const (
	// FormatFullDateInline is "sunday 11th may from 9:15pm to 10:45pm" with no year
	FormatFullDateInline Format = iota + 1
	// FormatFullDateWithYear is the inline shape with an explicit four digit year
	FormatFullDateWithYear
	// FormatParagraphListItem is a dated paragraph followed by a list item holding the times
	FormatParagraphListItem
	// FormatContextTime is a time-only block read against the carried date context
	FormatContextTime
)

var formatNames = map[Format]string{
	FormatFullDateInline:    "full_date_inline",
	FormatFullDateWithYear:  "full_date_with_year",
	FormatParagraphListItem: "paragraph_list_item",
	FormatContextTime:       "context_time",
}

// String returns a stable snake_case name
func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// MarshalText renders the format name
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

var (
	// groups: weekday, day, ordinal, month, year, start, end
	fullRe = regexp.MustCompile(dateExpr + yearExpr + `[\s,:;-]*` + rangeExpr)

	// groups: weekday, day, ordinal, month, year
	standaloneDateRe = regexp.MustCompile(dateExpr + yearExpr)
)

// input is everything a recognizer may look at for one block
type input struct {
	order  int
	norm   string
	kind   StructuralKind
	date   dateResult // the block's own standalone date, if any
	state  scanState  // scan state after this block's own date was applied
	now    time.Time
	policy RolloverPolicy
}

// candidate is a recognized closure before validation
type candidate struct {
	format Format
	date   Date
	span   timeRange
	rolled bool
	wdMiss bool
}

// attempt is the outcome of one recognizer on one block.
// reason is zero when the shape is simply absent
type attempt struct {
	cand    candidate
	matched bool
	reason  Reason
	detail  string
}

func absent() attempt { return attempt{} }

func failed(r Reason, detail string) attempt { return attempt{reason: r, detail: detail} }

func matched(c candidate) attempt { return attempt{cand: c, matched: true} }

// recognizer is one entry of the closed, ordered format set
type recognizer struct {
	format Format
	try    func(in input) attempt
}

// recognizers is the declared priority order. The first match wins for a block.
// Paragraph pairing sits ahead of the plain context read because a dated paragraph
// also sets the context, so the reverse order would never reach it
var recognizers = []recognizer{
	{FormatFullDateInline, func(in input) attempt { return tryFullDate(in, false) }},
	{FormatFullDateWithYear, func(in input) attempt { return tryFullDate(in, true) }},
	{FormatParagraphListItem, tryParagraphListItem},
	{FormatContextTime, tryContextTime},
}

// tryFullDate handles both inline shapes; withYear selects which one
func tryFullDate(in input, withYear bool) attempt {
	m := fullRe.FindStringSubmatch(in.norm)
	if m == nil || (m[5] != "") != withYear {
		return absent()
	}
	dr := resolveDate(dateFields{weekday: m[1], day: m[2], month: m[4], year: m[5]}, in.now, in.policy)
	if !dr.ok {
		return failed(ReasonNumericParseFailure, dr.detail)
	}
	tr, ok, detail := parseRangeTokens(m[6], m[7])
	if !ok {
		if detail == "" {
			return absent()
		}
		return failed(ReasonNumericParseFailure, detail)
	}
	format := FormatFullDateInline
	if withYear {
		format = FormatFullDateWithYear
	}
	return matched(candidate{format: format, date: dr.date, span: tr, rolled: dr.rolled, wdMiss: dr.wdMiss})
}

// tryParagraphListItem reads a time-only list item against the nearest dated paragraph
// before it. Bare list wrappers in between do not break the pairing
func tryParagraphListItem(in input) attempt {
	if in.kind != ListItem || in.state.anchor == nil || in.date.found {
		return absent()
	}
	tr, ok, detail := findRange(in.norm)
	if !ok {
		if detail == "" {
			return absent()
		}
		return failed(ReasonNumericParseFailure, detail)
	}
	return matched(candidate{format: FormatParagraphListItem, date: in.state.anchor.Date, span: tr})
}

// tryContextTime reads a time range against the live date context. A block carrying its
// own date has already replaced the context with it, so the range binds to that date
func tryContextTime(in input) attempt {
	tr, ok, detail := findRange(in.norm)
	if !ok {
		if detail == "" {
			return absent()
		}
		return failed(ReasonNumericParseFailure, detail)
	}
	if in.date.found && !in.date.ok {
		return failed(ReasonNumericParseFailure, in.date.detail)
	}
	if in.state.ctx == nil {
		return failed(ReasonDateContextMissing, "time range without a preceding date")
	}
	return matched(candidate{format: FormatContextTime, date: in.state.ctx.Date, span: tr})
}

// scanDate finds the block's first standalone date expression
func scanDate(norm string, now time.Time, policy RolloverPolicy) dateResult {
	m := standaloneDateRe.FindStringSubmatch(norm)
	if m == nil {
		return dateResult{}
	}
	return resolveDate(dateFields{weekday: m[1], day: m[2], month: m[4], year: m[5]}, now, policy)
}
