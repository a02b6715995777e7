package schedule

// Reason classifies why a block was skipped or annotated
type Reason uint8

const (
	// ReasonDateContextMissing is a time-only block with no live date context
	ReasonDateContextMissing Reason = iota + 1
	// ReasonNumericParseFailure is a shape that matched but held out of range numbers
	ReasonNumericParseFailure
	// ReasonAmbiguousYearRollover records that the January after December rule moved a date
	ReasonAmbiguousYearRollover
	// ReasonNegated is a block that states a date has no closure
	ReasonNegated
	// ReasonRejectedNonPositive is a candidate whose end is not after its start
	ReasonRejectedNonPositive
	// ReasonRejectedTooLong is a candidate spanning the maximum duration or more
	ReasonRejectedTooLong
	// ReasonDuplicate is a candidate identical to one already accepted
	ReasonDuplicate
	// ReasonWeekdayMismatch is a stated weekday that disagrees with the resolved date
	ReasonWeekdayMismatch
)

var reasonNames = map[Reason]string{
	ReasonDateContextMissing:    "date_context_missing",
	ReasonNumericParseFailure:   "numeric_parse_failure",
	ReasonAmbiguousYearRollover: "ambiguous_year_rollover",
	ReasonNegated:               "negated",
	ReasonRejectedNonPositive:   "rejected_non_positive",
	ReasonRejectedTooLong:       "rejected_too_long",
	ReasonDuplicate:             "duplicate",
	ReasonWeekdayMismatch:       "weekday_mismatch",
}

// String returns a stable snake_case name
func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "unknown"
}

// MarshalText renders the reason name
func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Skipped reports whether the reason means the block produced no interval
func (r Reason) Skipped() bool {
	switch r {
	case ReasonAmbiguousYearRollover, ReasonWeekdayMismatch:
		return false
	}
	return true
}

// Diagnostic is one per-block note for operators
type Diagnostic struct {
	OrderIndex int    `json:"order_index"`
	Reason     Reason `json:"reason"`
	Detail     string `json:"detail,omitempty"`
}

func diag(order int, r Reason, detail string) Diagnostic {
	return Diagnostic{OrderIndex: order, Reason: r, Detail: detail}
}
