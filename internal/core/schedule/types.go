// Package schedule extracts closure intervals from announcement text blocks.
//
// Blocks are normalized, classified, and folded in order through a small scan state
// that carries the most recent explicit date. Each block is offered to a fixed,
// ordered set of format recognizers; the first match wins and its candidate passes
// through validation and dedup before joining the interval list. The engine is pure:
// it reads no clock, performs no I/O, and keeps nothing between calls
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// StructuralKind is the minimal markup role of a block
type StructuralKind uint8

const (
	// Paragraph is a free text paragraph
	Paragraph StructuralKind = iota
	// ListItem is a bullet or numbered list entry
	ListItem
	// Container is a grouping element such as a nested div or list
	Container
)

var kindNames = [...]string{"paragraph", "list_item", "container"}

// String returns the lowercase kind name
func (k StructuralKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// MarshalText renders the kind name
func (k StructuralKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText accepts the kind name, or the short forms p, li and div
func (k *StructuralKind) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "paragraph", "p", "":
		*k = Paragraph
	case "list_item", "listitem", "li":
		*k = ListItem
	case "container", "div":
		*k = Container
	default:
		return fmt.Errorf("schedule: unknown structural kind %q", string(b))
	}
	return nil
}

// RawBlock is one text block as delivered by the acquisition layer
type RawBlock struct {
	Text       string         `json:"text" yaml:"text"`
	OrderIndex int            `json:"order_index" yaml:"order_index"`
	Kind       StructuralKind `json:"kind" yaml:"kind"`
}

// Date is a calendar date without a clock or zone
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// At returns the instant for hour:minute on d in loc
func (d Date) At(hour, minute int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc)
}

// Weekday returns the day of the week of d
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// String renders d as YYYY-MM-DD
func (d Date) String() string { return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day) }

// MarshalText renders d as YYYY-MM-DD
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// DateContext is the last standalone date seen in the scan
type DateContext struct {
	Date  Date `json:"date"`
	SetAt int  `json:"set_at"`
}
