// Package sentinel classifies normalized blocks that talk about the absence of closures
// rather than describing one. The result is diagnostic only and never drives status
package sentinel

import (
	"regexp"
	"strings"
)

// Assertion is the classification of one block, or of a whole document when folded
type Assertion uint8

const (
	// Unaffected means the block makes no claim about planned closures
	Unaffected Assertion = iota
	// AssertsMoreMayFollow means the block warns that further closures may be announced
	AssertsMoreMayFollow
	// AssertsNoClosures means the block states no closures are planned
	AssertsNoClosures
)

var (
	noClosuresRe = regexp.MustCompile(
		`\bno (?:further |more )?(?:road |bridge )?closures? (?:(?:are|is) )?(?:currently )?(?:scheduled|planned|expected)\b`,
	)
	moreMayFollowRe = regexp.MustCompile(
		`\bany (?:further|additional|future|new) closures?\b.*?\b(?:added|announced|published|notified)\b`,
	)
	negatedRe  = regexp.MustCompile(`\bno (?:further |more |planned |scheduled |road |bridge )*closures?\b`)
	contrastRe = regexp.MustCompile(`;|\b(?:but|however|although|though|whereas|while)\b`)
)

// String returns a stable lowercase name
func (a Assertion) String() string {
	switch a {
	case AssertsNoClosures:
		return "no_closures"
	case AssertsMoreMayFollow:
		return "more_may_follow"
	default:
		return "unaffected"
	}
}

// MarshalText lets the assertion render as its name in JSON and YAML
func (a Assertion) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Classify inspects one normalized block
func Classify(norm string) Assertion {
	if norm == "" {
		return Unaffected
	}
	if noClosuresRe.MatchString(norm) {
		return AssertsNoClosures
	}
	if moreMayFollowRe.MatchString(norm) {
		return AssertsMoreMayFollow
	}
	return Unaffected
}

// Negates reports whether the block contains an explicit "no closure(s)" phrase.
// Dates inside such blocks must not be treated as closure dates
func Negates(norm string) bool {
	return norm != "" && negatedRe.MatchString(norm)
}

// Unnegated returns the clause that follows a contrast after the last "no closure(s)"
// phrase, as in "no closures on tuesday but ... on wednesday from 9am to 10am".
// It returns "" when the negation runs to the end of the block and norm unchanged
// when there is no negation at all
func Unnegated(norm string) string {
	locs := negatedRe.FindAllStringIndex(norm, -1)
	if len(locs) == 0 {
		return norm
	}
	rest := norm[locs[len(locs)-1][1]:]
	loc := contrastRe.FindStringIndex(rest)
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(rest[loc[1]:])
}

// Merge folds per block classifications into a document level one.
// A "no closures" claim outranks "more may follow" which outranks silence
func Merge(a, b Assertion) Assertion {
	if b > a {
		return b
	}
	return a
}
