// Package normalize canonicalizes one announcement text block into a matchable string
// Pipeline order
// 1 strip control bytes and repair UTF-8
// 2 Unicode NFKC normalization (folds NBSP and friends into plain spaces)
// 3 Case folding
// 4 Remove combining marks and format chars
// 5 Width fold fullwidth to ASCII
// 6 Dash folding, en/em dashes and minus signs become '-'
// 7 Period markers, a.m. / p. m. / AM become am / pm
// 8 Time separators, 9.30 becomes 9:30
// 9 Collapse all whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is stateless and safe for concurrent use
type Normalizer struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the normalized form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1 drop controls then invalid bytes
	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")

	// 2-5 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// the chain only fails on malformed input which Sanitize already removed
		ns = strings.ToLower(s)
	}

	// 6 dashes
	ns = foldDashes(ns)

	// 7 am / pm
	ns = foldPeriods(ns)

	// 8 H.MM -> H:MM
	ns = foldTimeDots(ns)

	// 9 collapse whitespace and trim
	return collapseSpaces(ns)
}

// collapseSpaces converts every whitespace run, newlines included, to one ASCII space
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
