package normalize

import (
	"regexp"
	"strings"
)

var (
	// a.m. / a. m. / a.m / p.m. etc. The leading group keeps the preceding byte
	// because Go regexp has no lookbehind and "9a.m." must still match
	periodRe = regexp.MustCompile(`(^|[^a-z])([ap])\s?\.\s?m\.?`)

	// candidate H.MM groups, bounds are checked by hand in foldTimeDots
	timeDotRe = regexp.MustCompile(`\d{1,2}\.\d{2}`)
)

// foldDashes maps hyphen, dash and minus lookalikes to ASCII '-'
func foldDashes(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '‐', '‑', '‒', '–', '—', '―', '−', '﹘', '﹣', '－':
			return '-'
		}
		return r
	}, s)
}

// foldPeriods rewrites dotted period markers to bare am / pm
func foldPeriods(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return periodRe.ReplaceAllString(s, "${1}${2}m")
}

// foldTimeDots rewrites 9.30 to 9:30 when the group stands alone and looks like a clock
// reading. Dotted dates such as 12.05.2025 and decimals such as 1.255 are left alone
func foldTimeDots(s string) string {
	locs := timeDotRe.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}
	b := []byte(s)
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start > 0 && (isDigit(s[start-1]) || s[start-1] == '.') {
			continue
		}
		if end < len(s) && isDigit(s[end]) {
			continue
		}
		if end+1 < len(s) && s[end] == '.' && isDigit(s[end+1]) {
			continue
		}
		dot := strings.IndexByte(s[start:end], '.') + start
		if !clockLike(s[start:dot], s[dot+1:end]) {
			continue
		}
		b[dot] = ':'
	}
	return string(b)
}

func clockLike(h, m string) bool {
	hh := atoi2(h)
	mm := atoi2(m)
	return hh >= 0 && hh <= 24 && mm >= 0 && mm <= 59
}

func atoi2(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
