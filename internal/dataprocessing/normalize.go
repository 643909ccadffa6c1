package dataprocessing

import (
	"regexp"
	"strings"
)

// positionMap folds PFR's fine-grained position labels into the groups the
// analysis reports on.
var positionMap = map[string]string{
	"OLB": "LB",
	"ILB": "LB",
	"MLB": "LB",
	"FB":  "RB",
	"FS":  "S",
	"SS":  "S",
	"LT":  "OT",
	"RT":  "OT",
	"LG":  "OG",
	"RG":  "OG",
	"NT":  "DT",
}

var (
	suffixRe     = regexp.MustCompile(`(?i)\b(jr|sr|ii|iii|iv|hof)\b`)
	punctRe      = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeName lowercases, strips generational suffixes and punctuation,
// and collapses whitespace. This is the merge key between the draft and
// All-Pro datasets, so both sides must go through it.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = suffixRe.ReplaceAllString(name, "")
	name = punctRe.ReplaceAllString(name, "")
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// NormalizePosition maps sub-positions onto their analysis group. Unknown
// labels pass through unchanged.
func NormalizePosition(pos string) string {
	pos = strings.TrimSpace(pos)
	if mapped, ok := positionMap[pos]; ok {
		return mapped
	}
	return pos
}
