// Package memberid derives the human-readable membership identifier handed
// to an applicant when they join. The identifier is a pure function of the
// enrollment year, department, and roll number, so resubmitting the same
// details always yields the same id.
//
// Example: year "2028", department "AI&DS", roll "21CS123" → "28AURAAI123".
package memberid

import (
	"regexp"
	"strings"
)

// prefix is the fixed club literal placed between the year and department
// segments.
const prefix = "AURA"

// deptCodes maps known department names to their short codes. Lookup is on
// the trimmed, uppercased input.
var deptCodes = map[string]string{
	"AI&DS": "AI",
	"AI&ML": "ML",
	"CSE":   "CS",
	"IT":    "IT",
	"CSBS":  "CB",
	"MECH":  "MC",
	"EEE":   "EE",
	"ECE":   "EC",
	"MBA":   "MBA",
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// Derive builds a membership identifier from free-text registration fields.
//
// Malformed input degrades to partial output instead of failing: an unknown
// department falls back to the sanitized input itself, a roll number with no
// trailing digits contributes an empty segment, and a year with fewer than
// two digits contributes whatever digits it has.
func Derive(year, department, rollNumber string) string {
	dept := strings.ToUpper(strings.TrimSpace(department))
	code, ok := deptCodes[dept]
	if !ok {
		code = stripNonAlnum(dept)
	}

	roll := ""
	if m := trailingDigits.FindStringSubmatch(strings.TrimSpace(rollNumber)); m != nil {
		roll = m[1]
	}

	yearDigits := digitsOnly(year)
	if len(yearDigits) > 2 {
		yearDigits = yearDigits[len(yearDigits)-2:]
	}

	return yearDigits + prefix + code + roll
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
