package partner

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalization rules. Every function is pure and idempotent; two contact
// values refer to the same identity when their normalized forms are equal.
//
//	email:   fold, trim
//	phone:   NFKC, keep digits only; a leading '+' survives when digits follow
//	address: fold, non letter/digit runes become spaces, whitespace collapsed
//	name:    fold, whitespace collapsed
//
// fold is NFKC, Unicode case fold, lower case and NFKC again, repeated until
// the string no longer changes.

// maxFoldPasses bounds foldCase; real input settles after one or two passes
const maxFoldPasses = 4

// foldCase returns a caseless NFKC form of s. Folding can leave combining
// marks that NFKC composes into new letters, and it maps lower case Cherokee
// to upper case, so the steps repeat until they reach a fixed point.
func foldCase(s string) string {
	s = norm.NFKC.String(s)
	for i := 0; i < maxFoldPasses; i++ {
		next := norm.NFKC.String(strings.ToLower(cases.Fold().String(s)))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// NormalizeEmail canonicalizes an email address for comparison
func NormalizeEmail(raw string) string {
	return strings.TrimSpace(foldCase(raw))
}

// NormalizePhone canonicalizes a phone number for comparison.
// "+1 (555) 010-2000" and "+15550102000" both become "+15550102000".
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(norm.NFKC.String(raw))

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(s, "+") {
		return "+" + digits
	}
	return digits
}

// NormalizeAddress canonicalizes a postal address for comparison.
// "12 Main St., Apt #4" becomes "12 main st apt 4".
func NormalizeAddress(raw string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, foldCase(raw))
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeName canonicalizes a person or company name for comparison
func NormalizeName(raw string) string {
	return strings.Join(strings.Fields(foldCase(raw)), " ")
}
