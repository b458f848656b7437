// Package grading holds the pure answer-comparison rules. No I/O: the
// solve service feeds it the stored canonical answer and the raw
// submission and persists whatever it decides.
package grading

import (
	"strconv"
	"strings"
	"unicode"
)

// Normalize canonicalizes a raw answer: lowercased, all whitespace removed,
// decimal commas unified to periods. Total and idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if unicode.IsSpace(r) {
			continue
		}
		if r == ',' {
			b.WriteRune('.')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// HasAlternatives reports whether a stored answer encodes multiple accepted
// alternatives ("2;3" accepts 2 and 3, in any order). A comma inside a
// plain decimal number ("3,5") is a decimal separator, not a delimiter.
func HasAlternatives(stored string) bool {
	if strings.Contains(stored, ";") {
		return true
	}
	if !strings.Contains(stored, ",") {
		return false
	}
	if _, err := strconv.ParseFloat(Normalize(stored), 64); err == nil {
		return false
	}
	return true
}

// AlternativeSet splits raw on ';' and ',' and normalizes each non-empty
// fragment into a set.
func AlternativeSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		if n := Normalize(part); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Grade decides correctness of a submitted answer against the stored one.
// When the stored answer lists alternatives the submission must supply
// exactly the same set (order- and duplicate-insensitive); otherwise the
// two normalized values must match. A malformed empty stored answer only
// matches an equally empty submission.
func Grade(stored, submitted string) bool {
	if HasAlternatives(stored) {
		return setsEqual(AlternativeSet(stored), AlternativeSet(submitted))
	}
	return Normalize(stored) == Normalize(submitted)
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
