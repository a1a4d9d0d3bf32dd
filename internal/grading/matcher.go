package grading

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// CloseThreshold is the similarity an answer must exceed to count as a typo.
const CloseThreshold = 0.80

type Verdict string

const (
	VerdictExact Verdict = "exact"
	VerdictClose Verdict = "close"
	VerdictWrong Verdict = "wrong"
)

// Correct collapses the verdict into the scoring signal.
func (v Verdict) Correct() bool {
	return v == VerdictExact || v == VerdictClose
}

type Result struct {
	Verdict    Verdict
	Similarity float64
}

var (
	folder       = cases.Fold()
	turkishLower = cases.Lower(language.Turkish)
)

// Normalize trims, composes and case-folds s so that visually identical
// answers compare equal.
func Normalize(s string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(s)))
}

// normalizeTurkish lowers s with Turkish casing: I→ı and İ→i.
func normalizeTurkish(s string) string {
	return norm.NFC.String(turkishLower.String(norm.NFC.String(strings.TrimSpace(s))))
}

// Grade compares a learner's answer to the expected one. Both strings are
// compared under generic case folding and under Turkish casing rules, and the
// closer of the two comparisons counts.
func Grade(expected, actual string) Result {
	r := grade(Normalize(expected), Normalize(actual))
	if r.Verdict == VerdictExact {
		return r
	}
	if tr := grade(normalizeTurkish(expected), normalizeTurkish(actual)); tr.Similarity > r.Similarity {
		return tr
	}
	return r
}

func grade(a, b string) Result {
	if a == b {
		return Result{Verdict: VerdictExact, Similarity: 1}
	}

	sim := Similarity(a, b)
	if sim > CloseThreshold {
		return Result{Verdict: VerdictClose, Similarity: sim}
	}
	return Result{Verdict: VerdictWrong, Similarity: sim}
}

// IsMatch reports whether actual is accepted as expected, typos included.
func IsMatch(expected, actual string) bool {
	return Grade(expected, actual).Verdict.Correct()
}

// Similarity is 1 - distance/longest, measured in runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return float64(longest-Levenshtein(a, b)) / float64(longest)
}

// Levenshtein returns the minimum number of single-rune inserts, deletes
// and substitutions turning a into b.
func Levenshtein(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}

// Feedback is the message shown to the learner for a graded answer.
func Feedback(r Result, expected string) string {
	switch r.Verdict {
	case VerdictExact:
		return "Perfect! Exactly right."
	case VerdictClose:
		return fmt.Sprintf("Close enough! The exact answer is %q.", expected)
	default:
		return fmt.Sprintf("Not quite. The correct answer is %q.", expected)
	}
}
