package grading

import (
	"strings"
	"unicode"

	"github.com/abhisek/mathcoach/internal/questiongen"
)

// Verdict is the result of grading one submitted answer.
type Verdict struct {
	IsCorrect bool   `json:"isCorrect"`
	Message   string `json:"message"`
}

const correctMessage = "✅ Correct! Well done."

// Normalize trims surrounding white space and strips a leading "x ="
// assignment, so that "x = 5" and "5" compare equal. Nothing else is
// rewritten. Repeated prefixes are stripped until none remains, which keeps
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	for {
		rest, ok := stripAssignment(s)
		if !ok {
			return s
		}
		s = strings.TrimSpace(rest)
	}
}

// stripAssignment removes `x`, optional space, `=`, optional space from
// the start of s.
func stripAssignment(s string) (string, bool) {
	rest, ok := strings.CutPrefix(s, "x")
	if !ok {
		return s, false
	}
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	rest, ok = strings.CutPrefix(rest, "=")
	if !ok {
		return s, false
	}
	return strings.TrimLeftFunc(rest, unicode.IsSpace), true
}

// Grade compares the learner's answer with the accepted answer after
// normalizing both.
func Grade(q questiongen.Question, submitted string) Verdict {
	if Normalize(submitted) == Normalize(q.AcceptedAnswer) {
		return Verdict{IsCorrect: true, Message: correctMessage}
	}
	return Verdict{
		IsCorrect: false,
		Message:   "❌ Not quite. Correct answer: " + q.AcceptedAnswer,
	}
}
