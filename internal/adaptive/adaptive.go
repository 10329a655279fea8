package adaptive

import (
	"github.com/abhisek/mathcoach/internal/grading"
	"github.com/abhisek/mathcoach/internal/questiongen"
)

// NextLevel decides whether a follow-up question should be requested after
// grading, and at which relative difficulty. It looks only at the current
// verdict.
func NextLevel(adaptiveMode bool, v grading.Verdict) (questiongen.Level, bool) {
	if !adaptiveMode {
		return "", false
	}
	if v.IsCorrect {
		return questiongen.LevelHarder, true
	}
	return questiongen.LevelEasier, true
}
