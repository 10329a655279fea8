package adaptive

import (
	"testing"

	"github.com/abhisek/mathcoach/internal/grading"
	"github.com/abhisek/mathcoach/internal/questiongen"
)

func TestNextLevel(t *testing.T) {
	tests := []struct {
		adaptive  bool
		correct   bool
		wantLevel questiongen.Level
		wantOK    bool
	}{
		{false, true, "", false},
		{false, false, "", false},
		{true, true, questiongen.LevelHarder, true},
		{true, false, questiongen.LevelEasier, true},
	}

	for _, tc := range tests {
		level, ok := NextLevel(tc.adaptive, grading.Verdict{IsCorrect: tc.correct})
		if level != tc.wantLevel || ok != tc.wantOK {
			t.Errorf("NextLevel(%v, correct=%v) = (%q, %v), want (%q, %v)",
				tc.adaptive, tc.correct, level, ok, tc.wantLevel, tc.wantOK)
		}
	}
}
