package questiongen

import "github.com/abhisek/mathcoach/internal/curriculum"

// Question is a generated practice question ready for display.
type Question struct {
	// Prompt is the question text shown to the learner.
	Prompt string

	// AcceptedAnswer is the answer the learner's input is graded against.
	// Never shown before grading.
	AcceptedAnswer string

	// Explanation is a worked solution, revealed as a hint on request.
	Explanation string
}

// Level is the relative difficulty of an adaptive follow-up.
type Level string

const (
	LevelHarder Level = "harder"
	LevelEasier Level = "easier"
)

// Request describes one question to generate. It is built by BuildInitial
// or BuildFollowUp and never mutated afterwards.
type Request struct {
	Cycle           curriculum.Cycle
	Topic           curriculum.Topic
	DifficultyLabel string
	FollowUp        bool
}
