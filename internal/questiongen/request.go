package questiongen

import (
	"fmt"

	"github.com/abhisek/mathcoach/internal/curriculum"
)

// ValidationCode identifies which precondition of a question request failed.
type ValidationCode string

const (
	CodeMissingKey        ValidationCode = "missing-key"
	CodeMissingCycle      ValidationCode = "missing-cycle"
	CodeMissingTopic      ValidationCode = "missing-topic"
	CodeMissingDifficulty ValidationCode = "missing-difficulty"
)

// ValidationError is returned by BuildInitial when the selection is not
// complete enough to ask for a question.
type ValidationError struct {
	Code ValidationCode
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question request: %s", e.Code)
}

// Message returns the text shown to the learner.
func (e *ValidationError) Message() string {
	switch e.Code {
	case CodeMissingKey:
		return "❌ Please enter your API key."
	case CodeMissingCycle:
		return "❌ Please select a cycle."
	case CodeMissingTopic:
		return "❌ Please select a topic."
	case CodeMissingDifficulty:
		return "❌ Please select a difficulty."
	}
	return "❌ " + e.Error()
}

// BuildInitial validates the selection and builds a learner-initiated
// request. Checks run in a fixed order and the first failure wins.
func BuildInitial(sel curriculum.Selection, hasCredential bool) (Request, error) {
	switch {
	case !hasCredential:
		return Request{}, &ValidationError{Code: CodeMissingKey}
	case sel.Cycle == "":
		return Request{}, &ValidationError{Code: CodeMissingCycle}
	case sel.Topic == "":
		return Request{}, &ValidationError{Code: CodeMissingTopic}
	case sel.SmartMode && sel.Difficulty == "":
		return Request{}, &ValidationError{Code: CodeMissingDifficulty}
	}

	return Request{
		Cycle:           sel.Cycle,
		Topic:           sel.Topic,
		DifficultyLabel: string(sel.EffectiveDifficulty()),
	}, nil
}

// BuildFollowUp builds an adaptive follow-up request. The selection was
// validated when the answered question was requested.
func BuildFollowUp(sel curriculum.Selection, level Level) Request {
	return Request{
		Cycle:           sel.Cycle,
		Topic:           sel.Topic,
		DifficultyLabel: string(level),
		FollowUp:        true,
	}
}
