package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/mathcoach/internal/llm"
)

// Cause classifies why a generation attempt failed.
type Cause string

const (
	CauseTransport         Cause = "transport"
	CauseMalformedResponse Cause = "malformed-response"
	CauseUnauthorized      Cause = "unauthorized"
	CauseUnknown           Cause = "unknown"
)

// GenerationError is the only error type a Client returns.
type GenerationError struct {
	Cause Cause
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("question generation failed (%s)", e.Cause)
	}
	return fmt.Sprintf("question generation failed (%s): %v", e.Cause, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Message returns the text shown to the learner. Follow-up failures get a
// shorter line since it is appended to the grading feedback.
func (e *GenerationError) Message(followUp bool) string {
	if followUp {
		return "❌ Error fetching follow-up question."
	}
	switch e.Cause {
	case CauseUnauthorized:
		return "❌ Error fetching question. The API key was rejected."
	case CauseMalformedResponse:
		return "❌ Error fetching question. The AI reply was incomplete, please try again."
	}
	return "❌ Error fetching question. Check your API key or quota."
}

// classify wraps err in a GenerationError with the matching cause. Errors
// that already are GenerationErrors pass through.
func classify(err error) *GenerationError {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge
	}

	var (
		unauthorized *llm.ErrUnauthorized
		rateLimit    *llm.ErrRateLimit
		unavailable  *llm.ErrProviderUnavailable
		invalid      *llm.ErrInvalidResponse
		maxTokens    *llm.ErrMaxTokensExceeded
		syntax       *json.SyntaxError
		typeErr      *json.UnmarshalTypeError
		verr         *ReplyError
	)

	cause := CauseUnknown
	switch {
	case errors.As(err, &unauthorized):
		cause = CauseUnauthorized
	case errors.As(err, &rateLimit),
		errors.As(err, &unavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		cause = CauseTransport
	case errors.As(err, &invalid),
		errors.As(err, &maxTokens),
		errors.As(err, &syntax),
		errors.As(err, &typeErr),
		errors.As(err, &verr):
		cause = CauseMalformedResponse
	}
	return &GenerationError{Cause: cause, Err: err}
}
