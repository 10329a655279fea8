package questiongen

import "fmt"

// Validator checks a generated question before it is handed to a session.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in errors and logs.
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *Question, req Request) *ReplyError
}

// ReplyError describes why a generated reply was rejected. It always
// classifies as a malformed response.
type ReplyError struct {
	Validator string
	Message   string
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
