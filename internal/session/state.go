package session

import (
	"errors"

	"github.com/abhisek/mathcoach/internal/curriculum"
	"github.com/abhisek/mathcoach/internal/grading"
	"github.com/abhisek/mathcoach/internal/questiongen"
)

// State is the phase of a practice session.
type State string

const (
	StateIdle           State = "idle"            // no question yet
	StateAwaitingAnswer State = "awaiting-answer" // question shown, not answered
	StateGraded         State = "graded"          // answer graded, feedback shown
)

var (
	// ErrNoActiveQuestion is returned when an action needs a question and
	// none has been shown yet.
	ErrNoActiveQuestion = errors.New("no active question")

	// ErrAlreadyGraded is returned when the current question was already
	// answered.
	ErrAlreadyGraded = errors.New("answer already graded")

	// ErrSuperseded is returned by Await when a newer request was issued
	// while this one was in flight. Its result was discarded.
	ErrSuperseded = errors.New("question request superseded")
)

const noQuestionMessage = "❌ No question yet. Pick a cycle and topic, then press Next Question."

// session is the aggregate guarded by Machine.mu.
type session struct {
	selection   curriculum.Selection
	state       State
	question    *questiongen.Question
	submitted   string
	verdict     *grading.Verdict
	hintVisible bool
	status      string
	loading     bool
}

func newSession() session {
	return session{
		selection: curriculum.DefaultSelection(),
		state:     StateIdle,
	}
}

// QuestionView is the learner-visible part of the current question.
type QuestionView struct {
	Prompt      string `json:"prompt"`
	Explanation string `json:"explanation,omitempty"`
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	SessionID       string               `json:"sessionId"`
	Selection       curriculum.Selection `json:"selection"`
	State           State                `json:"state"`
	Loading         bool                 `json:"loading"`
	Question        *QuestionView        `json:"question,omitempty"`
	SubmittedAnswer string               `json:"submittedAnswer,omitempty"`
	LastVerdict     *grading.Verdict     `json:"lastVerdict,omitempty"`
	HintVisible     bool                 `json:"hintVisible"`
	StatusMessage   string               `json:"statusMessage,omitempty"`
}

// Ticket identifies one outstanding generation request. Only the most
// recently issued ticket may update the session.
type Ticket struct {
	seq uint64
	req questiongen.Request
}

// FollowUp reports whether the ticket is for an adaptive follow-up.
func (t *Ticket) FollowUp() bool { return t.req.FollowUp }
