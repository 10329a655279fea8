package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathcoach/internal/adaptive"
	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/curriculum"
	"github.com/abhisek/mathcoach/internal/grading"
	"github.com/abhisek/mathcoach/internal/questiongen"
)

// Observer is notified of every graded answer.
type Observer interface {
	ObserveVerdict(correct bool)
}

// Options configures a Machine. Zero values are usable.
type Options struct {
	Logger   zerolog.Logger
	Observer Observer
}

// Machine runs one learner's practice session. All methods are safe for
// concurrent use. Generation happens outside the lock; a sequence number
// makes sure only the most recently issued request lands.
type Machine struct {
	id       string
	client   questiongen.Client
	creds    credential.Store
	log      zerolog.Logger
	observer Observer

	mu   sync.Mutex
	sess session
	seq  uint64
}

// NewMachine creates an idle session.
func NewMachine(client questiongen.Client, creds credential.Store, opts Options) *Machine {
	id := uuid.NewString()
	return &Machine{
		id:       id,
		client:   client,
		creds:    creds,
		log:      opts.Logger.With().Str("session_id", id).Logger(),
		observer: opts.Observer,
		sess:     newSession(),
	}
}

// ID returns the session identifier.
func (m *Machine) ID() string { return m.id }

// Begin validates sel and, if it is complete, issues a ticket for a new
// question. sel becomes the session's selection either way. Validation
// failures are reported through the status message and returned as
// *questiongen.ValidationError.
func (m *Machine) Begin(ctx context.Context, sel curriculum.Selection) (*Ticket, error) {
	hasKey, err := m.creds.Has(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("credential lookup failed")
		hasKey = false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sess.selection = sel
	req, err := questiongen.BuildInitial(sel, hasKey)
	if err != nil {
		var verr *questiongen.ValidationError
		if errors.As(err, &verr) {
			m.sess.status = verr.Message()
		}
		m.log.Warn().Err(err).Msg("question request rejected")
		return nil, err
	}

	return m.issue(req), nil
}

// issue hands out a ticket that supersedes every earlier one. Callers
// hold m.mu.
func (m *Machine) issue(req questiongen.Request) *Ticket {
	m.seq++
	m.sess.loading = true
	m.log.Debug().
		Uint64("seq", m.seq).
		Bool("follow_up", req.FollowUp).
		Str("difficulty", req.DifficultyLabel).
		Msg("question requested")
	return &Ticket{seq: m.seq, req: req}
}

// Await runs the generation for t and applies the result, unless a newer
// ticket was issued in the meantime, in which case the result is dropped
// and ErrSuperseded is returned. Generation failures are returned as
// *questiongen.GenerationError after the status message is updated.
func (m *Machine) Await(ctx context.Context, t *Ticket) error {
	if t == nil {
		return nil
	}

	var (
		q      *questiongen.Question
		genErr error
	)
	key, err := m.creds.Get(ctx)
	if err != nil {
		genErr = &questiongen.GenerationError{Cause: questiongen.CauseUnauthorized, Err: err}
	} else {
		q, genErr = m.client.Generate(ctx, t.req, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if t.seq != m.seq {
		m.log.Debug().Uint64("seq", t.seq).Uint64("latest", m.seq).Msg("discarding superseded result")
		return ErrSuperseded
	}
	m.sess.loading = false

	if genErr != nil {
		ge := asGenerationError(genErr)
		msg := ge.Message(t.req.FollowUp)
		if t.req.FollowUp && m.sess.status != "" {
			m.sess.status += "\n" + msg
		} else {
			m.sess.status = msg
		}
		m.log.Warn().Err(ge).Str("cause", string(ge.Cause)).Bool("follow_up", t.req.FollowUp).Msg("question generation failed")
		return ge
	}

	m.sess.question = q
	m.sess.state = StateAwaitingAnswer
	m.sess.submitted = ""
	m.sess.hintVisible = false
	if !t.req.FollowUp {
		m.sess.verdict = nil
		m.sess.status = ""
	}
	m.log.Debug().Uint64("seq", t.seq).Msg("question ready")
	return nil
}

func asGenerationError(err error) *questiongen.GenerationError {
	var ge *questiongen.GenerationError
	if errors.As(err, &ge) {
		return ge
	}
	return &questiongen.GenerationError{Cause: questiongen.CauseUnknown, Err: err}
}

// RequestNext asks for a new question with sel and waits for it.
func (m *Machine) RequestNext(ctx context.Context, sel curriculum.Selection) error {
	t, err := m.Begin(ctx, sel)
	if err != nil {
		return err
	}
	return m.Await(ctx, t)
}

// Submit grades answer against the current question. In adaptive mode it
// also returns a ticket for the follow-up question, which the caller
// passes to Await. The verdict is committed before the ticket is issued.
func (m *Machine) Submit(answer string) (grading.Verdict, *Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.sess.state {
	case StateIdle:
		m.sess.status = noQuestionMessage
		return grading.Verdict{}, nil, ErrNoActiveQuestion
	case StateGraded:
		return *m.sess.verdict, nil, ErrAlreadyGraded
	}

	v := grading.Grade(*m.sess.question, answer)
	m.sess.verdict = &v
	m.sess.submitted = answer
	m.sess.status = v.Message
	m.sess.state = StateGraded
	if m.observer != nil {
		m.observer.ObserveVerdict(v.IsCorrect)
	}
	m.log.Debug().Bool("correct", v.IsCorrect).Msg("answer graded")

	level, ok := adaptive.NextLevel(m.sess.selection.AdaptiveMode, v)
	if !ok {
		return v, nil, nil
	}
	return v, m.issue(questiongen.BuildFollowUp(m.sess.selection, level)), nil
}

// SubmitAndAdapt grades answer and waits for the adaptive follow-up, if
// any. The verdict is valid whenever the grading itself succeeded, even
// if the follow-up failed.
func (m *Machine) SubmitAndAdapt(ctx context.Context, answer string) (grading.Verdict, error) {
	v, t, err := m.Submit(answer)
	if err != nil {
		return v, err
	}
	return v, m.Await(ctx, t)
}

// ToggleHint shows or hides the worked explanation.
func (m *Machine) ToggleHint() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess.question == nil {
		m.sess.status = noQuestionMessage
		return ErrNoActiveQuestion
	}
	m.sess.hintVisible = !m.sess.hintVisible
	return nil
}

// SetSelection replaces the selection. The current question is kept.
func (m *Machine) SetSelection(sel curriculum.Selection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess.selection = sel
}

// UpdateSelection applies fn to the selection under the lock.
func (m *Machine) UpdateSelection(fn func(*curriculum.Selection)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.sess.selection)
}

// ToggleSmartMode flips smart mode.
func (m *Machine) ToggleSmartMode() {
	m.UpdateSelection(func(s *curriculum.Selection) { s.SmartMode = !s.SmartMode })
}

// ToggleAdaptiveMode flips adaptive mode.
func (m *Machine) ToggleAdaptiveMode() {
	m.UpdateSelection(func(s *curriculum.Selection) { s.AdaptiveMode = !s.AdaptiveMode })
}

// Selection returns the current selection.
func (m *Machine) Selection() curriculum.Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.selection
}

// Reset returns the session to its initial state. Requests still in
// flight are discarded when they complete.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.sess = newSession()
	m.log.Debug().Msg("session reset")
}

// Snapshot returns a copy of the learner-visible session state. The
// accepted answer is never included.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		SessionID:       m.id,
		Selection:       m.sess.selection,
		State:           m.sess.state,
		Loading:         m.sess.loading,
		SubmittedAnswer: m.sess.submitted,
		HintVisible:     m.sess.hintVisible,
		StatusMessage:   m.sess.status,
	}
	if q := m.sess.question; q != nil {
		s.Question = &QuestionView{Prompt: q.Prompt}
		if m.sess.hintVisible {
			s.Question.Explanation = q.Explanation
		}
	}
	if v := m.sess.verdict; v != nil {
		vc := *v
		s.LastVerdict = &vc
	}
	return s
}
