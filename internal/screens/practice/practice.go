// Package practice is the main TUI screen: pick a cycle and topic, get a
// question, answer it, and let adaptive mode pick the next one.
package practice

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcoach/internal/curriculum"
	"github.com/abhisek/mathcoach/internal/screen"
	"github.com/abhisek/mathcoach/internal/session"
	"github.com/abhisek/mathcoach/internal/ui/components"
	"github.com/abhisek/mathcoach/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

type focusField int

const (
	focusCycle focusField = iota
	focusTopic
	focusDifficulty
	focusSmart
	focusAdaptive
	focusAnswer
	focusNext
	focusHint
	focusCount
)

// PracticeScreen drives a session.Machine. Every render reads from the
// machine's snapshot; the screen only keeps widget state and a tally of
// answers given while it is open.
type PracticeScreen struct {
	machine *session.Machine
	snap    session.Snapshot

	focus      focusField
	cycle      components.Selector
	topic      components.Selector
	difficulty components.Selector
	input      components.TextInput

	correct   int
	attempted int

	spinnerFrame int
	ticking      bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a practice screen for m.
func New(m *session.Machine) *PracticeScreen {
	p := &PracticeScreen{
		machine:    m,
		cycle:      components.NewSelector("Cycle", curriculum.Cycle("").Label(), cycleLabels()),
		topic:      components.NewSelector("Topic", curriculum.Topic("").Label(), topicLabels()),
		difficulty: components.NewSelector("Difficulty", curriculum.Difficulty("").Label(), difficultyLabels()),
		input:      components.NewTextInput("Answer", "Type your answer...", false, 64),
	}
	p.input.Blur()
	p.refresh()
	p.setFocus(focusCycle)
	return p
}

func (p *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+N", Description: "Next question"},
		{Key: "Ctrl+E", Description: "Hint"},
	}
	if p.focus <= focusDifficulty {
		hints = append([]layout.KeyHint{{Key: "←→", Description: "Choose"}}, hints...)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionDoneMsg:
		return p.handleQuestionDone(msg)

	case spinnerTickMsg:
		p.refresh()
		if !p.snap.Loading {
			p.ticking = false
			return p, nil
		}
		p.spinnerFrame++
		return p, spinnerTick()

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}

	if p.focus == focusAnswer {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		p.moveFocus(1)
		return p, nil
	case "shift+tab", "up":
		p.moveFocus(-1)
		return p, nil
	case "ctrl+n":
		return p, p.requestNext()
	case "ctrl+e":
		return p, p.toggleHint()
	case "enter":
		return p, p.activate()
	}

	switch p.focus {
	case focusCycle:
		var changed bool
		if p.cycle, changed = p.cycle.Update(msg); changed {
			c := curriculum.Cycle("")
			if p.cycle.Selected() {
				c = curriculum.Cycles[p.cycle.Index]
			}
			p.machine.UpdateSelection(func(s *curriculum.Selection) { s.Cycle = c })
		}
	case focusTopic:
		var changed bool
		if p.topic, changed = p.topic.Update(msg); changed {
			t := curriculum.Topic("")
			if p.topic.Selected() {
				t = curriculum.Topics[p.topic.Index]
			}
			p.machine.UpdateSelection(func(s *curriculum.Selection) { s.Topic = t })
		}
	case focusDifficulty:
		var changed bool
		if p.difficulty, changed = p.difficulty.Update(msg); changed {
			d := curriculum.Difficulty("")
			if p.difficulty.Selected() {
				d = curriculum.Difficulties[p.difficulty.Index]
			}
			p.machine.UpdateSelection(func(s *curriculum.Selection) { s.Difficulty = d })
		}
	case focusSmart, focusAdaptive:
		if msg.String() == "space" {
			return p, p.activate()
		}
	case focusAnswer:
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	p.refresh()
	return p, nil
}

// activate runs the action of the focused field.
func (p *PracticeScreen) activate() tea.Cmd {
	switch p.focus {
	case focusSmart:
		p.machine.ToggleSmartMode()
	case focusAdaptive:
		p.machine.ToggleAdaptiveMode()
	case focusAnswer:
		return p.submit()
	case focusNext:
		return p.requestNext()
	case focusHint:
		return p.toggleHint()
	default:
		p.moveFocus(1)
		return nil
	}
	p.refresh()
	return nil
}

func (p *PracticeScreen) requestNext() tea.Cmd {
	t, err := p.machine.Begin(context.Background(), p.machine.Selection())
	p.refresh()
	if err != nil {
		return nil
	}
	return p.await(t)
}

func (p *PracticeScreen) submit() tea.Cmd {
	answer := p.input.Value()
	if p.snap.State == session.StateAwaitingAnswer && strings.TrimSpace(answer) == "" {
		return nil
	}

	v, t, err := p.machine.Submit(answer)
	if err == nil {
		p.attempted++
		if v.IsCorrect {
			p.correct++
		}
		p.input.Reset()
	}
	p.refresh()
	return p.await(t)
}

func (p *PracticeScreen) toggleHint() tea.Cmd {
	_ = p.machine.ToggleHint()
	p.refresh()
	return nil
}

// await runs the generation for t off the UI loop.
func (p *PracticeScreen) await(t *session.Ticket) tea.Cmd {
	if t == nil {
		return nil
	}
	m := p.machine
	wait := func() tea.Msg {
		return questionDoneMsg{Err: m.Await(context.Background(), t)}
	}
	if p.ticking {
		return wait
	}
	p.ticking = true
	return tea.Batch(wait, spinnerTick())
}

func (p *PracticeScreen) handleQuestionDone(msg questionDoneMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, session.ErrSuperseded) {
		return p, nil
	}
	p.refresh()
	if msg.Err == nil {
		p.input.Reset()
		p.setFocus(focusAnswer)
		return p, p.input.Focus()
	}
	return p, nil
}

// refresh reloads the snapshot and syncs the selectors with it.
func (p *PracticeScreen) refresh() {
	p.snap = p.machine.Snapshot()
	sel := p.snap.Selection

	p.cycle.Index = indexOf(curriculum.Cycles, sel.Cycle)
	p.topic.Index = indexOf(curriculum.Topics, sel.Topic)
	p.topic.Disabled = !sel.TopicEnabled()
	p.difficulty.Index = indexOf(curriculum.Difficulties, sel.Difficulty)
	p.difficulty.Disabled = !sel.DifficultyEnabled()
}

func (p *PracticeScreen) focusable(f focusField) bool {
	switch f {
	case focusTopic:
		return !p.topic.Disabled
	case focusDifficulty:
		return !p.difficulty.Disabled
	}
	return true
}

func (p *PracticeScreen) moveFocus(dir int) {
	f := p.focus
	for i := 0; i < int(focusCount); i++ {
		f = (f + focusField(dir) + focusCount) % focusCount
		if p.focusable(f) {
			p.setFocus(f)
			return
		}
	}
}

func (p *PracticeScreen) setFocus(f focusField) {
	p.focus = f
	p.cycle.Focused = f == focusCycle
	p.topic.Focused = f == focusTopic
	p.difficulty.Focused = f == focusDifficulty
	if f == focusAnswer {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}

func cycleLabels() []string {
	out := make([]string, len(curriculum.Cycles))
	for i, c := range curriculum.Cycles {
		out[i] = c.Label()
	}
	return out
}

func topicLabels() []string {
	out := make([]string, len(curriculum.Topics))
	for i, t := range curriculum.Topics {
		out[i] = t.Label()
	}
	return out
}

func difficultyLabels() []string {
	out := make([]string, len(curriculum.Difficulties))
	for i, d := range curriculum.Difficulties {
		out[i] = d.Label()
	}
	return out
}
