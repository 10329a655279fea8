package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcoach/internal/screen"
)

type fakeScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }

type resumingScreen struct {
	fakeScreen
	resumed int
}

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumed++
	return nil
}

type pingMsg struct{}

func TestPush(t *testing.T) {
	r := New(&fakeScreen{title: "home"})

	practice := &fakeScreen{title: "practice"}
	r.Push(practice)

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "practice" {
		t.Errorf("active = %q, want practice", r.Active().Title())
	}
	if !practice.initRan {
		t.Error("Init() not run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	r := New(&fakeScreen{title: "home"})
	r.Update(PushScreenMsg{Screen: &fakeScreen{title: "help"}})
	r.Update(PopScreenMsg{})

	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("active = %q, want home", r.Active().Title())
	}
}

func TestPopKeepsLastScreen(t *testing.T) {
	r := New(&fakeScreen{title: "home"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth = %d after popping the last screen, want 1", r.Depth())
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&fakeScreen{title: "welcome"})

	home := &fakeScreen{title: "home"}
	r.Update(ReplaceScreenMsg{Screen: home})

	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("active = %q, want home", r.Active().Title())
	}
	if !home.initRan {
		t.Error("Init() not run on replacement screen")
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&fakeScreen{title: "home"})
	r.Push(&fakeScreen{title: "practice"})
	r.Replace(&fakeScreen{title: "api key"})

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "api key" {
		t.Errorf("active = %q, want api key", r.Active().Title())
	}
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	home := &fakeScreen{title: "home"}
	practice := &fakeScreen{title: "practice"}
	r := New(home)
	r.Push(practice)

	r.Update(pingMsg{})

	if len(practice.got) != 1 {
		t.Errorf("active screen got %d messages, want 1", len(practice.got))
	}
	if len(home.got) != 0 {
		t.Errorf("background screen got %d messages, want 0", len(home.got))
	}
}

func TestView(t *testing.T) {
	r := New(&fakeScreen{title: "home"})
	if got := r.View(80, 24); got != "home" {
		t.Errorf("View() = %q, want home", got)
	}
}

func TestPopResumesScreenBelow(t *testing.T) {
	home := &resumingScreen{fakeScreen: fakeScreen{title: "home"}}
	r := New(home)
	r.Push(&fakeScreen{title: "api key"})
	r.Pop()

	if home.resumed != 1 {
		t.Errorf("Resume() called %d times, want 1", home.resumed)
	}

	r.Pop()
	if home.resumed != 1 {
		t.Error("popping the last screen must not resume it")
	}
}
