package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/router"
	"github.com/abhisek/mathcoach/internal/screen"
	"github.com/abhisek/mathcoach/internal/screens/apikey"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "practice" }
func (s *stubScreen) Title() string                          { return "Practice" }

func newHome(creds credential.Store) (*HomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return &stubScreen{}
	}, creds), &built
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	return msg.Screen
}

func TestHomeScreen_PracticeBuildsFreshScreen(t *testing.T) {
	h, built := newHome(&credential.MemoryStore{})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s := pushed(t, cmd); s.Title() != "Practice" {
		t.Errorf("pushed %q, want Practice", s.Title())
	}
	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if *built != 2 {
		t.Errorf("factory called %d times, want 2", *built)
	}
}

func TestHomeScreen_APIKeyEntry(t *testing.T) {
	h, _ := newHome(&credential.MemoryStore{})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*apikey.APIKeyScreen); !ok {
		t.Error("expected the API key screen")
	}
}

func TestHomeScreen_KeyWarning(t *testing.T) {
	creds := &credential.MemoryStore{}
	h, _ := newHome(creds)

	if !strings.Contains(h.View(100, 40), "Add an API key") {
		t.Error("expected missing key warning")
	}

	_ = creds.Set(context.Background(), "sk-test")
	h.Resume()
	if strings.Contains(h.View(100, 40), "Add an API key") {
		t.Error("warning should go away once a key is stored")
	}
}

func TestHomeScreen_Quit(t *testing.T) {
	h, _ := newHome(&credential.MemoryStore{})
	for i := 0; i < 3; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestRenderMascot(t *testing.T) {
	if RenderMascot(MascotIdle) == RenderMascot(MascotAlert) {
		t.Error("variants should differ")
	}
}
