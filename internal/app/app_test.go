package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/llm"
	"github.com/abhisek/mathcoach/internal/questiongen"
	"github.com/abhisek/mathcoach/internal/router"
	"github.com/abhisek/mathcoach/internal/screens/apikey"
	"github.com/abhisek/mathcoach/internal/session"
)

func testDeps(creds credential.Store) Deps {
	gen := questiongen.NewWithProvider(llm.NewMockProvider(), questiongen.DefaultConfig())
	return Deps{
		NewMachine: func() *session.Machine { return session.NewMachine(gen, creds, session.Options{}) },
		Creds:      creds,
		Model:      "mock",
		SkipSplash: true,
	}
}

func sized(m AppModel) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestApp_StartsOnHome(t *testing.T) {
	m := sized(newAppModel(testDeps(&credential.MemoryStore{})))
	if got := m.router.Active().Title(); got != "Home" {
		t.Errorf("active = %q, want Home", got)
	}
	if m.status.HasKey {
		t.Error("header should show the missing key")
	}
	if m.status.Model != "mock" {
		t.Errorf("model = %q, want mock", m.status.Model)
	}
}

func TestApp_SplashFirst(t *testing.T) {
	deps := testDeps(&credential.MemoryStore{})
	deps.SkipSplash = false
	m := newAppModel(deps)
	if got := m.router.Active().Title(); got != "" {
		t.Errorf("active = %q, want the splash screen", got)
	}
}

func TestApp_KeyChangeUpdatesHeader(t *testing.T) {
	m := sized(newAppModel(testDeps(&credential.MemoryStore{})))
	updated, _ := m.Update(apikey.ChangedMsg{Present: true})
	m = updated.(AppModel)

	if !m.status.HasKey {
		t.Error("status should show a key")
	}
}

func TestApp_EscPopsOnlyAboveHome(t *testing.T) {
	m := sized(newAppModel(testDeps(&credential.MemoryStore{})))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("Esc on home should do nothing")
	}

	// Open practice from the menu.
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m.Update(cmd())
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("Esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newAppModel(testDeps(&credential.MemoryStore{}))
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
