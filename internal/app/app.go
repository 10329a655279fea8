// Package app is the root Bubble Tea model of the terminal UI.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/router"
	"github.com/abhisek/mathcoach/internal/screen"
	"github.com/abhisek/mathcoach/internal/screens/apikey"
	"github.com/abhisek/mathcoach/internal/screens/home"
	"github.com/abhisek/mathcoach/internal/screens/practice"
	"github.com/abhisek/mathcoach/internal/screens/welcome"
	"github.com/abhisek/mathcoach/internal/session"
	"github.com/abhisek/mathcoach/internal/ui/layout"
)

// Deps is what the TUI needs from the rest of the program.
type Deps struct {
	// NewMachine creates the session behind a practice screen.
	NewMachine func() *session.Machine
	Creds      credential.Store
	// Model is shown in the header.
	Model string
	// SkipSplash starts on the home menu.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	creds  credential.Store
	status layout.HeaderStatus
	width  int
	height int
}

func newAppModel(deps Deps) AppModel {
	newHome := func() screen.Screen {
		return home.New(func() screen.Screen {
			return practice.New(deps.NewMachine())
		}, deps.Creds)
	}

	var first screen.Screen
	if deps.SkipSplash {
		first = newHome()
	} else {
		first = welcome.New(newHome)
	}

	m := AppModel{
		router: router.New(first),
		creds:  deps.Creds,
		status: layout.HeaderStatus{Model: deps.Model},
	}
	m.status.HasKey = m.keyPresent()
	return m
}

func (m AppModel) keyPresent() bool {
	ok, err := m.creds.Has(context.Background())
	return ok && err == nil
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case apikey.ChangedMsg:
		m.status.HasKey = msg.Present
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.keyHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) keyHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the terminal UI and blocks until it exits.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
