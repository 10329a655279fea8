// Package home is the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/router"
	"github.com/abhisek/mathcoach/internal/screen"
	"github.com/abhisek/mathcoach/internal/screens/apikey"
	"github.com/abhisek/mathcoach/internal/screens/help"
	"github.com/abhisek/mathcoach/internal/ui/components"
	"github.com/abhisek/mathcoach/internal/ui/theme"
)

const titleFull = ` █▄ ▄█ ▄▀█ ▀█▀ █ █ █▀▀ █▀█ ▄▀█ █▀▀ █ █
 █ ▀ █ █▀█  █  █▀█ █▄▄ █▄█ █▀█ █▄▄ █▀█`

const titleCompact = "M A T H C O A C H"

const buttonWidth = 22

// HomeScreen shows the main menu and whether an API key is set.
type HomeScreen struct {
	menu   components.Menu
	creds  credential.Store
	hasKey bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates the home screen. newPractice builds a fresh practice screen
// each time Practice is chosen.
func New(newPractice func() screen.Screen, creds credential.Store) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	h := &HomeScreen{creds: creds}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "PRACTICE", Action: push(newPractice)},
		{Label: "API KEY", Action: push(func() screen.Screen { return apikey.New(creds) })},
		{Label: "HELP", Action: push(func() screen.Screen { return help.New() })},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.refreshKey()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume re-reads the key state after a child screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refreshKey()
	return nil
}

func (h *HomeScreen) refreshKey() {
	ok, err := h.creds.Has(context.Background())
	h.hasKey = ok && err == nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 60
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	titleStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	var sections []string
	if compact {
		sections = append(sections, center.Render(titleStyle.Render(titleCompact)))
	} else {
		sections = append(sections, center.Render(titleStyle.Render(titleFull)))
		variant := MascotIdle
		if !h.hasKey {
			variant = MascotAlert
		}
		sections = append(sections, center.Render(RenderMascot(variant)))
	}

	sections = append(sections, center.Render(theme.Subtitle.Render("Junior Cycle & Leaving Cert practice")))

	if !h.hasKey {
		sections = append(sections, center.Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ Add an API key to start practising"),
		))
	}

	var menu string
	if compact {
		menu = h.menu.View()
	} else {
		buttons := make([]string, len(h.menu.Items))
		for i, label := range h.menu.Labels() {
			buttons[i] = components.ArcadeButton(label, i == h.menu.Selected, buttonWidth)
		}
		menu = strings.Join(buttons, "\n")
	}
	sections = append(sections, center.Render(menu))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
