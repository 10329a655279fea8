// Package welcome is the splash screen shown on start.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/router"
	"github.com/abhisek/mathcoach/internal/screen"
	"github.com/abhisek/mathcoach/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	showSymbols  = 400 * time.Millisecond
	showBanner   = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const tagline = "Exam practice for Junior Cycle and Leaving Cert maths"

// symbolFrames rotate above the banner.
var symbolFrames = []string{"π  √  ∑  ∫", "√  ∑  ∫  π", "∑  ∫  π  √", "∫  π  √  ∑"}

type tickMsg time.Time

// WelcomeScreen animates the banner and hands over to the screen built by
// next on the first key press. It never moves on by itself.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates the splash screen.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	s := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.elapsed >= showSymbols {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Highlight).
			Render(symbolFrames[w.tickCount%len(symbolFrames)]))
	}

	if w.elapsed >= showBanner {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
