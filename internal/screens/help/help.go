// Package help shows how to use the practice screen.
package help

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/screen"
	"github.com/abhisek/mathcoach/internal/ui/components"
	"github.com/abhisek/mathcoach/internal/ui/theme"
)

// Steps are the usage instructions, in order.
var Steps = []string{
	"Open API Key, paste your key and press Enter to save it",
	"Choose your cycle and topic",
	"Turn on Smart mode to pick the difficulty yourself",
	"Turn on Adaptive mode to get follow-up questions",
	"Press Ctrl+N (or Next Question) to begin",
	"Type your answer and press Enter to submit",
	"Press Ctrl+E (or Show Hint) for a step-by-step explanation",
}

// HelpScreen is a static page.
type HelpScreen struct{}

var _ screen.Screen = (*HelpScreen)(nil)

func New() *HelpScreen {
	return &HelpScreen{}
}

func (h *HelpScreen) Init() tea.Cmd                          { return nil }
func (h *HelpScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return h, nil }
func (h *HelpScreen) Title() string                          { return "Help" }

func (h *HelpScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("🆘 How to use MathCoach"))
	b.WriteString("\n\n")
	for i, step := range Steps {
		b.WriteString(theme.Label.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(" ")
		b.WriteString(theme.Body.Render(step))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Tab moves between fields. Esc goes back."))

	card := components.ArcadeCard(b.String(), components.ContentWidth(width))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
