package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/ui/theme"
)

// Button is a focusable action label. The owning screen decides what
// Enter does while it is focused.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

// View renders the button.
func (b Button) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch {
	case b.Disabled:
		return style.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(b.Label)
	case b.Focused:
		return style.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			BorderForeground(theme.Highlight).
			Render("▸ " + b.Label)
	default:
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(b.Label)
	}
}

// Toggle is an on/off switch with a label.
type Toggle struct {
	Label   string
	On      bool
	Focused bool
}

// View renders the toggle.
func (t Toggle) View() string {
	state := theme.ToggleOff.Render("OFF")
	if t.On {
		state = theme.ToggleOn.Render("ON")
	}
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(t.Label)
	if t.Focused {
		label = theme.Selected.Render("▸ " + t.Label)
	}
	return label + " " + state
}
