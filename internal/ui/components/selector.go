package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/ui/theme"
)

// Selector picks one of a fixed list of options with left/right keys.
// Index -1 means nothing is selected yet and shows the placeholder.
type Selector struct {
	Label       string
	Placeholder string
	Options     []string
	Index       int
	Focused     bool
	Disabled    bool
}

// NewSelector creates a selector with nothing selected.
func NewSelector(label, placeholder string, options []string) Selector {
	return Selector{
		Label:       label,
		Placeholder: placeholder,
		Options:     options,
		Index:       -1,
	}
}

// Update cycles the selection. Moving left from the first option returns
// to the unselected state.
func (s Selector) Update(msg tea.Msg) (Selector, bool) {
	if s.Disabled {
		return s, false
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, false
	}

	prev := s.Index
	switch kmsg.String() {
	case "left", "h":
		if s.Index > -1 {
			s.Index--
		}
	case "right", "l", "space":
		if s.Index < len(s.Options)-1 {
			s.Index++
		}
	}
	return s, s.Index != prev
}

// Selected reports whether an option is chosen.
func (s Selector) Selected() bool {
	return s.Index >= 0 && s.Index < len(s.Options)
}

// View renders the selector on one line.
func (s Selector) View() string {
	value := s.Placeholder
	if s.Selected() {
		value = s.Options[s.Index]
	}

	label := lipgloss.NewStyle().Width(12).Foreground(theme.TextDim).Render(s.Label)
	switch {
	case s.Disabled:
		return label + theme.Disabled.Render("  "+value)
	case s.Focused:
		label = lipgloss.NewStyle().Width(12).Inherit(theme.Label).Render(s.Label)
		return label + theme.Selected.Render("◂ "+value+" ▸")
	case s.Selected():
		return label + theme.Unselected.Render("  "+value)
	default:
		return label + theme.Hint.Render("  "+value)
	}
}
