package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/ui/theme"
)

// ScoreBar shows how many answers were correct in the current run.
type ScoreBar struct {
	Correct   int
	Attempted int
	Width     int
}

// Percent returns the share of correct answers, 0 when nothing was tried.
func (p ScoreBar) Percent() float64 {
	if p.Attempted == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Attempted)
}

// View renders the bar followed by the tally.
func (p ScoreBar) View() string {
	tally := fmt.Sprintf("  %d/%d correct", p.Correct, p.Attempted)

	barWidth := p.Width - lipgloss.Width(tally)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(tally)
}
