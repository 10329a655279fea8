package practice

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/session"
	"github.com/abhisek/mathcoach/internal/ui/components"
	"github.com/abhisek/mathcoach/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (p *PracticeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		p.renderSelection(),
		p.renderQuestion(cw),
		p.input.View(),
		p.renderActions(),
	}
	if status := p.renderStatus(cw); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, components.ScoreBar{
		Correct:   p.correct,
		Attempted: p.attempted,
		Width:     cw,
	}.View())

	content := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (p *PracticeScreen) renderSelection() string {
	sel := p.snap.Selection
	toggles := components.Toggle{Label: "Smart mode", On: sel.SmartMode, Focused: p.focus == focusSmart}.View() +
		"    " +
		components.Toggle{Label: "Adaptive mode", On: sel.AdaptiveMode, Focused: p.focus == focusAdaptive}.View()

	return strings.Join([]string{
		p.cycle.View(),
		p.topic.View(),
		p.difficulty.View(),
		"",
		toggles,
	}, "\n")
}

func (p *PracticeScreen) renderQuestion(cw int) string {
	var b strings.Builder

	switch q := p.snap.Question; {
	case q == nil && p.snap.Loading:
		b.WriteString(theme.Hint.Render(spinnerFrames[p.spinnerFrame%len(spinnerFrames)] + " Generating question..."))
	case q == nil:
		b.WriteString(theme.Hint.Render("No question yet. Choose a cycle and topic, then press Ctrl+N."))
	default:
		b.WriteString(theme.Title.Render("Question"))
		if p.snap.Loading {
			b.WriteString("  " + theme.Hint.Render(spinnerFrames[p.spinnerFrame%len(spinnerFrames)]+" loading next"))
		}
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render(q.Prompt))
		if p.snap.HintVisible && q.Explanation != "" {
			b.WriteString("\n\n")
			b.WriteString(theme.Label.Render("Explanation"))
			b.WriteString("\n")
			b.WriteString(theme.Subtitle.Render(q.Explanation))
		}
	}

	return components.ArcadeCard(b.String(), cw)
}

func (p *PracticeScreen) renderActions() string {
	hintLabel := "Show Hint"
	if p.snap.HintVisible {
		hintLabel = "Hide Hint"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		components.Button{Label: "Next Question", Focused: p.focus == focusNext}.View(),
		" ",
		components.Button{Label: hintLabel, Focused: p.focus == focusHint, Disabled: p.snap.Question == nil}.View(),
	)
}

// renderStatus shows the status message, colouring each line by its
// leading marker.
func (p *PracticeScreen) renderStatus(cw int) string {
	if p.snap.StatusMessage == "" {
		return ""
	}

	lines := strings.Split(p.snap.StatusMessage, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "✅"):
			lines[i] = theme.Correct.Render(line)
		case strings.HasPrefix(line, "❌"):
			lines[i] = theme.Incorrect.Render(line)
		default:
			lines[i] = theme.Body.Render(line)
		}
	}

	border := theme.Border
	if v := p.snap.LastVerdict; v != nil && p.snap.State == session.StateGraded {
		if v.IsCorrect {
			border = theme.Success
		} else {
			border = theme.Error
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw-2).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
