package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle  MascotVariant = iota // ready to practise
	MascotAlert                      // no API key yet
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ◡  │
│ π√∑ │
└─────┘`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ ?
│  ○  │
│ π√∑ │
└─────┘`

// RenderMascot returns the mascot art for v.
func RenderMascot(v MascotVariant) string {
	if v == MascotAlert {
		return lipgloss.NewStyle().Foreground(theme.Highlight).Render(mascotAlert)
	}
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotIdle)
}
