package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/ui/theme"
)

const bannerArt = ` █▄ ▄█ ▄▀█ ▀█▀ █ █ █▀▀ █▀█ ▄▀█ █▀▀ █ █
 █ ▀ █ █▀█  █  █▀█ █▄▄ █▄█ █▀█ █▄▄ █▀█`

const bannerCompact = "M A T H C O A C H"

// RenderBanner returns the banner in the primary colour, falling back to
// spaced letters on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < lipgloss.Width(bannerArt)+4 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
