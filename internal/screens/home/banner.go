package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chartiz/internal/ui/theme"
)

const bannerArt = `
  ██████╗██╗  ██╗ █████╗ ██████╗ ████████╗██╗███████╗
 ██╔════╝██║  ██║██╔══██╗██╔══██╗╚══██╔══╝██║╚══███╔╝
 ██║     ███████║███████║██████╔╝   ██║   ██║  ███╔╝
 ██║     ██╔══██║██╔══██║██╔══██╗   ██║   ██║ ███╔╝
 ╚██████╗██║  ██║██║  ██║██║  ██║   ██║   ██║███████╗
  ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝╚══════╝`

const bannerCompact = "C H A R T I Z"

// renderBanner returns the banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 56 columns.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
