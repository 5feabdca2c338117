package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aashishkr2003/FactFusion/internal/dashboard"
)

func renderStatusBar(articleCount int, label string, state dashboard.State, user string, width int, searching, refreshing bool) string {
	left := fmt.Sprintf(" %d articles", articleCount)
	if label != "All" {
		left += " · " + label
	}
	switch state {
	case dashboard.StateOffline:
		left += " · " + offlineStyle.Render("offline")
	case dashboard.StateError:
		left += " · " + errorBannerStyle.UnsetPadding().Render("data unavailable")
	}
	if refreshing {
		left += " (refreshing...)"
	}
	if user != "" {
		left += " · " + user
	}

	right := " t type  a author  / search  r refresh  q quit "
	if searching {
		right = " esc cancel  enter search "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right
	return statusBarStyle.Width(width).Render(bar)
}
