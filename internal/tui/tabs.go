package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aashishkr2003/FactFusion/internal/filter"
)

var typeTabs = []struct {
	label string
	value filter.TypeFilter
}{
	{"All", filter.TypeAll},
	{"News", filter.TypeNews},
	{"Blogs", filter.TypeBlogs},
}

// renderTabs draws the type selector plus the active author and search
// terms, so the user can see exactly what the list is filtered by.
func renderTabs(f *filter.State, width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	for _, tab := range typeTabs {
		style := tabInactiveStyle
		if f.Type() == tab.value {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(tab.label))
	}

	if f.Author() != filter.AllAuthors {
		parts = append(parts, itemMetaStyle.Render("author: "+f.Author()))
	}
	if f.Search() != "" {
		parts = append(parts, itemMetaStyle.Render("search: "+f.Search()))
	}
	if !f.StartDate().IsZero() || !f.EndDate().IsZero() {
		rangeLabel := "dates: "
		if !f.StartDate().IsZero() {
			rangeLabel += f.StartDate().Format("2006-01-02")
		}
		rangeLabel += ".."
		if !f.EndDate().IsZero() {
			rangeLabel += f.EndDate().Format("2006-01-02")
		}
		parts = append(parts, itemMetaStyle.Render(rangeLabel))
	}

	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().Width(width).PaddingLeft(1)
	return barStyle.Render(row)
}

// nextType advances the type selector in tab order.
func nextType(current filter.TypeFilter) filter.TypeFilter {
	for i, tab := range typeTabs {
		if tab.value == current {
			return typeTabs[(i+1)%len(typeTabs)].value
		}
	}
	return filter.TypeAll
}

// filterLabel summarizes active filters for the status bar.
func filterLabel(f *filter.State) string {
	var parts []string
	if f.Type() != filter.TypeAll {
		parts = append(parts, string(f.Type()))
	}
	if f.Author() != filter.AllAuthors {
		parts = append(parts, f.Author())
	}
	if f.Search() != "" {
		parts = append(parts, "\""+f.Search()+"\"")
	}
	if len(parts) == 0 {
		return "All"
	}
	return strings.Join(parts, ", ")
}
