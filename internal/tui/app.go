// Package tui renders the dashboard page: the filterable article list fed
// by the cache orchestrator.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aashishkr2003/FactFusion/internal/browser"
	"github.com/Aashishkr2003/FactFusion/internal/cache"
	"github.com/Aashishkr2003/FactFusion/internal/dashboard"
	"github.com/Aashishkr2003/FactFusion/internal/filter"
	"github.com/Aashishkr2003/FactFusion/internal/session"
)

const fetchTimeout = 30 * time.Second

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeHelp
)

// RunOpts holds everything the dashboard page needs.
type RunOpts struct {
	Session   session.Session
	Hydration dashboard.Options
	Filters   *filter.State
}

type App struct {
	sess      session.Session
	hydration dashboard.Options

	result  dashboard.Result
	filters *filter.State
	visible []cache.Article
	authors []string

	authorIdx     int
	cursor        int
	previewScroll int
	focus         focusPane
	mode          mode

	width  int
	height int

	searchInput textinput.Model
	spinner     spinner.Model

	hydrated   bool
	refreshing bool
	err        error
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	filters := opts.Filters
	if filters == nil {
		filters = filter.New()
	}

	return &App{
		sess:        opts.Session,
		hydration:   opts.Hydration,
		filters:     filters,
		searchInput: ti,
		spinner:     sp,
	}
}

// Run launches the dashboard and blocks until the user quits.
func Run(opts RunOpts) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.hydrateCmd(), a.spinner.Tick)
}

func (a *App) hydrateCmd() tea.Cmd {
	opts := a.hydration
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return hydratedMsg{result: dashboard.Hydrate(ctx, opts)}
	}
}

// refreshCmd bypasses the cache: one fetch, persist on success.
func (a *App) refreshCmd() tea.Cmd {
	opts := a.hydration
	prev := a.result
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		fresh, err := opts.Fetcher.FetchBundle(ctx)
		if err != nil {
			prev.APIError = true
			return refreshDoneMsg{result: prev}
		}
		if opts.Store != nil {
			_ = opts.Store.Store(opts.Key, fresh)
		}
		return refreshDoneMsg{result: dashboard.Result{
			Batch:   fresh,
			State:   dashboard.StateReady,
			SavedAt: time.Now(),
		}}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		return a.handleKey(msg)

	case hydratedMsg:
		a.hydrated = true
		a.result = msg.result
		a.applyFilters()
		return a, nil

	case refreshDoneMsg:
		a.refreshing = false
		a.result = msg.result
		a.applyFilters()
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.refreshing || !a.hydrated {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

// applyFilters recomputes the visible list and author cycle from the
// current snapshot.
func (a *App) applyFilters() {
	all := a.result.Batch.All()
	a.visible = a.filters.Apply(all)
	a.authors = filter.Authors(all)

	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	a.previewScroll = 0

	a.authorIdx = 0
	for i, name := range a.authors {
		if name == a.filters.Author() {
			a.authorIdx = i
			break
		}
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeNormal
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.visible)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if len(a.visible) > 0 && a.cursor < len(a.visible) {
			return a, openBrowserCmd(a.visible[a.cursor].URL)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue(a.filters.Search())
		a.searchInput.Focus()
		return a, textinput.Blink
	case "t":
		// Switching the view clears search, author, and dates.
		a.filters.SetType(nextType(a.filters.Type()))
		a.applyFilters()
		return a, nil
	case "a":
		if len(a.authors) > 0 {
			a.authorIdx = (a.authorIdx + 1) % len(a.authors)
			a.filters.SetAuthor(a.authors[a.authorIdx])
			a.visible = a.filters.Apply(a.result.Batch.All())
			if a.cursor >= len(a.visible) {
				a.cursor = 0
			}
		}
		return a, nil
	case "x":
		a.filters.Reset()
		a.applyFilters()
		return a, nil
	case "r":
		if !a.refreshing && a.hydrated {
			a.refreshing = true
			return a, tea.Batch(a.refreshCmd(), a.spinner.Tick)
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.filters.SetSearch("")
		a.applyFilters()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		a.filters.SetSearch(a.searchInput.Value())
		a.applyFilters()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 {
		return ""
	}

	if !a.hydrated {
		return centerText(a.spinner.View()+" Loading articles...", a.width, a.height)
	}

	// Terminal error state: nothing to show, nothing to retry.
	if a.result.APIError && a.result.Batch.Empty() {
		return errorBannerStyle.Render("Data unavailable.\nCheck your network connection and API key, then relaunch.")
	}

	header := a.renderHeader()
	tabs := renderTabs(a.filters, a.width)

	statusUser := a.sess.DisplayName()
	status := renderStatusBar(len(a.visible), filterLabel(a.filters), a.result.State, statusUser, a.width, a.mode == modeSearch, a.refreshing)

	chromeHeight := lipgloss.Height(header) + lipgloss.Height(tabs) + lipgloss.Height(status)
	if a.mode == modeSearch {
		chromeHeight += 1
	}
	paneHeight := a.height - chromeHeight - 2
	if paneHeight < 3 {
		paneHeight = 3
	}

	listWidth := a.width * 55 / 100
	previewWidth := a.width - listWidth - 4

	listStyle := listPaneStyle
	previewStyle := previewPaneStyle
	if a.focus == focusList {
		listStyle = listPaneActiveStyle
	} else {
		previewStyle = previewPaneActiveStyle
	}

	listView := listStyle.Width(listWidth).Height(paneHeight).Render(
		renderList(a.visible, a.cursor, paneHeight, listWidth))

	var previewView string
	if len(a.visible) > 0 && a.cursor < len(a.visible) {
		previewView = previewStyle.Width(previewWidth).Height(paneHeight).Render(
			renderPreview(a.visible[a.cursor], a.previewScroll, previewWidth-2, paneHeight-4))
	} else {
		previewView = previewStyle.Width(previewWidth).Height(paneHeight).Render("")
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, listView, previewView)

	parts := []string{header, tabs, panes}
	if a.mode == modeSearch {
		parts = append(parts, a.searchInput.View())
	}
	if a.err != nil {
		parts = append(parts, offlineStyle.Render(" "+a.err.Error()))
	}
	if a.mode == modeHelp {
		return lipgloss.JoinVertical(lipgloss.Left, header, a.renderHelp(), status)
	}
	parts = append(parts, status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderHeader() string {
	title := headerStyle.Render("FactFusion")
	right := a.sess.DisplayName()
	if right != "" {
		right += " (" + a.sess.Role() + ")"
	}
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return title + lipgloss.NewStyle().Width(gap).Render("") + headerSessionStyle.Render(right)
}

func (a *App) renderHelp() string {
	help := `
  j/k       move selection / scroll preview
  tab       switch pane focus
  o, enter  open article in browser
  t         cycle type: All / News / Blogs (clears other filters)
  a         cycle author filter
  /         search title and description
  x         reset filters (keeps type)
  r         refresh from the news provider
  ?         close this help
  q         quit
`
	return previewBodyStyle.Render(help)
}
