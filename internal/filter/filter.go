// Package filter holds the user's current view selection and the matching
// predicate derived from it. Pure state transitions, no I/O.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/Aashishkr2003/FactFusion/internal/cache"
)

// AllAuthors is the sentinel meaning no author restriction.
const AllAuthors = "All"

// UnknownAuthor is how an absent author renders everywhere.
const UnknownAuthor = "Unknown"

// TypeFilter is the top-level view selector.
type TypeFilter string

const (
	TypeAll   TypeFilter = "all"
	TypeNews  TypeFilter = TypeFilter(cache.TypeNews)
	TypeBlogs TypeFilter = TypeFilter(cache.TypeBlogs)
)

// State is an injectable filter container; each page gets its own instance.
type State struct {
	typ       TypeFilter
	search    string
	author    string
	startDate time.Time
	endDate   time.Time
}

func New() *State {
	return &State{typ: TypeAll, author: AllAuthors}
}

func (s *State) Type() TypeFilter    { return s.typ }
func (s *State) Search() string      { return s.search }
func (s *State) Author() string      { return s.author }
func (s *State) StartDate() time.Time { return s.startDate }
func (s *State) EndDate() time.Time   { return s.endDate }

// SetType switches the view and clears every sub-filter. Changing what you
// look at always starts from a clean slate.
func (s *State) SetType(t TypeFilter) {
	s.typ = t
	s.search = ""
	s.author = AllAuthors
	s.startDate = time.Time{}
	s.endDate = time.Time{}
}

func (s *State) SetSearch(term string)      { s.search = term }
func (s *State) SetAuthor(author string)    { s.author = author }
func (s *State) SetStartDate(d time.Time)   { s.startDate = d }
func (s *State) SetEndDate(d time.Time)     { s.endDate = d }

// Reset clears the sub-filters but keeps the type selection.
func (s *State) Reset() {
	s.search = ""
	s.author = AllAuthors
	s.startDate = time.Time{}
	s.endDate = time.Time{}
}

// Matches reports whether one article passes the current filters.
func (s *State) Matches(a cache.Article) bool {
	if s.typ != TypeAll && string(a.Type) != string(s.typ) {
		return false
	}

	if s.search != "" {
		term := strings.ToLower(s.search)
		title := strings.ToLower(a.Title)
		desc := strings.ToLower(a.Description)
		if !strings.Contains(title, term) && !strings.Contains(desc, term) {
			return false
		}
	}

	if s.author != AllAuthors && DisplayAuthor(a) != s.author {
		return false
	}

	if !s.startDate.IsZero() && a.PublishedAt.Before(s.startDate) {
		return false
	}
	if !s.endDate.IsZero() {
		// End bound is inclusive of the whole day.
		if !a.PublishedAt.Before(s.endDate.AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}

// Apply returns the articles that pass the current filters, in order.
func (s *State) Apply(articles []cache.Article) []cache.Article {
	var out []cache.Article
	for _, a := range articles {
		if s.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// DisplayAuthor normalizes an absent author to "Unknown".
func DisplayAuthor(a cache.Article) string {
	if strings.TrimSpace(a.Author) == "" {
		return UnknownAuthor
	}
	return a.Author
}

// Authors returns the distinct authors across articles, sorted, with the
// "All" sentinel first.
func Authors(articles []cache.Article) []string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range articles {
		name := DisplayAuthor(a)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{AllAuthors}, names...)
}

// ParseDate parses a YYYY-MM-DD date bound.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
