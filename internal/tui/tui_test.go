package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/Aashishkr2003/FactFusion/internal/filter"
)

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"zero time", time.Time{}, "undated"},
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m"},
		{"hours ago", now.Add(-3 * time.Hour), "3h"},
		{"days ago", now.Add(-49 * time.Hour), "2d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relativeTime(tt.at); got != tt.want {
				t.Errorf("relativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateStr(t *testing.T) {
	if got := truncateStr("short", 10); got != "short" {
		t.Errorf("truncateStr() = %q, want unchanged", got)
	}
	got := truncateStr("a much longer headline than fits", 10)
	if len([]rune(got)) > 10 {
		t.Errorf("truncateStr() length = %d, want <= 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncateStr() = %q, want ellipsis suffix", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	for _, line := range lines {
		if len(line) > 9 {
			t.Errorf("line %q exceeds width 9", line)
		}
	}
	if joined := strings.Join(lines, " "); joined != "one two three four five" {
		t.Errorf("wrapText lost content: %q", joined)
	}
}

func TestNextTypeCycles(t *testing.T) {
	order := []filter.TypeFilter{filter.TypeAll, filter.TypeNews, filter.TypeBlogs, filter.TypeAll}
	for i := 0; i < len(order)-1; i++ {
		if got := nextType(order[i]); got != order[i+1] {
			t.Errorf("nextType(%q) = %q, want %q", order[i], got, order[i+1])
		}
	}
}

func TestFilterLabel(t *testing.T) {
	f := filter.New()
	if label := filterLabel(f); label != "All" {
		t.Errorf("no active filters, label = %q, want %q", label, "All")
	}

	f.SetSearch("fed")
	f.SetAuthor("Jane")
	label := filterLabel(f)
	if !strings.Contains(label, "fed") || !strings.Contains(label, "Jane") {
		t.Errorf("label %q missing active filters", label)
	}
}
