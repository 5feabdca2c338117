package cmd

import (
	"testing"
	"time"
)

func TestParseSpan(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		err   bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"72h", 72 * time.Hour, false},
		{"2h30m", 2*time.Hour + 30*time.Minute, false},
		{"invalid", 0, true},
		{"", 0, true},
		{"d", 0, true},
	}

	for _, tt := range tests {
		got, err := parseSpan(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("parseSpan(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSpan(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSpan(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseGroupKey(t *testing.T) {
	for input, want := range map[string]string{
		"author":      "author",
		"type":        "type",
		"date":        "date",
		"author-type": "author-type",
	} {
		got, err := parseGroupKey(input)
		if err != nil {
			t.Errorf("parseGroupKey(%q): unexpected error: %v", input, err)
			continue
		}
		if string(got) != want {
			t.Errorf("parseGroupKey(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := parseGroupKey("source"); err == nil {
		t.Error("parseGroupKey(\"source\"): expected error")
	}
}

func TestParseRateOverrides(t *testing.T) {
	overrides, err := parseRateOverrides([]string{"Jane Doe=3.5", "John=0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overrides["Jane Doe"] != 3.5 {
		t.Errorf("Jane Doe rate = %v, want 3.5", overrides["Jane Doe"])
	}
	if overrides["John"] != 0 {
		t.Errorf("John rate = %v, want 0", overrides["John"])
	}

	for _, bad := range []string{"no-equals", "Jane=-1", "Jane=abc"} {
		if _, err := parseRateOverrides([]string{bad}); err == nil {
			t.Errorf("parseRateOverrides(%q): expected error", bad)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := formatDuration(72 * time.Hour); got != "3d" {
		t.Errorf("formatDuration(72h) = %q, want %q", got, "3d")
	}
	if got := formatDuration(5 * time.Hour); got != "5h" {
		t.Errorf("formatDuration(5h) = %q, want %q", got, "5h")
	}
	if got := formatBytes(2 << 20); got != "2.0 MB" {
		t.Errorf("formatBytes(2MB) = %q, want %q", got, "2.0 MB")
	}
	if got := formatBytes(512); got != "512 B" {
		t.Errorf("formatBytes(512) = %q, want %q", got, "512 B")
	}
}
