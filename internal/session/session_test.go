package session

import "testing"

func TestRoleDerivation(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		adminEmail string
		want       string
	}{
		{"matching email", "boss@example.com", "boss@example.com", RoleAdmin},
		{"case insensitive", "Boss@Example.COM", "boss@example.com", RoleAdmin},
		{"other user", "jane@example.com", "boss@example.com", RoleUser},
		{"no admin configured", "jane@example.com", "", RoleUser},
		{"no email", "", "boss@example.com", RoleUser},
	}
	for _, tt := range tests {
		s := New("", tt.email, "", tt.adminEmail)
		if got := s.Role(); got != tt.want {
			t.Errorf("%s: Role() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	s := New("Jane", "jane@example.com", "", "")
	if got := s.DisplayName(); got != "Jane" {
		t.Errorf("expected Jane, got %q", got)
	}

	s = New("", "jane@example.com", "", "")
	if got := s.DisplayName(); got != "jane@example.com" {
		t.Errorf("expected email fallback, got %q", got)
	}
}
