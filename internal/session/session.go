// Package session adapts the identity provider's view of the signed-in
// user. Pages consume the session and its derived role, never auth logic.
package session

import "strings"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Session struct {
	Name  string
	Email string
	Image string

	adminEmail string
}

// New builds a session for the configured profile. adminEmail is the one
// address that gets the admin role.
func New(name, email, image, adminEmail string) Session {
	return Session{Name: name, Email: email, Image: image, adminEmail: adminEmail}
}

// Role derives the session role: admin iff the email matches the configured
// admin address, else user.
func (s Session) Role() string {
	if s.Email != "" && s.adminEmail != "" && strings.EqualFold(s.Email, s.adminEmail) {
		return RoleAdmin
	}
	return RoleUser
}

// DisplayName falls back to the email when no name is set.
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}
