package auth

import "resto-app/internal/user"

// Session is the logged-in user as kept in client state. It never holds the
// password hash.
type Session struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

func NewSession(u user.User) *Session {
	return &Session{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func IsAdmin(s *Session) bool {
	return s != nil && s.Role == user.RoleAdmin
}
