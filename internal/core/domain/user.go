package domain

import "strings"

// Role is the authorization level carried by a session.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// ParseRole normalises s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleClient:
		return r, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Session pairs the backend credential with the role it was issued for.
// Credential and Role are either both set or both empty.
type Session struct {
	Credential string `json:"credential" bson:"credential"`
	Role       Role   `json:"role"       bson:"role"`
}

// IsZero reports whether the session is empty.
func (s Session) IsZero() bool {
	return s.Credential == "" && s.Role == ""
}

// Complete reports whether both fields are present and the role is known.
func (s Session) Complete() bool {
	return s.Credential != "" && s.Role.Valid()
}

// User is the account summary returned by the backend on login/register.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}
