// Package auth contains domain-level types for sessions, roles and the route guard.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"encoding/json"
	"strings"
)

// Role is the coarse-grained permission class of a signed-in user.
// The set is closed: values only come from ParseRole, and the zero value is invalid.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// Home paths for each role's route subtree.
const (
	AdminHomePath   = "/admin"
	StudentHomePath = "/student"
	LoginPath       = "/login"
)

// ParseRole converts a raw role claim into a Role.
// Unknown values report ok=false.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(raw)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStudent:
		return RoleStudent, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// HomePath returns the landing page of the role's subtree.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return AdminHomePath
	case RoleStudent:
		return StudentHomePath
	default:
		return LoginPath
	}
}

// Label is the display name used by the top bar when the user has no full name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleStudent:
		return "Học Sinh"
	default:
		return ""
	}
}

func (r Role) String() string { return string(r) }

// User is the account record returned by the API on login, registration and
// profile updates. Role is kept as the raw claim; use ParsedRole to gate on it.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// ParsedRole returns the user's role if the claim is a known role.
func (u User) ParsedRole() (Role, bool) { return ParseRole(u.Role) }

// DisplayName returns the full name, or the role label when the name is blank.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	role, _ := u.ParsedRole()
	return role.Label()
}

// ParseUser decodes a stored user record.
func ParseUser(raw string) (User, error) {
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// UnmarshalJSON accepts numeric ids as well as string ids.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var aux struct {
		alias
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.alias)
	u.ID = rawID(aux.ID)
	return nil
}

func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
