// Package ports defines interfaces (hexagonal ports) for session and account behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"

	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/domain/model"
)

// SessionStore persists the key/value scope of one browser session.
// A scope is identified by an opaque id carried in the session cookie.
type SessionStore interface {
	// Load returns every field of the scope. A missing scope yields an empty map and no error.
	Load(ctx context.Context, scopeID string) (map[string]string, error)
	// Save writes the given fields, leaving other fields untouched, and refreshes the scope's TTL.
	Save(ctx context.Context, scopeID string, fields map[string]string) error
	// Remove deletes the given fields from the scope.
	Remove(ctx context.Context, scopeID string, fields ...string) error
	// Destroy deletes the whole scope.
	Destroy(ctx context.Context, scopeID string) error
}

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the self-service student sign-up payload.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	ClassID  string `json:"class_id"`
}

// ProfileUpdate is the account settings payload. Phone is only sent for students.
type ProfileUpdate struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password,omitempty"`
}

// AuthResult is what the API returns after a successful login or registration.
type AuthResult struct {
	Token string          `json:"token"`
	User  domainauth.User `json:"user"`
}

// AccountAPI covers the unauthenticated and self-service account endpoints.
type AccountAPI interface {
	Login(ctx context.Context, in Credentials) (AuthResult, error)
	Register(ctx context.Context, in Registration) (AuthResult, error)
	RegistrationClasses(ctx context.Context) ([]model.Class, error)
	// UpdateProfile returns the raw user object so callers can merge unknown fields.
	UpdateProfile(ctx context.Context, token string, in ProfileUpdate) (map[string]any, error)
}
