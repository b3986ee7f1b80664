package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"

	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/ports"
)

// Fixed field names inside a session scope.
const (
	SessionTokenKey = "token"
	SessionUserKey  = "user"
)

var errNoSession = errors.New("session has no scope")

// Session is the session context of one browser. It is built per request from the
// scope id in the session cookie and a snapshot of the stored fields; writes go
// through to the store and update the snapshot.
type Session struct {
	id       string
	store    ports.SessionStore
	fields   map[string]string
	onRotate func(newID string)
}

var _ domainauth.SessionState = (*Session)(nil)

// NewSessionID returns a fresh opaque scope id.
func NewSessionID() string {
	return uuid.NewString()
}

// NewSession returns an empty session bound to scopeID.
func NewSession(store ports.SessionStore, scopeID string) *Session {
	return &Session{id: scopeID, store: store, fields: map[string]string{}}
}

// LoadSession reads the scope's fields. A missing scope yields an empty session.
func LoadSession(ctx context.Context, store ports.SessionStore, scopeID string) (*Session, error) {
	sess := NewSession(store, scopeID)
	if scopeID == "" {
		return sess, nil
	}
	fields, err := store.Load(ctx, scopeID)
	if err != nil {
		return sess, fmt.Errorf("load session: %w", err)
	}
	for k, v := range fields {
		sess.fields[k] = v
	}
	return sess, nil
}

// ID returns the scope id.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// IsAuthenticated reports whether a token field is stored, whatever its value.
func (s *Session) IsAuthenticated() bool {
	if s == nil {
		return false
	}
	_, ok := s.fields[SessionTokenKey]
	return ok
}

// OnRotate registers fn to be called with the new scope id whenever Begin
// moves the session to a fresh scope.
func (s *Session) OnRotate(fn func(newID string)) {
	if s != nil {
		s.onRotate = fn
	}
}

// Token returns the raw bearer token, or "".
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.fields[SessionTokenKey]
}

// User returns the stored user record. ok is false when it is absent or unparsable.
func (s *Session) User() (domainauth.User, bool) {
	if s == nil {
		return domainauth.User{}, false
	}
	raw := strings.TrimSpace(s.fields[SessionUserKey])
	if raw == "" {
		return domainauth.User{}, false
	}
	u, err := domainauth.ParseUser(raw)
	if err != nil {
		return domainauth.User{}, false
	}
	return u, true
}

// UserRole returns the role claim of the stored user. Parse failures report ok=false.
func (s *Session) UserRole() (domainauth.Role, bool) {
	u, ok := s.User()
	if !ok {
		return "", false
	}
	return u.ParsedRole()
}

// Begin stores the token and user record after a successful login or registration.
// The fields move to a freshly minted scope id and the old scope is destroyed, so
// an id handed out before sign-in never carries a token.
func (s *Session) Begin(ctx context.Context, token string, user domainauth.User) error {
	if s == nil || s.id == "" {
		return errNoSession
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	fields := maps.Clone(s.fields)
	fields[SessionTokenKey] = token
	fields[SessionUserKey] = string(raw)

	newID := NewSessionID()
	if err := s.store.Save(ctx, newID, fields); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.store.Destroy(ctx, s.id); err != nil {
		return fmt.Errorf("retire session %s: %w", s.id, err)
	}
	s.id = newID
	s.fields = fields
	if s.onRotate != nil {
		s.onRotate(newID)
	}
	return nil
}

// UpdateUser merges patch into the stored user record. Keys in patch win; keys
// absent from patch are kept. An unparsable stored record is replaced.
func (s *Session) UpdateUser(ctx context.Context, patch map[string]any) error {
	if s == nil || s.id == "" {
		return errNoSession
	}
	merged := map[string]any{}
	if raw := s.fields[SessionUserKey]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &merged); err != nil || merged == nil {
			merged = map[string]any{}
		}
	}
	for k, v := range patch {
		merged[k] = v
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Save(ctx, s.id, map[string]string{SessionUserKey: string(raw)}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.fields[SessionUserKey] = string(raw)
	return nil
}

// End deletes the token and user record.
func (s *Session) End(ctx context.Context) error {
	if s == nil || s.id == "" {
		return nil
	}
	if err := s.store.Remove(ctx, s.id, SessionTokenKey, SessionUserKey); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	delete(s.fields, SessionTokenKey)
	delete(s.fields, SessionUserKey)
	return nil
}
