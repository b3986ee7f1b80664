package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/domain/model"
	"github.com/ghugn/chem-class-git/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Accounts ports.AccountAPI
	Logger   *slog.Logger
}

// AuthService runs the login, registration, logout and profile flows against the
// account API and records the outcome in the caller's session.
type AuthService struct {
	accounts ports.AccountAPI
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Accounts == nil {
		panic("service: AuthService requires an AccountAPI")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{accounts: opts.Accounts, logger: logger.With("component", "auth_service")}
}

// SignInResult is where the browser goes after signing in.
type SignInResult struct {
	User     domainauth.User
	Location string
}

// Login exchanges credentials for a token and starts the session. Users whose role
// claim is unknown are still signed in but sent back to the login page.
func (s *AuthService) Login(ctx context.Context, sess *Session, in ports.Credentials) (*SignInResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, errors.New("email and password are required")
	}

	res, err := s.accounts.Login(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := sess.Begin(ctx, res.Token, res.User); err != nil {
		return nil, err
	}

	role, ok := res.User.ParsedRole()
	if !ok {
		s.logger.WarnContext(ctx, "signed-in user has an unknown role", "user_id", res.User.ID, "role", res.User.Role)
		return &SignInResult{User: res.User, Location: domainauth.LoginPath}, nil
	}
	s.logger.InfoContext(ctx, "user signed in", "user_id", res.User.ID, "role", role)
	return &SignInResult{User: res.User, Location: role.HomePath()}, nil
}

// Register creates a student account and signs it in.
func (s *AuthService) Register(ctx context.Context, sess *Session, in ports.Registration) (*SignInResult, error) {
	res, err := s.accounts.Register(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := sess.Begin(ctx, res.Token, res.User); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "student registered", "user_id", res.User.ID, "class_id", in.ClassID)
	return &SignInResult{User: res.User, Location: domainauth.StudentHomePath}, nil
}

// RegistrationClasses lists the classes a new student can join. Failures degrade to an empty list.
func (s *AuthService) RegistrationClasses(ctx context.Context) []model.Class {
	classes, err := s.accounts.RegistrationClasses(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load registration classes", "error", err)
		return nil
	}
	return classes
}

// Logout ends the session.
func (s *AuthService) Logout(ctx context.Context, sess *Session) error {
	if err := sess.End(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// UpdateProfile saves account settings and merges the returned user into the session.
// Only students have a phone number; it is dropped for every other role.
func (s *AuthService) UpdateProfile(ctx context.Context, sess *Session, in ports.ProfileUpdate) error {
	if !sess.IsAuthenticated() {
		return errors.New("update profile: not signed in")
	}
	if role, _ := sess.UserRole(); role != domainauth.RoleStudent {
		in.Phone = ""
	}

	user, err := s.accounts.UpdateProfile(ctx, sess.Token(), in)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if len(user) == 0 {
		return nil
	}
	return sess.UpdateUser(ctx, user)
}
