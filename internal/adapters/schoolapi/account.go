package schoolapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ghugn/chem-class-git/internal/domain/model"
	"github.com/ghugn/chem-class-git/internal/ports"
)

// Login exchanges credentials for a token and user record.
func (c *Client) Login(ctx context.Context, in ports.Credentials) (ports.AuthResult, error) {
	var out ports.AuthResult
	err := c.do(ctx, call{op: "auth.login", method: http.MethodPost, path: "/auth/login", body: in, out: &out})
	if err != nil {
		return ports.AuthResult{}, fmt.Errorf("schoolapi.Login: %w", err)
	}
	return out, nil
}

// Register creates a student account and signs it in.
func (c *Client) Register(ctx context.Context, in ports.Registration) (ports.AuthResult, error) {
	var out ports.AuthResult
	err := c.do(ctx, call{op: "auth.register", method: http.MethodPost, path: "/auth/register", body: in, out: &out})
	if err != nil {
		return ports.AuthResult{}, fmt.Errorf("schoolapi.Register: %w", err)
	}
	return out, nil
}

// RegistrationClasses lists the classes open for self-registration.
func (c *Client) RegistrationClasses(ctx context.Context) ([]model.Class, error) {
	var out []model.Class
	if err := c.do(ctx, call{op: "auth.classes", method: http.MethodGet, path: "/auth/classes", out: &out}); err != nil {
		return nil, fmt.Errorf("schoolapi.RegistrationClasses: %w", err)
	}
	return out, nil
}

// UpdateProfile changes the signed-in user's account details and returns the updated user object.
func (c *Client) UpdateProfile(ctx context.Context, token string, in ports.ProfileUpdate) (map[string]any, error) {
	var out struct {
		User map[string]any `json:"user"`
	}
	err := c.do(ctx, call{
		op:     "auth.profile",
		method: http.MethodPut,
		path:   "/auth/profile",
		token:  token,
		body:   in,
		out:    &out,
	})
	if err != nil {
		return nil, fmt.Errorf("schoolapi.UpdateProfile: %w", err)
	}
	return out.User, nil
}
