package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubState struct {
	authed bool
	role   string
}

func (s stubState) IsAuthenticated() bool { return s.authed }

func (s stubState) UserRole() (Role, bool) { return ParseRole(s.role) }

func TestGuard_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		guard    Guard
		state    SessionState
		outcome  Outcome
		location string
	}{
		{
			name:     "nil session redirects to login",
			guard:    NewGuard(RoleStudent),
			state:    nil,
			outcome:  OutcomeRedirectLogin,
			location: "/login",
		},
		{
			name:     "no token redirects to login",
			guard:    NewGuard(RoleStudent),
			state:    stubState{authed: false, role: "STUDENT"},
			outcome:  OutcomeRedirectLogin,
			location: "/login",
		},
		{
			name:     "admin on student subtree goes home",
			guard:    NewGuard(RoleStudent),
			state:    stubState{authed: true, role: "ADMIN"},
			outcome:  OutcomeRedirectHome,
			location: "/admin",
		},
		{
			name:     "student on admin subtree goes home",
			guard:    NewGuard(RoleAdmin),
			state:    stubState{authed: true, role: "STUDENT"},
			outcome:  OutcomeRedirectHome,
			location: "/student",
		},
		{
			name:    "student on student subtree renders",
			guard:   NewGuard(RoleStudent),
			state:   stubState{authed: true, role: "STUDENT"},
			outcome: OutcomeRender,
		},
		{
			name:    "no restriction admits known role",
			guard:   NewGuard(),
			state:   stubState{authed: true, role: "ADMIN"},
			outcome: OutcomeRender,
		},
		{
			name:     "missing user record redirects to login",
			guard:    NewGuard(RoleAdmin),
			state:    stubState{authed: true},
			outcome:  OutcomeRedirectLogin,
			location: "/login",
		},
		{
			name:     "unknown role redirects to login even without restriction",
			guard:    NewGuard(),
			state:    stubState{authed: true, role: "TEACHER"},
			outcome:  OutcomeRedirectLogin,
			location: "/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.guard.Evaluate(tt.state)
			assert.Equal(t, tt.outcome, d.Outcome)
			assert.Equal(t, tt.location, d.Location)
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "render", OutcomeRender.String())
	assert.Equal(t, "redirect_home", OutcomeRedirectHome.String())
	assert.Equal(t, "redirect_login", OutcomeRedirectLogin.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
