package auth

// Outcome is the terminal result of a guard evaluation.
type Outcome int

const (
	OutcomeRender Outcome = iota
	OutcomeRedirectHome
	OutcomeRedirectLogin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRender:
		return "render"
	case OutcomeRedirectHome:
		return "redirect_home"
	case OutcomeRedirectLogin:
		return "redirect_login"
	default:
		return "unknown"
	}
}

// SessionState is the read-only view of a session the guard needs.
type SessionState interface {
	IsAuthenticated() bool
	UserRole() (Role, bool)
}

// Decision is the guard's verdict for one request.
type Decision struct {
	Outcome Outcome
	// Location is set for redirect outcomes.
	Location string
	Role     Role
}

// Guard gates a route subtree on session state. An empty Allowed set admits any known role.
type Guard struct {
	Allowed []Role
}

// NewGuard returns a guard for the given roles.
func NewGuard(allowed ...Role) Guard { return Guard{Allowed: allowed} }

// Evaluate decides whether to render or where to redirect. It holds no state
// and is evaluated fresh on every navigation.
func (g Guard) Evaluate(s SessionState) Decision {
	if s == nil || !s.IsAuthenticated() {
		return Decision{Outcome: OutcomeRedirectLogin, Location: LoginPath}
	}
	role, ok := s.UserRole()
	if !ok {
		return Decision{Outcome: OutcomeRedirectLogin, Location: LoginPath}
	}
	if g.allows(role) {
		return Decision{Outcome: OutcomeRender, Role: role}
	}

	switch role {
	case RoleAdmin, RoleStudent:
		return Decision{Outcome: OutcomeRedirectHome, Location: role.HomePath(), Role: role}
	default:
		return Decision{Outcome: OutcomeRedirectLogin, Location: LoginPath}
	}
}

func (g Guard) allows(role Role) bool {
	if len(g.Allowed) == 0 {
		return role.Valid()
	}
	for _, r := range g.Allowed {
		if r == role {
			return true
		}
	}
	return false
}
