package httpx

import (
	"io"
	"net/http"
)

const healthResponse = `{"status":"ok"}`

// healthHandler returns a simple 200 OK status for liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// Ready reports whether the school API answers its health check.
func (h *UIHandlers) Ready(w http.ResponseWriter, r *http.Request) {
	if h.Health == nil {
		healthHandler(w, r)
		return
	}
	if err := h.Health.Health(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "readiness check failed", "error", err)
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"api":    "unreachable",
		})
		return
	}
	healthHandler(w, r)
}

// Me returns the signed-in user as JSON.
func (h *UIHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)
	user, _ := sess.User()
	role, _ := sess.UserRole()
	WriteJSON(w, http.StatusOK, map[string]any{
		"id":        user.ID,
		"full_name": user.FullName,
		"email":     user.Email,
		"role":      role.String(),
		"home":      role.HomePath(),
	})
}
