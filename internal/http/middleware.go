package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/observability/metrics"
	"github.com/ghugn/chem-class-git/internal/observability/statsd"
	"github.com/ghugn/chem-class-git/internal/ports"
	"github.com/ghugn/chem-class-git/internal/service"
)

// DefaultSessionCookieName names the cookie carrying the session scope id.
const DefaultSessionCookieName = "chemclass_sid"

// Logging returns a middleware that logs HTTP requests and responses.
// When sink is non-nil, request counts and latency are emitted as well.
func Logging(logger *slog.Logger, sink statsd.Sink) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", elapsed),
			)
			metrics.EmitRequest(sink, r.Method, ww.status, elapsed)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *respWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionOptions configures the Sessions middleware.
type SessionOptions struct {
	Store        ports.SessionStore
	CookieName   string
	CookieDomain string
	// Secure marks the cookie Secure; set when the app is served over https.
	Secure bool
	// TTL sets the cookie lifetime. Zero makes it a browser-session cookie.
	TTL    time.Duration
	Logger *slog.Logger
}

// Sessions returns a middleware that binds every request to a session scope.
// A browser without a valid scope cookie is issued a fresh id, and a signed-in
// browser gets its cookie lifetime renewed on every request. If the store cannot
// be read the request continues with an empty session, so guarded routes send the
// user to the login page.
func Sessions(opts SessionOptions) func(http.Handler) http.Handler {
	if opts.Store == nil {
		panic("httpx: Sessions requires a store") //nolint:forbidigo // Fail fast during server setup.
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultSessionCookieName
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sessionIDFromCookie(r, opts.CookieName)
			fresh := id == ""
			if fresh {
				id = service.NewSessionID()
				setSessionCookie(w, opts, id)
			}

			sess, err := service.LoadSession(r.Context(), opts.Store, id)
			if err != nil {
				logger.WarnContext(r.Context(), "session unavailable; continuing signed out",
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
			}
			// The store slid the scope's expiry on load; keep the cookie in step.
			if !fresh && sess.IsAuthenticated() {
				setSessionCookie(w, opts, id)
			}
			sess.OnRotate(func(newID string) { setSessionCookie(w, opts, newID) })
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
		})
	}
}

// sessionIDFromCookie returns the scope id from the cookie, or "" when absent or malformed.
func sessionIDFromCookie(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

func setSessionCookie(w http.ResponseWriter, opts SessionOptions, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    id,
		Path:     "/",
		Domain:   opts.CookieDomain,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(opts.TTL.Seconds()),
	})
}

// GuardOptions configures RequireRole for one route subtree.
type GuardOptions struct {
	// Subtree tags guard metrics, e.g. "admin" or "student".
	Subtree string
	// Roles admitted to the subtree. Empty admits any known role.
	Roles   []domainauth.Role
	Metrics statsd.Sink
}

// RequireRole returns a middleware that gates a subtree on the session's token and role.
// Browser navigations get a 303 redirect, htmx requests an Hx-Redirect header and
// /api/ requests a 401 or 403 JSON error.
func RequireRole(opts GuardOptions) func(http.Handler) http.Handler {
	guard := domainauth.NewGuard(opts.Roles...)
	subtree := opts.Subtree
	if subtree == "" {
		subtree = "any"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := guard.Evaluate(requestSession(r))
			metrics.EmitGuardDecision(opts.Metrics, subtree, decision.Outcome.String())

			switch decision.Outcome {
			case domainauth.OutcomeRender:
				next.ServeHTTP(w, r)
			case domainauth.OutcomeRedirectHome:
				if isAPIRequest(r) {
					WriteError(w, ErrorParams{
						Code:    http.StatusForbidden,
						ErrCode: "insufficient_permissions",
						Err:     errors.New("insufficient permissions"),
					})
					return
				}
				Redirect(w, r, decision.Location)
			case domainauth.OutcomeRedirectLogin:
				if isAPIRequest(r) {
					WriteError(w, ErrorParams{
						Code:    http.StatusUnauthorized,
						ErrCode: "authentication_required",
						Err:     errors.New("authentication required"),
					})
					return
				}
				Redirect(w, r, domainauth.LoginPath)
			default:
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		})
	}
}

// isAPIRequest reports whether the request targets the JSON surface.
func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// IsBrowserRequest reports whether the client expects HTML.
// API routes and static assets are not browser requests; htmx requests always are.
func IsBrowserRequest(r *http.Request) bool {
	if isAPIRequest(r) || strings.HasPrefix(r.URL.Path, "/static/") {
		return false
	}
	if IsHTMX(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}
