package httpx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	chemclass "github.com/ghugn/chem-class-git"
	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/http/validation"
	"github.com/ghugn/chem-class-git/internal/observability/statsd"
	"github.com/ghugn/chem-class-git/internal/ports"
	"github.com/ghugn/chem-class-git/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth     *service.AuthService
	School   *service.SchoolService
	Health   ports.HealthChecker
	Sessions ports.SessionStore

	SessionCookieName string
	SessionTTL        time.Duration
	CookieDomain      string
	SecureCookies     bool
	// FilesBaseURL resolves document file_url values into download links.
	FilesBaseURL string

	// Compression enables gzip for text responses when non-nil.
	Compression *CompressionConfig
	Metrics     statsd.Sink

	// TemplateFS and StaticFS override the embedded (or, in dev mode, on-disk)
	// frontend. Tests point them at fixtures.
	TemplateFS fs.FS
	StaticFS   fs.FS

	IsDev  bool         // Serve templates and assets from disk
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter builds the browser-facing handler.
//
// /static/, /healthz and /readyz bypass the session layer. Everything else runs
// behind Sessions and CSRFProtection, with RequireRole gating the /admin and
// /student subtrees.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Auth == nil || services.School == nil || services.Sessions == nil {
		return nil, errors.New("httpx: Auth, School and Sessions are required")
	}
	logger := services.logger()

	templateFS, staticFS, err := frontendFS(services)
	if err != nil {
		return nil, err
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS:   templateFS,
		Resolver:     NewAssetResolver(staticFS, logger),
		FilesBaseURL: services.FilesBaseURL,
		DevMode:      services.IsDev,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	h := &UIHandlers{
		T:             tr,
		Auth:          services.Auth,
		School:        services.School,
		Health:        services.Health,
		Forms:         validation.New(),
		SecureCookies: services.SecureCookies,
		IsDev:         services.IsDev,
		Logger:        logger,
	}

	app := http.NewServeMux()
	registerAuthRoutes(app, h)
	registerAdminRoutes(app, h, services.Metrics)
	registerStudentRoutes(app, h, services.Metrics)
	app.Handle("GET /api/me", RequireRole(GuardOptions{Metrics: services.Metrics})(http.HandlerFunc(h.Me)))

	sessions := Sessions(SessionOptions{
		Store:        services.Sessions,
		CookieName:   services.SessionCookieName,
		CookieDomain: services.CookieDomain,
		Secure:       services.SecureCookies,
		TTL:          services.SessionTTL,
		Logger:       logger,
	})
	csrf := CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain, Secure: services.SecureCookies})

	root := http.NewServeMux()
	root.Handle("GET /static/", staticHandler(staticFS))
	root.HandleFunc("GET /healthz", healthHandler)
	root.HandleFunc("GET /readyz", h.Ready)
	root.Handle("/", sessions(csrf(app)))

	var handler http.Handler = root
	if services.Compression != nil {
		cfg := *services.Compression
		if cfg.Logger == nil {
			cfg.Logger = logger
		}
		handler = Compression(cfg)(handler)
	}
	handler = Logging(logger, services.Metrics)(handler)
	return Recover(logger)(handler), nil
}

// frontendFS picks the template and static filesystems: explicit overrides first,
// then the working tree in dev mode, then the embedded copies.
func frontendFS(services RouterServices) (fs.FS, fs.FS, error) {
	templateFS, staticFS := services.TemplateFS, services.StaticFS
	if templateFS == nil {
		if services.IsDev {
			templateFS = os.DirFS(TemplatePathFromRoot)
		} else {
			sub, err := fs.Sub(chemclass.TemplateFS, TemplatePathFromRoot)
			if err != nil {
				return nil, nil, fmt.Errorf("embedded templates: %w", err)
			}
			templateFS = sub
		}
	}
	if staticFS == nil {
		if services.IsDev {
			staticFS = os.DirFS(StaticPathFromRoot)
		} else {
			sub, err := fs.Sub(chemclass.StaticFS, StaticPathFromRoot)
			if err != nil {
				return nil, nil, fmt.Errorf("embedded static assets: %w", err)
			}
			staticFS = sub
		}
	}
	return templateFS, staticFS, nil
}

// staticHandler serves /static/* with cache headers. Fingerprinted URLs
// (?v=<hash>, as produced by the asset resolver) are immutable; anything else
// must be revalidated.
func staticHandler(staticFS fs.FS) http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		files.ServeHTTP(w, r)
	})
}

// registerAuthRoutes wires the public pages and the session actions.
func registerAuthRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("/", h.Root)
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /register", h.RegisterPage)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("POST /theme", h.ToggleTheme)
}

func registerAdminRoutes(mux *http.ServeMux, h *UIHandlers, sink statsd.Sink) {
	guard := RequireRole(GuardOptions{Subtree: "admin", Roles: []domainauth.Role{domainauth.RoleAdmin}, Metrics: sink})
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, guard(fn))
	}

	handle("GET /admin", h.AdminDashboard)
	handle("GET /admin/schedule", h.AdminSchedule)
	handle("GET /admin/settings", h.SettingsPage(domainauth.RoleAdmin))
	handle("POST /admin/settings", h.UpdateSettings(domainauth.RoleAdmin))

	handle("GET /admin/classes", h.AdminClasses)
	handle("POST /admin/classes", h.CreateClass)
	handle("POST /admin/classes/{id}", h.UpdateClass)
	handle("POST /admin/classes/{id}/delete", h.DeleteClass)
	handle("POST /admin/classes/{id}/students", h.AddClassStudents)

	handle("GET /admin/students", h.AdminStudents)
	handle("POST /admin/students", h.CreateStudent)
	handle("POST /admin/students/{id}", h.UpdateStudent)
	handle("POST /admin/students/{id}/delete", h.DeleteStudent)

	handle("GET /admin/grades", h.AdminGrades)
	handle("POST /admin/grades/exams", h.CreateExam)
	handle("POST /admin/grades/exams/{id}", h.UpdateExam)
	handle("POST /admin/grades/exams/{id}/delete", h.DeleteExam)
	handle("POST /admin/grades/exams/{id}/grades", h.SaveGrades)

	handle("GET /admin/documents", h.AdminDocuments)
	handle("POST /admin/documents", h.CreateDocument)
	handle("POST /admin/documents/{id}", h.UpdateDocument)
	handle("POST /admin/documents/{id}/delete", h.DeleteDocument)

	handle("GET /admin/payments", h.AdminPayments)
	handle("POST /admin/payments/batches", h.CreateTuitionBatch)
	handle("POST /admin/payments/batches/{id}/delete", h.DeleteTuitionBatch)
	handle("POST /admin/payments/tuitions/{id}/pay", h.MarkTuitionPaid)
	handle("POST /admin/payments/tuitions/{id}/unpay", h.MarkTuitionUnpaid)
}

func registerStudentRoutes(mux *http.ServeMux, h *UIHandlers, sink statsd.Sink) {
	guard := RequireRole(GuardOptions{Subtree: "student", Roles: []domainauth.Role{domainauth.RoleStudent}, Metrics: sink})
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, guard(fn))
	}

	handle("GET /student", h.StudentDashboard)
	handle("GET /student/grades", h.StudentGrades)
	handle("GET /student/documents", h.StudentDocuments)
	handle("GET /student/payments", h.StudentPayments)
	handle("GET /student/settings", h.SettingsPage(domainauth.RoleStudent))
	handle("POST /student/settings", h.UpdateSettings(domainauth.RoleStudent))
}
