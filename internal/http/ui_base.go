package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"sync"

	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	apperrors "github.com/ghugn/chem-class-git/internal/errors"
	"github.com/ghugn/chem-class-git/internal/http/ui/viewmodel"
	"github.com/ghugn/chem-class-git/internal/http/validation"
	"github.com/ghugn/chem-class-git/internal/ports"
	"github.com/ghugn/chem-class-git/internal/service"
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T      *TemplateRenderer
	Auth   *service.AuthService
	School *service.SchoolService
	Health ports.HealthChecker
	// Forms validates submitted forms. A nil value uses a default validator.
	Forms *validation.Validator
	// SecureCookies marks the theme cookie Secure.
	SecureCookies bool
	IsDev         bool // Development mode flag for enhanced error reporting
	Logger        *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

//nolint:gochecknoglobals // shared lazily built validator
var defaultForms = sync.OnceValue(validation.New)

func (h *UIHandlers) forms() *validation.Validator {
	if h.Forms != nil {
		return h.Forms
	}
	return defaultForms()
}

// token returns the bearer token of the request's session.
func token(r *http.Request) string {
	return requestSession(r).Token()
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			markPageError(data)
		}
	}
	h.renderPage(w, r, data)
}

// renderPage renders a full page, or for htmx navigation only the content
// plus out-of-band title updates.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	h.renderPageStatus(w, r, data, 0)
}

// renderPageStatus is renderPage with an explicit status; 0 leaves it at 200.
func (h *UIHandlers) renderPageStatus(w http.ResponseWriter, r *http.Request, data map[string]any, status int) {
	clearFlash(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if !WantsPartial(r) {
		if status != 0 {
			w.WriteHeader(status)
		}
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	HTMX(w, r).Trigger("nav:activate", map[string]string{"path": r.URL.Path})
	if status != 0 {
		w.WriteHeader(status)
	}

	layout := extractLayoutInfo(data)

	// htmx picks up <title> from partial responses.
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(layout.Title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	header := `<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(layout.PageTitle) + `</h1>`
	if _, err := w.Write([]byte(header)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}

	if err := h.T.RenderPartial(w, r, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

func markPageError(data map[string]any) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; ok {
		return
	}
	data["ErrorMessage"] = msgGenericError
}

func extractLayoutInfo(data any) viewmodel.Layout {
	switch v := data.(type) {
	case viewmodel.LayoutProvider:
		if l := v.LayoutData(); l != nil {
			return *l
		}
	case viewmodel.Layout:
		return v
	case *viewmodel.Layout:
		if v != nil {
			return *v
		}
	case map[string]any:
		if l, ok := v["Layout"].(viewmodel.Layout); ok {
			return l
		}
	}
	return viewmodel.Layout{}
}

// homeFor returns the landing page of the signed-in user, or the login page.
func homeFor(r *http.Request) string {
	role, ok := requestSession(r).UserRole()
	if !ok {
		return domainauth.LoginPath
	}
	return role.HomePath()
}

// NotFound handles unknown paths. Browsers are sent to the root, which forwards
// to the login page or the user's home; API callers get JSON.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) || !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found"})
		return
	}
	Redirect(w, r, "/")
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		body := `<div class="template-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// finishWrite ends a write with POST-redirect-GET back to the page. A failure
// carries the API's message, or fallback, as an error banner.
func (h *UIHandlers) finishWrite(w http.ResponseWriter, r *http.Request, back string, err error, success, fallback string) {
	if err != nil {
		h.logger().WarnContext(r.Context(), "write failed",
			"path", r.URL.Path,
			"code", apperrors.GetCode(err),
			"error", err,
		)
		redirectWithFlash(w, r, back, FlashError, apperrors.UserMessage(err, fallback))
		return
	}
	redirectWithFlash(w, r, back, FlashSuccess, success)
}

// rejectForm sends the first validation message, in field order, back as an error banner.
func rejectForm(w http.ResponseWriter, r *http.Request, back string, errs map[string]string, order ...string) {
	redirectWithFlash(w, r, back, FlashError, validation.First(errs, order...))
}
