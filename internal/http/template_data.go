package httpx

import (
	"net/http"

	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/http/ui/viewmodel"
)

const themeCookieName = "theme"

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

func pageTitle(title string) string {
	if title == "" {
		return viewmodel.Brand
	}
	return title + " | " + viewmodel.Brand
}

func themeFromRequest(r *http.Request) string {
	if c, err := r.Cookie(themeCookieName); err == nil && c.Value == viewmodel.ThemeDark {
		return viewmodel.ThemeDark
	}
	return viewmodel.ThemeLight
}

// buildLayout constructs shared layout metadata from the request and its session.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       pageTitle(meta.Title),
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Theme:       themeFromRequest(r),
		Flash:       readFlash(r),
	}

	sess := requestSession(r)
	if !sess.IsAuthenticated() {
		return layout
	}
	layout.IsAuthenticated = true

	user, ok := sess.User()
	if !ok {
		return layout
	}
	role, _ := user.ParsedRole()
	layout.User = &viewmodel.User{
		Name:  user.DisplayName(),
		Email: user.Email,
		Role:  role.Label(),
	}
	layout.Shell, layout.Nav = viewmodel.ShellFor(role, r.URL.Path)
	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Layout":          layout,
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"CSRFToken":       layout.CSRFToken,
		"Errors":          map[string]string{},
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// sessionUser returns the signed-in user record, or the zero user.
func sessionUser(r *http.Request) domainauth.User {
	u, _ := requestSession(r).User()
	return u
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	if msg == "" {
		return b
	}
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
