package httpx

import (
	"net/http"

	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/http/ui/viewmodel"
)

//nolint:gochecknoglobals // static page metadata
var (
	loginMeta    = PageMeta{Title: "Đăng nhập", PageTitle: "Đăng nhập", CurrentPage: PageLogin}
	registerMeta = PageMeta{Title: "Đăng ký", PageTitle: "Tạo tài khoản học sinh", CurrentPage: PageRegister}
)

// Root sends visitors to the login page.
func (h *UIHandlers) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	Redirect(w, r, domainauth.LoginPath)
}

// LoginPage renders the sign-in form. Signed-in users go straight to their home.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if home := homeFor(r); home != domainauth.LoginPath {
		Redirect(w, r, home)
		return
	}
	h.renderPage(w, r, NewTemplateData(r, loginMeta).With("Form", loginForm{}).Build())
}

// Login exchanges the submitted credentials for a session.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	form := parseLoginForm(r)
	if errs := h.forms().Struct(form); errs != nil {
		h.RenderFormError(w, r, ErrorOpts{
			FieldErrors: errs,
			PageMeta:    loginMeta,
			Data:        map[string]any{"Form": loginForm{Email: form.Email}},
		})
		return
	}

	res, err := h.Auth.Login(r.Context(), requestSession(r), form.credentials())
	if err != nil {
		h.RenderFormError(w, r, ErrorOpts{
			Err:      err,
			Fallback: msgLoginFailed,
			PageMeta: loginMeta,
			Data:     map[string]any{"Form": loginForm{Email: form.Email}},
		})
		return
	}
	Redirect(w, r, res.Location)
}

// RegisterPage renders the student sign-up form.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, registerMeta).
		With("Form", registerForm{}).
		With("Classes", h.Auth.RegistrationClasses(r.Context())).
		Build()
	h.renderPage(w, r, data)
}

// Register creates a student account and signs it in.
func (h *UIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	form := parseRegisterForm(r)
	renderErr := func(opts ErrorOpts) {
		opts.PageMeta = registerMeta
		opts.Fallback = msgRegisterFail
		opts.Data = map[string]any{
			"Form":    registerForm{FullName: form.FullName, Email: form.Email, Phone: form.Phone, ClassID: form.ClassID},
			"Classes": h.Auth.RegistrationClasses(r.Context()),
		}
		h.RenderFormError(w, r, opts)
	}

	if errs := h.forms().Struct(form); errs != nil {
		renderErr(ErrorOpts{FieldErrors: errs})
		return
	}
	res, err := h.Auth.Register(r.Context(), requestSession(r), form.registration())
	if err != nil {
		renderErr(ErrorOpts{Err: err})
		return
	}
	Redirect(w, r, res.Location)
}

// Logout ends the session and returns to the login page.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), requestSession(r)); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}
	Redirect(w, r, domainauth.LoginPath)
}

// ToggleTheme flips the theme cookie and returns to the referring page.
func (h *UIHandlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	next := viewmodel.ThemeDark
	if themeFromRequest(r) == viewmodel.ThemeDark {
		next = viewmodel.ThemeLight
	}
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookieName,
		Value:    next,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	// The theme class sits on <html>, outside any swap target.
	HTMX(w, r).Refresh(localReferer(r, homeFor(r)))
}

func settingsMeta(role domainauth.Role) PageMeta {
	meta := PageMeta{Title: "Cài đặt", PageTitle: "Cài đặt Tài khoản"}
	switch role {
	case domainauth.RoleAdmin:
		meta.CurrentPage = PageAdminSettings
	case domainauth.RoleStudent:
		meta.CurrentPage = PageStudentSettings
	default:
		meta.CurrentPage = PageLogin
	}
	return meta
}

// settingsForm prefills the form from the session's user record.
func settingsForm(r *http.Request) profileForm {
	u := sessionUser(r)
	return profileForm{FullName: u.FullName, Email: u.Email, Phone: u.Phone}
}

// SettingsPage renders the account settings form of either shell.
func (h *UIHandlers) SettingsPage(role domainauth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := NewTemplateData(r, settingsMeta(role)).
			With("Form", settingsForm(r)).
			With("ShowPhone", role == domainauth.RoleStudent).
			With("Action", role.HomePath()+"/settings").
			Build()
		h.renderPage(w, r, data)
	}
}

// UpdateSettings saves the profile and merges the result into the session.
func (h *UIHandlers) UpdateSettings(role domainauth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := parseProfileForm(r)
		action := role.HomePath() + "/settings"
		kept := profileForm{FullName: form.FullName, Email: form.Email, Phone: form.Phone}
		renderErr := func(opts ErrorOpts) {
			opts.PageMeta = settingsMeta(role)
			opts.Fallback = msgGenericError
			opts.Data = map[string]any{
				"Form":      kept,
				"ShowPhone": role == domainauth.RoleStudent,
				"Action":    action,
			}
			h.RenderFormError(w, r, opts)
		}

		if errs := h.forms().Struct(form); errs != nil {
			renderErr(ErrorOpts{FieldErrors: errs})
			return
		}
		if err := h.Auth.UpdateProfile(r.Context(), requestSession(r), form.update()); err != nil {
			renderErr(ErrorOpts{Err: err})
			return
		}
		redirectWithFlash(w, r, action, FlashSuccess, msgSaved)
	}
}
