package httpx

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/ghugn/chem-class-git/internal/http/ui/viewmodel"
)

const flashCookieName = "flash"

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// setFlash stores a one-shot banner shown by the next rendered page.
func setFlash(w http.ResponseWriter, kind, message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	value := base64.RawURLEncoding.EncodeToString([]byte(kind + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// readFlash decodes the pending banner, if any.
func readFlash(r *http.Request) *viewmodel.Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(string(raw), "|")
	if !ok || msg == "" {
		return nil
	}
	if kind != FlashSuccess && kind != FlashError {
		kind = FlashError
	}
	return &viewmodel.Flash{Kind: kind, Message: msg}
}

// clearFlash expires the banner once it has been rendered.
func clearFlash(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(flashCookieName); err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// redirectWithFlash finishes a write with POST-redirect-GET.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	setFlash(w, kind, message)
	Redirect(w, r, location)
}
