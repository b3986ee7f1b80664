package httpx

import "net/http"

// HTMXResponse builds a response that behaves for both htmx and plain requests.
type HTMXResponse struct {
	w http.ResponseWriter
	r *http.Request
}

// HTMX starts a fluent response for r.
func HTMX(w http.ResponseWriter, r *http.Request) *HTMXResponse {
	return &HTMXResponse{w: w, r: r}
}

// Trigger fires a client-side event after swap. Chainable.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	SetHXTrigger(h.w, event, payload)
	return h
}

// Redirect sends htmx requests an Hx-Redirect with 200 and everything else a
// 303 See Other. The handler must not write after calling it.
func (h *HTMXResponse) Redirect(location string) {
	if IsHTMX(h.r) {
		SetHXRedirect(h.w, location)
		h.w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(h.w, h.r, location, http.StatusSeeOther)
}

// Refresh asks htmx for a full page reload; plain requests are redirected to
// fallback instead.
func (h *HTMXResponse) Refresh(fallback string) {
	if IsHTMX(h.r) {
		h.w.Header().Set("Hx-Refresh", "true")
		h.w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(h.w, h.r, fallback, http.StatusSeeOther)
}
