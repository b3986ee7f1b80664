package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMXResponse_TriggerThenRedirect(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/admin/classes", nil)
	req.Header.Set("Hx-Request", "true")
	rec := httptest.NewRecorder()

	HTMX(rec, req).Trigger("class:saved", map[string]string{"id": "c1"}).Redirect("/admin/classes/c1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/admin/classes/c1", rec.Header().Get("Hx-Redirect"))
	assert.JSONEq(t, `{"class:saved":{"id":"c1"}}`, rec.Header().Get("Hx-Trigger"))
}

func TestHTMXResponse_Refresh(t *testing.T) {
	t.Run("htmx reloads in place", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/theme", nil)
		req.Header.Set("Hx-Request", "true")
		rec := httptest.NewRecorder()
		HTMX(rec, req).Refresh("/admin")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "true", rec.Header().Get("Hx-Refresh"))
		assert.Empty(t, rec.Header().Get("Location"))
	})

	t.Run("browser follows fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/theme", nil)
		rec := httptest.NewRecorder()
		HTMX(rec, req).Refresh("/admin")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))
		assert.Empty(t, rec.Header().Get("Hx-Refresh"))
	})
}
