package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ghugn/chem-class-git/internal/mocks"
)

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	healthHandler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, healthResponse, rec.Body.String())

	rec = httptest.NewRecorder()
	healthHandler(rec, httptest.NewRequest(http.MethodHead, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestReady(t *testing.T) {
	t.Run("api reachable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		health := mocks.NewMockHealthChecker(ctrl)
		health.EXPECT().Health(gomock.Any()).Return(nil)

		rec := httptest.NewRecorder()
		(&UIHandlers{Health: health}).Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("api unreachable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		health := mocks.NewMockHealthChecker(ctrl)
		health.EXPECT().Health(gomock.Any()).Return(errors.New("dial tcp: refused"))

		rec := httptest.NewRecorder()
		(&UIHandlers{Health: health}).Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"unavailable","api":"unreachable"}`, rec.Body.String())
	})

	t.Run("no checker configured", func(t *testing.T) {
		rec := httptest.NewRecorder()
		(&UIHandlers{}).Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMe(t *testing.T) {
	req := guardedRequest(t, http.MethodGet, "/api/me", "STUDENT")
	rec := httptest.NewRecorder()
	(&UIHandlers{}).Me(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"1","full_name":"","email":"","role":"STUDENT","home":"/student"}`, rec.Body.String())
}
