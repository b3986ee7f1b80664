package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ghugn/chem-class-git/internal/adapters/memstore"
	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/mocks"
	"github.com/ghugn/chem-class-git/internal/mocks/fakes"
	"github.com/ghugn/chem-class-git/internal/service"
)

const testCSRF = "test-csrf-token"

// testApp is a router wired to in-memory collaborators.
type testApp struct {
	handler  http.Handler
	store    *memstore.Store
	school   *fakes.School
	accounts *mocks.MockAccountAPI
}

// skipIfNoTemplates skips tests that render the real templates when they are not
// reachable from the package directory.
func skipIfNoTemplates(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("templates not available, skipping")
	}
}

func newTestApp(t *testing.T, school *fakes.School) *testApp {
	t.Helper()
	skipIfNoTemplates(t)
	if school == nil {
		school = &fakes.School{}
	}
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountAPI(ctrl)
	store := memstore.New(time.Hour)

	handler, err := NewRouter(RouterServices{
		Auth:     service.NewAuthService(service.AuthServiceOptions{Accounts: accounts}),
		School:   service.NewSchoolService(service.SchoolServiceOptions{API: school}),
		Sessions: store,
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS: fstest.MapFS{
			"css/app.css": {Data: []byte("body{}")},
			"js/app.js":   {Data: []byte("void 0")},
		},
	})
	require.NoError(t, err)
	return &testApp{handler: handler, store: store, school: school, accounts: accounts}
}

// signIn stores a session for a user with the given role and returns its scope id.
func (a *testApp) signIn(t *testing.T, role string) string {
	t.Helper()
	sess := service.NewSession(a.store, service.NewSessionID())
	require.NoError(t, sess.Begin(context.Background(), "tok-"+strings.ToLower(role), domainauth.User{
		ID:       "1",
		FullName: "Nguyễn Văn A",
		Email:    "a@example.com",
		Role:     role,
	}))
	return sess.ID()
}

func withSession(r *http.Request, sid string) *http.Request {
	if sid != "" {
		r.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: sid})
	}
	return r
}

func newGetRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "text/html")
	return req
}

func newFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func serve(a *testApp, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(t *testing.T, sid, target string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(a, withSession(newGetRequest(target), sid))
}

// post submits a urlencoded form with a valid CSRF token.
func (a *testApp) post(t *testing.T, sid, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFCookieName, testCSRF)
	req := withSession(newFormRequest(target, form), sid)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRF})
	return serve(a, req)
}

// flashOf decodes the flash cookie set on a response.
func flashOf(t *testing.T, rec *httptest.ResponseRecorder) (kind, message string) {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name != flashCookieName || c.Value == "" {
			continue
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(c)
		f := readFlash(req)
		require.NotNil(t, f)
		return f.Kind, f.Message
	}
	return "", ""
}
