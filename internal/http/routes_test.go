package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/domain/model"
	apperrors "github.com/ghugn/chem-class-git/internal/errors"
	"github.com/ghugn/chem-class-git/internal/mocks/fakes"
	"github.com/ghugn/chem-class-git/internal/ports"
)

func TestRouter_PublicRoutes(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.get(t, "", "/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = app.get(t, "", "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "health checks bypass sessions")

	rec = app.get(t, "", "/static/css/app.css?v=abc")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")

	rec = app.get(t, "", "/nowhere")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouter_LoginPage(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.get(t, "", "/login")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="csrf_token"`)
	assert.Contains(t, body, `name="email"`)

	names := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		names[c.Name] = true
	}
	assert.True(t, names[DefaultSessionCookieName])
	assert.True(t, names[DefaultCSRFCookieName])

	sid := app.signIn(t, "ADMIN")
	rec = app.get(t, sid, "/login")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestRouter_Login(t *testing.T) {
	app := newTestApp(t, nil)
	app.accounts.EXPECT().
		Login(gomock.Any(), ports.Credentials{Email: "admin@example.com", Password: "secret"}).
		Return(ports.AuthResult{Token: "jwt", User: domainauth.User{ID: "1", Role: "ADMIN"}}, nil)

	rec := app.post(t, "", "/login", url.Values{"email": {"admin@example.com"}, "password": {"secret"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
	assert.Equal(t, 1, app.store.Len())
}

func lastCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

func TestRouter_LoginRotatesSessionID(t *testing.T) {
	app := newTestApp(t, nil)
	app.accounts.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(ports.AuthResult{Token: "jwt", User: domainauth.User{ID: "1", Role: "STUDENT"}}, nil)

	page := app.get(t, "", "/login")
	issued := lastCookie(page, DefaultSessionCookieName)
	require.NotNil(t, issued)
	anonymous := issued.Value

	rec := app.post(t, anonymous, "/login", url.Values{"email": {"hs@example.com"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rotated := lastCookie(rec, DefaultSessionCookieName)
	require.NotNil(t, rotated)
	assert.NotEqual(t, anonymous, rotated.Value)
	assert.True(t, rotated.HttpOnly)

	old, err := app.store.Load(context.Background(), anonymous)
	require.NoError(t, err)
	assert.Empty(t, old)

	fields, err := app.store.Load(context.Background(), rotated.Value)
	require.NoError(t, err)
	assert.Equal(t, "jwt", fields["token"])

	rec = app.get(t, rotated.Value, "/student")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LoginFailureRerendersForm(t *testing.T) {
	app := newTestApp(t, nil)
	app.accounts.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(ports.AuthResult{}, apperrors.Unauthorized("Email hoặc mật khẩu không đúng"))

	rec := app.post(t, "", "/login", url.Values{"email": {"a@example.com"}, "password": {"bad"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email hoặc mật khẩu không đúng")
	assert.Contains(t, rec.Body.String(), `value="a@example.com"`)
	assert.Zero(t, app.store.Len())
}

func TestRouter_LoginValidationSkipsAPI(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.post(t, "", "/login", url.Values{"email": {"not-an-email"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, app.store.Len())
}

func TestRouter_PostWithoutCSRFIsRejected(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.signIn(t, "ADMIN")

	req := withSession(newFormRequest("/admin/classes/1/delete", url.Values{}), sid)
	rec := serve(app, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, app.school.Calls())
}

func TestRouter_Guard(t *testing.T) {
	app := newTestApp(t, nil)
	student := app.signIn(t, "STUDENT")
	admin := app.signIn(t, "ADMIN")

	tests := []struct {
		name     string
		sid      string
		target   string
		location string
	}{
		{"signed out admin page", "", "/admin/classes", "/login"},
		{"signed out student page", "", "/student/grades", "/login"},
		{"student on admin page", student, "/admin/payments", "/student"},
		{"admin on student page", admin, "/student", "/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.get(t, tt.sid, tt.target)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
	assert.Empty(t, app.school.Calls(), "guarded pages never reach the API")
}

func TestRouter_AdminPagesRender(t *testing.T) {
	school := &fakes.School{
		Classes: []model.Class{{ID: "1", Name: "Hóa 10A", Schedule: "Thứ 2 (18:00 - 19:30)"}},
		Admin:   model.AdminDashboard{TotalStudents: 42, TotalClasses: 3},
	}
	app := newTestApp(t, school)
	sid := app.signIn(t, "ADMIN")

	for _, target := range []string{
		"/admin",
		"/admin/classes",
		"/admin/classes?class=1",
		"/admin/students",
		"/admin/grades",
		"/admin/documents",
		"/admin/payments?class=1",
		"/admin/schedule",
		"/admin/settings",
	} {
		t.Run(target, func(t *testing.T) {
			rec := app.get(t, sid, target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), `id="main-content"`)
		})
	}

	rec := app.get(t, sid, "/admin/classes")
	assert.Contains(t, rec.Body.String(), "Hóa 10A")
	rec = app.get(t, sid, "/admin")
	assert.Contains(t, rec.Body.String(), "42")
	assert.NotEmpty(t, school.Called("AdminDashboard"))
	assert.Equal(t, "tok-admin", school.Called("AdminDashboard")[0].Token)
}

func TestRouter_HTMXNavigationGetsPartial(t *testing.T) {
	app := newTestApp(t, &fakes.School{Classes: []model.Class{{ID: "1", Name: "Hóa 11B"}}})
	sid := app.signIn(t, "ADMIN")

	req := withSession(newGetRequest("/admin/classes"), sid)
	req.Header.Set("Hx-Request", "true")
	rec := serve(app, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<title>`)
	assert.Contains(t, body, `hx-swap-oob="outerHTML"`)
	assert.Contains(t, body, "Hóa 11B")
	assert.NotContains(t, body, "<html")
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "nav:activate")
}

func TestRouter_StudentPagesRender(t *testing.T) {
	school := &fakes.School{
		MyGrades: []model.StudentGrade{{ExamID: "5", Title: "Kiểm tra 15 phút", MaxScore: 10}},
	}
	app := newTestApp(t, school)
	sid := app.signIn(t, "STUDENT")

	for _, target := range []string{"/student", "/student/grades", "/student/documents", "/student/payments", "/student/settings"} {
		t.Run(target, func(t *testing.T) {
			rec := app.get(t, sid, target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}
	rec := app.get(t, sid, "/student/grades")
	assert.Contains(t, rec.Body.String(), "Kiểm tra 15 phút")
}

func TestRouter_CreateClass(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.signIn(t, "ADMIN")

	rec := app.post(t, sid, "/admin/classes", url.Values{
		"name":       {"Hóa 12C"},
		"fee":        {"1500000"},
		"day":        {"Thứ 4"},
		"start_time": {"17:30"},
		"end_time":   {"19:00"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/classes", rec.Header().Get("Location"))
	calls := app.school.Called("CreateClass")
	require.Len(t, calls, 1)
	assert.Equal(t, "tok-admin", calls[0].Token)
	assert.Equal(t, model.ClassInput{Name: "Hóa 12C", Fee: 1500000, Schedule: "Thứ 4 (17:30 - 19:00)"}, calls[0].Args[0])

	kind, msg := flashOf(t, rec)
	assert.Equal(t, FlashSuccess, kind)
	assert.Equal(t, msgCreated, msg)
}

func TestRouter_CreateClassValidation(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.signIn(t, "ADMIN")

	rec := app.post(t, sid, "/admin/classes", url.Values{"name": {"   "}, "day": {"Thứ 2"}, "start_time": {"18:00"}, "end_time": {"19:30"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, app.school.Called("CreateClass"))
	kind, msg := flashOf(t, rec)
	assert.Equal(t, FlashError, kind)
	assert.NotEmpty(t, msg)
}

func TestRouter_WriteFailureFlashesAPIMessage(t *testing.T) {
	school := &fakes.School{Errs: map[string]error{
		"DeleteClass": apperrors.Validation("Lớp đang có học sinh"),
	}}
	app := newTestApp(t, school)
	sid := app.signIn(t, "ADMIN")

	rec := app.post(t, sid, "/admin/classes/3/delete", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	kind, msg := flashOf(t, rec)
	assert.Equal(t, FlashError, kind)
	assert.Equal(t, "Lớp đang có học sinh", msg)
}

func TestRouter_TransportFailureHidesDetails(t *testing.T) {
	school := &fakes.School{Errs: map[string]error{
		"MarkTuitionPaid": apperrors.Wrap(errors.New("dial tcp 10.0.0.1:443"), apperrors.ErrCodeTransport, "api unreachable"),
	}}
	app := newTestApp(t, school)
	sid := app.signIn(t, "ADMIN")

	rec := app.post(t, sid, "/admin/payments/tuitions/8/pay", url.Values{"return_class": {"2"}, "return_batch": {"4"}})

	assert.Equal(t, "/admin/payments?batch=4&class=2", rec.Header().Get("Location"))
	_, msg := flashOf(t, rec)
	assert.Equal(t, "Lỗi cập nhật", msg)
}

func TestRouter_AddClassStudents(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.signIn(t, "ADMIN")

	rec := app.post(t, sid, "/admin/classes/7/students", url.Values{"student_ids": {"11", "12"}})

	assert.Equal(t, "/admin/classes?class=7", rec.Header().Get("Location"))
	calls := app.school.Called("AddClassStudent")
	require.Len(t, calls, 2)
	assert.Equal(t, []any{"7", "11"}, calls[0].Args)
	assert.Equal(t, []any{"7", "12"}, calls[1].Args)
	_, msg := flashOf(t, rec)
	assert.Equal(t, "Đã thêm 2 học sinh vào lớp!", msg)
}

func TestRouter_SaveGrades(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.signIn(t, "ADMIN")

	rec := app.post(t, sid, "/admin/grades/exams/9/grades", url.Values{
		"return_class": {"2"},
		"student_ids":  {"11"},
		"score_11":     {"9,5"},
	})

	assert.Equal(t, "/admin/grades?class=2&exam=9", rec.Header().Get("Location"))
	calls := app.school.Called("SaveExamGrades")
	require.Len(t, calls, 1)
	assert.Equal(t, "9", calls[0].Args[0])
	entries, ok := calls[0].Args[1].([]model.GradeEntry)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.InDelta(t, 9.5, *entries[0].Score, 0.0001)
}

func TestRouter_StudentCannotWrite(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.signIn(t, "STUDENT")

	rec := app.post(t, sid, "/admin/students/3/delete", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student", rec.Header().Get("Location"))
	assert.Empty(t, app.school.Calls())
}

func TestRouter_Logout(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.signIn(t, "STUDENT")
	require.Equal(t, 1, app.store.Len())

	rec := app.post(t, sid, "/logout", nil)

	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Zero(t, app.store.Len())
	rec = app.get(t, sid, "/student")
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouter_ToggleTheme(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.signIn(t, "ADMIN")

	rec := app.post(t, sid, "/theme", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
	theme := lastCookie(rec, themeCookieName)
	require.NotNil(t, theme)
	assert.Equal(t, "dark", theme.Value)

	form := url.Values{DefaultCSRFCookieName: {testCSRF}}
	req := withSession(newFormRequest("/theme", form), sid)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRF})
	req.AddCookie(theme)
	req.Header.Set("Hx-Request", "true")
	rec = serve(app, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("Hx-Refresh"))
	theme = lastCookie(rec, themeCookieName)
	require.NotNil(t, theme)
	assert.Equal(t, "light", theme.Value)
}

func TestRouter_UpdateSettingsMergesUser(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.signIn(t, "STUDENT")
	app.accounts.EXPECT().
		UpdateProfile(gomock.Any(), "tok-student", ports.ProfileUpdate{
			FullName:        "Trần Thị B",
			Email:           "b@example.com",
			Phone:           "0901",
			CurrentPassword: "old-pass",
		}).
		Return(map[string]any{"full_name": "Trần Thị B", "email": "b@example.com", "phone": "0901"}, nil)

	rec := app.post(t, sid, "/student/settings", url.Values{
		"full_name":        {"Trần Thị B"},
		"email":            {"b@example.com"},
		"phone":            {"0901"},
		"current_password": {"old-pass"},
	})

	assert.Equal(t, "/student/settings", rec.Header().Get("Location"))
	fields, err := app.store.Load(context.Background(), sid)
	require.NoError(t, err)
	user, err := domainauth.ParseUser(fields["user"])
	require.NoError(t, err)
	assert.Equal(t, "Trần Thị B", user.FullName)
	assert.Equal(t, "STUDENT", user.Role)
}

func TestRouter_APIMe(t *testing.T) {
	app := newTestApp(t, nil)

	req := newGetRequest("/api/me")
	rec := serve(app, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sid := app.signIn(t, "ADMIN")
	rec = serve(app, withSession(newGetRequest("/api/me"), sid))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"ADMIN"`)
}
