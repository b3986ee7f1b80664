package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/ghugn/chem-class-git/internal/errors"
)

type batchWrites struct {
	created []batchForm
	updated map[string]batchForm
	err     error
}

func (b *batchWrites) Create(_ context.Context, in batchForm) error {
	b.created = append(b.created, in)
	return b.err
}

func (b *batchWrites) Update(_ context.Context, id string, in batchForm) error {
	if b.updated == nil {
		b.updated = map[string]batchForm{}
	}
	b.updated[id] = in
	return b.err
}

func batchRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/payments", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func runBatchForm(req *http.Request, mode FormMode, svc FormService[batchForm]) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	HandleForm(&UIHandlers{}, FormHandlerOpts[batchForm]{
		W:          rec,
		R:          req,
		Mode:       mode,
		Parser:     validated(defaultForms(), parseBatchForm),
		Service:    svc,
		SuccessURL: "/admin/payments",
		ErrorURL:   "/admin/payments/new",
		Success:    "Đã lưu",
		Fallback:   "Không thể lưu",
	})
	return rec
}

func TestHandleForm_CreateRedirectsWithSuccessFlash(t *testing.T) {
	svc := &batchWrites{}
	rec := runBatchForm(batchRequest(url.Values{
		"class_id": {"c1"}, "title": {"Học phí tháng 9"}, "amount": {"1500000"},
	}), FormModeCreate, svc)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/payments", rec.Header().Get("Location"))
	kind, msg := flashOf(t, rec)
	assert.Equal(t, FlashSuccess, kind)
	assert.Equal(t, "Đã lưu", msg)
	if assert.Len(t, svc.created, 1) {
		assert.Equal(t, "c1", svc.created[0].ClassID)
	}
}

func TestHandleForm_ValidationReturnsFirstFieldMessage(t *testing.T) {
	svc := &batchWrites{}
	rec := runBatchForm(batchRequest(url.Values{"amount": {"-5"}}), FormModeCreate, svc)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/payments/new", rec.Header().Get("Location"))
	kind, msg := flashOf(t, rec)
	assert.Equal(t, FlashError, kind)
	assert.Equal(t, "Vui lòng chọn lớp trước", msg)
	assert.Empty(t, svc.created)
}

func TestHandleForm_EditWithoutIDIsNotFound(t *testing.T) {
	svc := &batchWrites{}
	rec := runBatchForm(batchRequest(url.Values{"class_id": {"c1"}}), FormModeEdit, svc)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, svc.updated)
}

func TestHandleForm_EditUsesPathID(t *testing.T) {
	svc := &batchWrites{}
	req := batchRequest(url.Values{"class_id": {"c1"}, "title": {"Đợt 2"}, "amount": {"10.5"}})
	req.SetPathValue("id", "b7")
	rec := runBatchForm(req, FormModeEdit, svc)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Đợt 2", svc.updated["b7"].Title)
}

func TestHandleForm_UnsupportedModeIsMisconfigured(t *testing.T) {
	req := batchRequest(url.Values{"class_id": {"c1"}, "title": {"Đợt 1"}, "amount": {"1"}})
	req.SetPathValue("id", "b7")
	rec := runBatchForm(req, FormModeEdit, FormFuncs[batchForm]{
		CreateFn: func(context.Context, batchForm) error { return nil },
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	kind, _ := flashOf(t, rec)
	assert.Empty(t, kind)
}

func TestHandleForm_APIErrorFlashesUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api message", apperrors.Validation("Lớp không tồn tại"), "Lớp không tồn tại"},
		{"canceled", context.Canceled, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &batchWrites{err: tt.err}
			rec := runBatchForm(batchRequest(url.Values{
				"class_id": {"c1"}, "title": {"Đợt 1"}, "amount": {"1"},
			}), FormModeCreate, svc)

			kind, msg := flashOf(t, rec)
			if tt.want == "" {
				assert.Empty(t, kind)
				assert.Empty(t, rec.Header().Get("Location"))
				return
			}
			assert.Equal(t, FlashError, kind)
			assert.Equal(t, tt.want, msg)
			assert.Equal(t, "/admin/payments", rec.Header().Get("Location"))
		})
	}
}

func TestHandleForm_HTMXSubmissionGetsHxRedirect(t *testing.T) {
	req := batchRequest(url.Values{"class_id": {"c1"}, "title": {"Đợt 1"}, "amount": {"1"}})
	req.Header.Set("Hx-Request", "true")
	rec := runBatchForm(req, FormModeCreate, &batchWrites{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/admin/payments", rec.Header().Get("Hx-Redirect"))
}
