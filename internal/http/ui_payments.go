package httpx

import (
	"context"
	"net/http"
)

const paymentsPath = "/admin/payments"

// AdminPayments shows the tuition batches of ?class= and the per-student status
// of ?batch=, defaulting to the class's first batch.
func (h *UIHandlers) AdminPayments(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Học phí", PageTitle: "Quản lý học phí", CurrentPage: PageAdminPayments},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Page"] = h.School.PaymentsPage(ctx, token(r), queryValue(r, "class"), queryValue(r, "batch"))
			return nil
		},
	})
}

// CreateTuitionBatch charges every member of a class.
func (h *UIHandlers) CreateTuitionBatch(w http.ResponseWriter, r *http.Request) {
	api := h.School.API(token(r))
	HandleForm(h, FormHandlerOpts[batchForm]{
		W: w, R: r, Mode: FormModeCreate,
		Parser: validated(h.forms(), parseBatchForm),
		Service: FormFuncs[batchForm]{
			CreateFn: func(ctx context.Context, f batchForm) error { return api.CreateTuitionBatch(ctx, f.input()) },
		},
		SuccessURL: withQuery(paymentsPath, "class", formValue(r, "class_id")),
		Success:    "Tạo đợt thu thành công",
		Fallback:   "Lỗi khi tạo đợt thu",
	})
}

// DeleteTuitionBatch removes a batch and every tuition line in it, paid or not.
func (h *UIHandlers) DeleteTuitionBatch(w http.ResponseWriter, r *http.Request) {
	back := withQuery(paymentsPath, "class", formValue(r, "return_class"))
	err := h.School.API(token(r)).DeleteTuitionBatch(r.Context(), r.PathValue("id"))
	h.finishWrite(w, r, back, err, "Đã xóa đợt thu thành công", "Lỗi khi xóa đợt thu")
}

func paymentsBack(r *http.Request) string {
	return withQuery(paymentsPath, "class", formValue(r, "return_class"), "batch", formValue(r, "return_batch"))
}

// MarkTuitionPaid records a student's payment.
func (h *UIHandlers) MarkTuitionPaid(w http.ResponseWriter, r *http.Request) {
	err := h.School.API(token(r)).MarkTuitionPaid(r.Context(), r.PathValue("id"))
	h.finishWrite(w, r, paymentsBack(r), err, msgSaved, "Lỗi cập nhật")
}

// MarkTuitionUnpaid reverts a payment.
func (h *UIHandlers) MarkTuitionUnpaid(w http.ResponseWriter, r *http.Request) {
	err := h.School.API(token(r)).MarkTuitionUnpaid(r.Context(), r.PathValue("id"))
	h.finishWrite(w, r, paymentsBack(r), err, msgSaved, "Lỗi cập nhật")
}
