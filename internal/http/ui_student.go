package httpx

import (
	"context"
	"net/http"
)

// StudentGrades lists the signed-in student's exam results.
func (h *UIHandlers) StudentGrades(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Điểm thi", PageTitle: "Kết quả học tập", CurrentPage: PageStudentGrades},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Grades"] = h.School.StudentGrades(ctx, token(r))
			return nil
		},
	})
}

// StudentDocuments lists the student's documents filtered by ?q=, ?class= and ?subject=.
func (h *UIHandlers) StudentDocuments(w http.ResponseWriter, r *http.Request) {
	filter := documentFilter(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Tài liệu", PageTitle: "Tài liệu môn học", CurrentPage: PageStudentDocuments},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Page"] = h.School.StudentDocumentsPage(ctx, token(r), filter)
			return nil
		},
	})
}

// StudentPayments lists the student's tuition lines.
func (h *UIHandlers) StudentPayments(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Học phí", PageTitle: "Học phí", CurrentPage: PageStudentPayments},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Tuitions"] = h.School.StudentTuitions(ctx, token(r))
			return nil
		},
	})
}
