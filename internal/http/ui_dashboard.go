package httpx

import (
	"context"
	"net/http"
)

// AdminDashboard renders the admin overview counts.
func (h *UIHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Tổng quan", PageTitle: "Tổng quan", CurrentPage: PageAdminDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Stats"] = h.School.AdminDashboard(ctx, token(r))
			return nil
		},
	})
}

// AdminSchedule renders the weekly timetable of every class.
func (h *UIHandlers) AdminSchedule(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Lịch dạy", PageTitle: "Lịch dạy", CurrentPage: PageAdminSchedule},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Days"] = h.School.Schedule(ctx, token(r))
			return nil
		},
	})
}

// StudentDashboard renders the student's classes, classmates and fee summary.
func (h *UIHandlers) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Tổng quan", PageTitle: "Tổng quan", CurrentPage: PageStudentDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Dashboard"] = h.School.StudentDashboard(ctx, token(r))
			data["Greeting"] = sessionUser(r).DisplayName()
			return nil
		},
	})
}
