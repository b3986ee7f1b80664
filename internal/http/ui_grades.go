package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/ghugn/chem-class-git/internal/domain/model"
)

const gradesPath = "/admin/grades"

// AdminGrades lists the exams of ?class= (default: the first class) and, with
// ?exam=, the exam's grade sheet. ?edit= opens the edit form for an exam.
func (h *UIHandlers) AdminGrades(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Điểm thi", PageTitle: "Quản lý điểm thi", CurrentPage: PageAdminGrades},
		Fetch: func(ctx context.Context, data map[string]any) error {
			page := h.School.GradesPage(ctx, token(r), queryValue(r, "class"), queryValue(r, "exam"))
			data["Page"] = page
			data["DefaultMaxScore"] = model.DefaultMaxScore
			data["Today"] = time.Now().Format("2006-01-02")
			if editID := queryValue(r, "edit"); editID != "" {
				for i := range page.Exams {
					if page.Exams[i].ID.String() == editID {
						data["Edit"] = &page.Exams[i]
						break
					}
				}
			}
			return nil
		},
	})
}

func gradesBack(r *http.Request) string {
	return withQuery(gradesPath, "class", formValue(r, "return_class"), "exam", formValue(r, "return_exam"))
}

func (h *UIHandlers) examForms(r *http.Request) FormFuncs[examForm] {
	api := h.School.API(token(r))
	return FormFuncs[examForm]{
		CreateFn: func(ctx context.Context, f examForm) error { return api.CreateExam(ctx, f.input()) },
		UpdateFn: func(ctx context.Context, id string, f examForm) error { return api.UpdateExam(ctx, id, f.input()) },
	}
}

func (h *UIHandlers) handleExamForm(w http.ResponseWriter, r *http.Request, mode FormMode, success string) {
	back := gradesBack(r)
	HandleForm(h, FormHandlerOpts[examForm]{
		W: w, R: r, Mode: mode,
		Parser:     validated(h.forms(), parseExamForm),
		Service:    h.examForms(r),
		SuccessURL: back,
		Success:    success,
		Fallback:   "Có lỗi xảy ra khi lưu buổi thi",
	})
}

// CreateExam adds an exam sat by the picked classes.
func (h *UIHandlers) CreateExam(w http.ResponseWriter, r *http.Request) {
	h.handleExamForm(w, r, FormModeCreate, msgCreated)
}

// UpdateExam saves an exam's details.
func (h *UIHandlers) UpdateExam(w http.ResponseWriter, r *http.Request) {
	h.handleExamForm(w, r, FormModeEdit, msgSaved)
}

// DeleteExam removes an exam together with all of its grades.
func (h *UIHandlers) DeleteExam(w http.ResponseWriter, r *http.Request) {
	back := withQuery(gradesPath, "class", formValue(r, "return_class"))
	err := h.School.API(token(r)).DeleteExam(r.Context(), r.PathValue("id"))
	h.finishWrite(w, r, back, err, msgDeleted, "Lỗi khi xóa buổi thi")
}

// parseGradeSheet reads one score_<id> and comment_<id> pair per student_ids entry.
// An empty score clears the grade.
func parseGradeSheet(r *http.Request) ([]model.GradeEntry, map[string]string) {
	ids := formValues(r, "student_ids")
	entries := make([]model.GradeEntry, 0, len(ids))
	var errs map[string]string
	for _, id := range ids {
		score, err := model.ParseScore(r.FormValue("score_" + id))
		if err != nil {
			if errs == nil {
				errs = map[string]string{}
			}
			errs["score_"+id] = "Điểm không hợp lệ"
			continue
		}
		entries = append(entries, model.GradeEntry{
			StudentID: model.ID(id),
			Score:     score,
			Comment:   formValue(r, "comment_"+id),
		})
	}
	return entries, errs
}

// SaveGrades submits the whole grade sheet of an exam.
func (h *UIHandlers) SaveGrades(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("id")
	back := withQuery(gradesPath, "class", formValue(r, "return_class"), "exam", examID)
	entries, errs := parseGradeSheet(r)
	if errs != nil {
		rejectForm(w, r, back, errs)
		return
	}
	err := h.School.API(token(r)).SaveExamGrades(r.Context(), examID, entries)
	h.finishWrite(w, r, back, err, "Đã lưu điểm thành công!", "Lỗi khi lưu điểm")
}
