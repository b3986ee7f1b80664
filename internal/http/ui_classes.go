package httpx

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ghugn/chem-class-git/internal/domain/model"
	"github.com/ghugn/chem-class-git/internal/service"
)

const classesPath = "/admin/classes"

// ClassEditor prefills the create/edit class form.
type ClassEditor struct {
	ID       model.ID
	Name     string
	Fee      float64
	Schedule model.Schedule
}

func newClassEditor(page service.ClassesPage, editID string) *ClassEditor {
	if editID == "" {
		return nil
	}
	for _, c := range page.Classes {
		if c.ID.String() == editID {
			return &ClassEditor{ID: c.ID, Name: c.Name, Fee: c.Fee.Float64(), Schedule: model.ScheduleOrDefault(c.Schedule)}
		}
	}
	return nil
}

// AdminClasses lists classes and, with ?class=, the selected class's roster.
// ?edit= opens the edit form for a class.
func (h *UIHandlers) AdminClasses(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Quản lý lớp", PageTitle: "Quản lý lớp học", CurrentPage: PageAdminClasses},
		Fetch: func(ctx context.Context, data map[string]any) error {
			page := h.School.ClassesPage(ctx, token(r), queryValue(r, "class"))
			data["Page"] = page
			data["Edit"] = newClassEditor(page, queryValue(r, "edit"))
			data["NewSchedule"] = model.ScheduleOrDefault("")
			data["Weekdays"] = model.Weekdays
			return nil
		},
	})
}

func (h *UIHandlers) classForms(r *http.Request) FormFuncs[classForm] {
	api := h.School.API(token(r))
	return FormFuncs[classForm]{
		CreateFn: func(ctx context.Context, f classForm) error { return api.CreateClass(ctx, f.input()) },
		UpdateFn: func(ctx context.Context, id string, f classForm) error { return api.UpdateClass(ctx, id, f.input()) },
	}
}

// CreateClass adds a class.
func (h *UIHandlers) CreateClass(w http.ResponseWriter, r *http.Request) {
	HandleForm(h, FormHandlerOpts[classForm]{
		W: w, R: r, Mode: FormModeCreate,
		Parser:     validated(h.forms(), parseClassForm),
		Service:    h.classForms(r),
		SuccessURL: classesPath,
		Success:    msgCreated,
		Fallback:   msgGenericError,
	})
}

// UpdateClass saves the name, fee and schedule of a class.
func (h *UIHandlers) UpdateClass(w http.ResponseWriter, r *http.Request) {
	HandleForm(h, FormHandlerOpts[classForm]{
		W: w, R: r, Mode: FormModeEdit,
		Parser:     validated(h.forms(), parseClassForm),
		Service:    h.classForms(r),
		SuccessURL: classesPath,
		ErrorURL:   withQuery(classesPath, "edit", r.PathValue("id")),
		Success:    msgSaved,
		Fallback:   msgGenericError,
	})
}

// DeleteClass removes a class.
func (h *UIHandlers) DeleteClass(w http.ResponseWriter, r *http.Request) {
	err := h.School.API(token(r)).DeleteClass(r.Context(), r.PathValue("id"))
	h.finishWrite(w, r, classesPath, err, msgDeleted, "Không thể xóa lớp học này")
}

// AddClassStudents enrolls every picked student into the class, one call each.
// It stops at the first failure; students added before it stay enrolled.
func (h *UIHandlers) AddClassStudents(w http.ResponseWriter, r *http.Request) {
	classID := r.PathValue("id")
	back := withQuery(classesPath, "class", classID)
	form := addStudentsForm{StudentIDs: formValues(r, "student_ids")}
	if errs := h.forms().Struct(form); errs != nil {
		rejectForm(w, r, back, errs)
		return
	}

	api := h.School.API(token(r))
	var err error
	for _, sid := range form.StudentIDs {
		if err = api.AddClassStudent(r.Context(), classID, sid); err != nil {
			break
		}
	}
	h.finishWrite(w, r, back, err,
		fmt.Sprintf("Đã thêm %d học sinh vào lớp!", len(form.StudentIDs)),
		"Có lỗi xảy ra khi thêm học sinh")
}
