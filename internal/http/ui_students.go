package httpx

import (
	"context"
	"net/http"

	"github.com/ghugn/chem-class-git/internal/domain/model"
)

const studentsPath = "/admin/students"

// AdminStudents lists students filtered by ?q= and ?class=. ?edit= opens the
// edit form for a student.
func (h *UIHandlers) AdminStudents(w http.ResponseWriter, r *http.Request) {
	filter := model.StudentFilter{Q: queryValue(r, "q"), ClassID: filterValue(r, "class")}
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Học sinh", PageTitle: "Quản lý học sinh", CurrentPage: PageAdminStudents},
		Fetch: func(ctx context.Context, data map[string]any) error {
			page := h.School.StudentsPage(ctx, token(r), filter)
			data["Page"] = page
			data["DefaultPassword"] = model.DefaultStudentPassword
			if editID := queryValue(r, "edit"); editID != "" {
				for i := range page.Students {
					if page.Students[i].ID.String() == editID {
						data["Edit"] = &page.Students[i]
						break
					}
				}
			}
			return nil
		},
	})
}

// parseNewStudent reads the create form. The email is required here even though
// the edit form has none.
func (h *UIHandlers) parseNewStudent(r *http.Request) (studentForm, map[string]string) {
	form := parseStudentForm(r)
	if form.Email == "" {
		return form, map[string]string{"email": msgFillAllFields}
	}
	return form, h.forms().Struct(form)
}

func parseStudentEdit(r *http.Request) studentForm {
	form := parseStudentForm(r)
	form.Email, form.Password = "", ""
	return form
}

func (h *UIHandlers) studentForms(r *http.Request) FormFuncs[studentForm] {
	api := h.School.API(token(r))
	return FormFuncs[studentForm]{
		CreateFn: func(ctx context.Context, f studentForm) error { return api.CreateStudent(ctx, f.createInput()) },
		UpdateFn: func(ctx context.Context, id string, f studentForm) error {
			return api.UpdateStudent(ctx, id, f.updateInput())
		},
	}
}

// CreateStudent adds a student account. A blank password gets the default one.
func (h *UIHandlers) CreateStudent(w http.ResponseWriter, r *http.Request) {
	HandleForm(h, FormHandlerOpts[studentForm]{
		W: w, R: r, Mode: FormModeCreate,
		Parser:     h.parseNewStudent,
		Service:    h.studentForms(r),
		SuccessURL: studentsPath,
		Success:    msgCreated,
		Fallback:   msgGenericError,
	})
}

// UpdateStudent saves a student's name and classes. Email and password are not editable here.
func (h *UIHandlers) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	HandleForm(h, FormHandlerOpts[studentForm]{
		W: w, R: r, Mode: FormModeEdit,
		Parser:     validated(h.forms(), parseStudentEdit),
		Service:    h.studentForms(r),
		SuccessURL: studentsPath,
		ErrorURL:   withQuery(studentsPath, "edit", r.PathValue("id")),
		Success:    msgSaved,
		Fallback:   msgGenericError,
	})
}

// DeleteStudent removes a student and everything attached to the account.
func (h *UIHandlers) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	err := h.School.API(token(r)).DeleteStudent(r.Context(), r.PathValue("id"))
	h.finishWrite(w, r, studentsPath, err, msgDeleted, "Không thể xóa học sinh này")
}
