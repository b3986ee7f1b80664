package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ghugn/chem-class-git/internal/domain/model"
	"github.com/ghugn/chem-class-git/internal/ports"
)

// Submitted forms. Field names follow the `form` tag, which is also the key of
// validation errors shown next to each input.

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	FullName string `form:"full_name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Phone    string `form:"phone"`
	ClassID  string `form:"class_id" validate:"required" vmsg:"Vui lòng chọn lớp"`
	Password string `form:"password" validate:"required,min=6"`
}

type profileForm struct {
	FullName        string `form:"full_name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Phone           string `form:"phone"`
	CurrentPassword string `form:"current_password" validate:"required"`
	NewPassword     string `form:"new_password" validate:"omitempty,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=NewPassword" vmsg:"Mật khẩu mới không khớp"`
}

type classForm struct {
	Name  string `form:"name" validate:"notblank"`
	Fee   string `form:"fee" validate:"omitempty,numeric,nonnegative"`
	Day   string `form:"day" validate:"required"`
	Start string `form:"start_time" validate:"required"`
	End   string `form:"end_time" validate:"required"`
}

type addStudentsForm struct {
	StudentIDs []string `form:"student_ids" validate:"min=1" vmsg:"Vui lòng chọn ít nhất 1 học sinh."`
}

type studentForm struct {
	FullName string   `form:"full_name" validate:"required"`
	Email    string   `form:"email" validate:"omitempty,email"`
	Password string   `form:"password" validate:"omitempty,min=6"`
	ClassIDs []string `form:"class_ids" validate:"min=1" vmsg:"Vui lòng chọn ít nhất 1 lớp."`
}

type examForm struct {
	Title    string   `form:"title" validate:"required"`
	Date     string   `form:"date" validate:"required,datetime=2006-01-02"`
	MaxScore string   `form:"max_score" validate:"required,numeric,nonnegative"`
	ClassIDs []string `form:"class_ids" validate:"min=1" vmsg:"Vui lòng chọn ít nhất 1 lớp."`
}

type documentForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	ClassID     string `form:"class_id" validate:"required" vmsg:"Vui lòng chọn lớp"`
	SubjectID   string `form:"subject_id"`
}

type batchForm struct {
	ClassID string `form:"class_id" validate:"required" vmsg:"Vui lòng chọn lớp trước"`
	Title   string `form:"title" validate:"required"`
	Amount  string `form:"amount" validate:"required,numeric,nonnegative"`
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formValues returns the non-empty values of a repeated field.
func formValues(r *http.Request, key string) []string {
	if r.Form == nil {
		_ = r.ParseForm()
	}
	var out []string
	for _, v := range r.Form[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func toIDs(raw []string) []model.ID {
	ids := make([]model.ID, 0, len(raw))
	for _, s := range raw {
		ids = append(ids, model.ID(s))
	}
	return ids
}

func parseAmount(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseLoginForm(r *http.Request) loginForm {
	return loginForm{Email: formValue(r, "email"), Password: r.FormValue("password")}
}

func (f loginForm) credentials() ports.Credentials {
	return ports.Credentials{Email: f.Email, Password: f.Password}
}

func parseRegisterForm(r *http.Request) registerForm {
	return registerForm{
		FullName: formValue(r, "full_name"),
		Email:    formValue(r, "email"),
		Phone:    formValue(r, "phone"),
		ClassID:  formValue(r, "class_id"),
		Password: r.FormValue("password"),
	}
}

func (f registerForm) registration() ports.Registration {
	return ports.Registration{
		Email:    f.Email,
		Password: f.Password,
		FullName: f.FullName,
		Phone:    f.Phone,
		ClassID:  f.ClassID,
	}
}

func parseProfileForm(r *http.Request) profileForm {
	return profileForm{
		FullName:        formValue(r, "full_name"),
		Email:           formValue(r, "email"),
		Phone:           formValue(r, "phone"),
		CurrentPassword: r.FormValue("current_password"),
		NewPassword:     r.FormValue("new_password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
}

func (f profileForm) update() ports.ProfileUpdate {
	return ports.ProfileUpdate{
		FullName:        f.FullName,
		Email:           f.Email,
		Phone:           f.Phone,
		CurrentPassword: f.CurrentPassword,
		NewPassword:     f.NewPassword,
	}
}

func parseClassForm(r *http.Request) classForm {
	return classForm{
		Name:  formValue(r, "name"),
		Fee:   formValue(r, "fee"),
		Day:   formValue(r, "day"),
		Start: formValue(r, "start_time"),
		End:   formValue(r, "end_time"),
	}
}

func (f classForm) input() model.ClassInput {
	return model.ClassInput{
		Name:     f.Name,
		Fee:      parseAmount(f.Fee),
		Schedule: model.Schedule{Day: f.Day, Start: f.Start, End: f.End}.String(),
	}
}

func parseStudentForm(r *http.Request) studentForm {
	return studentForm{
		FullName: formValue(r, "full_name"),
		Email:    formValue(r, "email"),
		Password: r.FormValue("password"),
		ClassIDs: formValues(r, "class_ids"),
	}
}

// createInput fills the default password when none was typed.
func (f studentForm) createInput() model.StudentInput {
	pw := f.Password
	if pw == "" {
		pw = model.DefaultStudentPassword
	}
	return model.StudentInput{FullName: f.FullName, Email: f.Email, Password: pw, ClassIDs: toIDs(f.ClassIDs)}
}

func (f studentForm) updateInput() model.StudentInput {
	return model.StudentInput{FullName: f.FullName, ClassIDs: toIDs(f.ClassIDs)}
}

func parseExamForm(r *http.Request) examForm {
	return examForm{
		Title:    formValue(r, "title"),
		Date:     formValue(r, "date"),
		MaxScore: formValue(r, "max_score"),
		ClassIDs: formValues(r, "class_ids"),
	}
}

func (f examForm) input() model.ExamInput {
	return model.ExamInput{Title: f.Title, Date: f.Date, MaxScore: parseAmount(f.MaxScore), ClassIDs: toIDs(f.ClassIDs)}
}

func parseBatchForm(r *http.Request) batchForm {
	return batchForm{ClassID: formValue(r, "class_id"), Title: formValue(r, "title"), Amount: formValue(r, "amount")}
}

func (f batchForm) input() model.TuitionBatchInput {
	return model.TuitionBatchInput{Title: f.Title, ClassID: model.ID(f.ClassID), Amount: parseAmount(f.Amount)}
}
