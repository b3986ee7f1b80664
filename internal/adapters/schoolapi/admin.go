package schoolapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ghugn/chem-class-git/internal/domain/model"
)

// --- Classes ---

func (s *Scoped) ListClasses(ctx context.Context) ([]model.Class, error) {
	var out []model.Class
	if err := s.get(ctx, "classes.list", "/admin/classes", &out); err != nil {
		return nil, fmt.Errorf("schoolapi.ListClasses: %w", err)
	}
	return out, nil
}

func (s *Scoped) CreateClass(ctx context.Context, in model.ClassInput) error {
	if err := s.send(ctx, "classes.create", http.MethodPost, "/admin/classes", in); err != nil {
		return fmt.Errorf("schoolapi.CreateClass: %w", err)
	}
	return nil
}

func (s *Scoped) UpdateClass(ctx context.Context, id string, in model.ClassInput) error {
	if err := s.send(ctx, "classes.update", http.MethodPut, "/admin/classes/"+escape(id), in); err != nil {
		return fmt.Errorf("schoolapi.UpdateClass: %w", err)
	}
	return nil
}

func (s *Scoped) DeleteClass(ctx context.Context, id string) error {
	if err := s.send(ctx, "classes.delete", http.MethodDelete, "/admin/classes/"+escape(id), nil); err != nil {
		return fmt.Errorf("schoolapi.DeleteClass: %w", err)
	}
	return nil
}

func (s *Scoped) ListClassStudents(ctx context.Context, classID string) ([]model.ClassStudent, error) {
	var out []model.ClassStudent
	if err := s.get(ctx, "classes.students", "/admin/classes/"+escape(classID)+"/students", &out); err != nil {
		return nil, fmt.Errorf("schoolapi.ListClassStudents: %w", err)
	}
	return out, nil
}

func (s *Scoped) AddClassStudent(ctx context.Context, classID, studentID string) error {
	body := map[string]string{"student_id": studentID}
	path := "/admin/classes/" + escape(classID) + "/students"
	if err := s.send(ctx, "classes.add_student", http.MethodPost, path, body); err != nil {
		return fmt.Errorf("schoolapi.AddClassStudent: %w", err)
	}
	return nil
}

// --- Students ---

func (s *Scoped) ListStudents(ctx context.Context) ([]model.Student, error) {
	var out []model.Student
	if err := s.get(ctx, "students.list", "/admin/students", &out); err != nil {
		return nil, fmt.Errorf("schoolapi.ListStudents: %w", err)
	}
	return out, nil
}

func (s *Scoped) CreateStudent(ctx context.Context, in model.StudentInput) error {
	if err := s.send(ctx, "students.create", http.MethodPost, "/admin/students", in); err != nil {
		return fmt.Errorf("schoolapi.CreateStudent: %w", err)
	}
	return nil
}

// UpdateStudent only sends the name and class ids; email and password are immutable here.
func (s *Scoped) UpdateStudent(ctx context.Context, id string, in model.StudentInput) error {
	body := model.StudentInput{FullName: in.FullName, ClassIDs: in.ClassIDs}
	if err := s.send(ctx, "students.update", http.MethodPut, "/admin/students/"+escape(id), body); err != nil {
		return fmt.Errorf("schoolapi.UpdateStudent: %w", err)
	}
	return nil
}

func (s *Scoped) DeleteStudent(ctx context.Context, id string) error {
	if err := s.send(ctx, "students.delete", http.MethodDelete, "/admin/students/"+escape(id), nil); err != nil {
		return fmt.Errorf("schoolapi.DeleteStudent: %w", err)
	}
	return nil
}

// --- Grades ---

func (s *Scoped) ListClassExams(ctx context.Context, classID string) ([]model.Exam, error) {
	var out []model.Exam
	if err := s.get(ctx, "grades.exams", "/admin/grades/classes/"+escape(classID)+"/exams", &out); err != nil {
		return nil, fmt.Errorf("schoolapi.ListClassExams: %w", err)
	}
	return out, nil
}

func (s *Scoped) CreateExam(ctx context.Context, in model.ExamInput) error {
	if err := s.send(ctx, "grades.create_exam", http.MethodPost, "/admin/grades/exams", in); err != nil {
		return fmt.Errorf("schoolapi.CreateExam: %w", err)
	}
	return nil
}

func (s *Scoped) UpdateExam(ctx context.Context, id string, in model.ExamInput) error {
	if err := s.send(ctx, "grades.update_exam", http.MethodPut, "/admin/grades/exams/"+escape(id), in); err != nil {
		return fmt.Errorf("schoolapi.UpdateExam: %w", err)
	}
	return nil
}

func (s *Scoped) DeleteExam(ctx context.Context, id string) error {
	if err := s.send(ctx, "grades.delete_exam", http.MethodDelete, "/admin/grades/exams/"+escape(id), nil); err != nil {
		return fmt.Errorf("schoolapi.DeleteExam: %w", err)
	}
	return nil
}

func (s *Scoped) ListExamGrades(ctx context.Context, examID string) ([]model.ExamGrade, error) {
	var out []model.ExamGrade
	if err := s.get(ctx, "grades.list", "/admin/grades/exams/"+escape(examID)+"/grades", &out); err != nil {
		return nil, fmt.Errorf("schoolapi.ListExamGrades: %w", err)
	}
	return out, nil
}

func (s *Scoped) SaveExamGrades(ctx context.Context, examID string, grades []model.GradeEntry) error {
	body := struct {
		Grades []model.GradeEntry `json:"grades"`
	}{Grades: grades}
	path := "/admin/grades/exams/" + escape(examID) + "/grades"
	if err := s.send(ctx, "grades.save", http.MethodPost, path, body); err != nil {
		return fmt.Errorf("schoolapi.SaveExamGrades: %w", err)
	}
	return nil
}

// --- Documents ---

func (s *Scoped) ListDocuments(ctx context.Context) ([]model.Document, error) {
	var out []model.Document
	if err := s.get(ctx, "documents.list", "/admin/documents", &out); err != nil {
		return nil, fmt.Errorf("schoolapi.ListDocuments: %w", err)
	}
	return out, nil
}

func (s *Scoped) CreateDocument(ctx context.Context, in model.DocumentInput) error {
	form := documentForm(in)
	if err := s.do(ctx, call{op: "documents.create", method: http.MethodPost, path: "/admin/documents", form: form}); err != nil {
		return fmt.Errorf("schoolapi.CreateDocument: %w", err)
	}
	return nil
}

func (s *Scoped) UpdateDocument(ctx context.Context, id string, in model.DocumentInput) error {
	form := documentForm(in)
	path := "/admin/documents/" + escape(id)
	if err := s.do(ctx, call{op: "documents.update", method: http.MethodPut, path: path, form: form}); err != nil {
		return fmt.Errorf("schoolapi.UpdateDocument: %w", err)
	}
	return nil
}

func (s *Scoped) DeleteDocument(ctx context.Context, id string) error {
	if err := s.send(ctx, "documents.delete", http.MethodDelete, "/admin/documents/"+escape(id), nil); err != nil {
		return fmt.Errorf("schoolapi.DeleteDocument: %w", err)
	}
	return nil
}

func (s *Scoped) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	var out []model.Subject
	if err := s.get(ctx, "subjects.list", "/subjects", &out); err != nil {
		return nil, fmt.Errorf("schoolapi.ListSubjects: %w", err)
	}
	return out, nil
}

// documentForm builds the multipart fields. subject_id and file are only sent when present.
func documentForm(in model.DocumentInput) *multipartForm {
	form := &multipartForm{fields: map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"class_id":    in.ClassID,
	}}
	if in.SubjectID != "" {
		form.fields["subject_id"] = in.SubjectID
	}
	if in.File != nil {
		form.file = &fileField{
			name:        "file",
			filename:    in.File.Filename,
			contentType: in.File.ContentType,
			data:        in.File.Data,
		}
	}
	return form
}

// --- Tuition ---

func (s *Scoped) ListTuitionBatches(ctx context.Context, classID string) ([]model.TuitionBatch, error) {
	var out []model.TuitionBatch
	if err := s.get(ctx, "tuition.batches", "/admin/tuition-batches/"+escape(classID), &out); err != nil {
		return nil, fmt.Errorf("schoolapi.ListTuitionBatches: %w", err)
	}
	return out, nil
}

func (s *Scoped) CreateTuitionBatch(ctx context.Context, in model.TuitionBatchInput) error {
	if err := s.send(ctx, "tuition.create_batch", http.MethodPost, "/admin/tuition-batches", in); err != nil {
		return fmt.Errorf("schoolapi.CreateTuitionBatch: %w", err)
	}
	return nil
}

func (s *Scoped) DeleteTuitionBatch(ctx context.Context, batchID string) error {
	path := "/admin/tuition-batches/" + escape(batchID)
	if err := s.send(ctx, "tuition.delete_batch", http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("schoolapi.DeleteTuitionBatch: %w", err)
	}
	return nil
}

func (s *Scoped) ListTuitions(ctx context.Context, batchID string) ([]model.Tuition, error) {
	var out []model.Tuition
	if err := s.get(ctx, "tuition.list", "/admin/tuitions/"+escape(batchID), &out); err != nil {
		return nil, fmt.Errorf("schoolapi.ListTuitions: %w", err)
	}
	return out, nil
}

func (s *Scoped) MarkTuitionPaid(ctx context.Context, id string) error {
	if err := s.send(ctx, "tuition.pay", http.MethodPut, "/admin/tuitions/"+escape(id)+"/pay", nil); err != nil {
		return fmt.Errorf("schoolapi.MarkTuitionPaid: %w", err)
	}
	return nil
}

func (s *Scoped) MarkTuitionUnpaid(ctx context.Context, id string) error {
	if err := s.send(ctx, "tuition.unpay", http.MethodPut, "/admin/tuitions/"+escape(id)+"/unpay", nil); err != nil {
		return fmt.Errorf("schoolapi.MarkTuitionUnpaid: %w", err)
	}
	return nil
}
