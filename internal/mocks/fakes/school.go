// Package fakes contains hand-written in-memory test doubles for the school API.
// They are lightweight and suitable for handler and service tests without codegen.
package fakes

import (
	"context"
	"sync"

	"github.com/ghugn/chem-class-git/internal/domain/model"
	"github.com/ghugn/chem-class-git/internal/ports"
)

var (
	_ ports.SchoolAPI        = (*scoped)(nil)
	_ ports.SchoolAPIFactory = (*School)(nil)
)

// Call records one invocation on the fake.
type Call struct {
	Method string
	Token  string
	Args   []any
}

// School serves canned data and records every call. Errs, keyed by method name,
// makes that method fail. Writes never change the canned data.
type School struct {
	Classes       []model.Class
	ClassStudents map[string][]model.ClassStudent
	Students      []model.Student
	Exams         map[string][]model.Exam
	Grades        map[string][]model.ExamGrade
	Documents     []model.Document
	Subjects      []model.Subject
	Batches       map[string][]model.TuitionBatch
	Tuitions      map[string][]model.Tuition

	Admin       model.AdminDashboard
	Student     model.StudentDashboard
	MyGrades    []model.StudentGrade
	MyDocuments []model.Document
	MyTuitions  []model.StudentTuition

	Errs map[string]error

	mu    sync.Mutex
	calls []Call
}

// ForToken returns a view of the fake that tags its calls with token.
func (s *School) ForToken(token string) ports.SchoolAPI {
	return &scoped{School: s, token: token}
}

// Calls returns a copy of the recorded calls.
func (s *School) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Called returns the recorded calls of one method.
func (s *School) Called(method string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// scoped carries the token so concurrent views of one fake do not race on it.
type scoped struct {
	*School
	token string
}

func (v *scoped) record(method string, args ...any) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, Call{Method: method, Token: v.token, Args: args})
	return v.Errs[method]
}

func (v *scoped) ListClasses(context.Context) ([]model.Class, error) {
	if err := v.record("ListClasses"); err != nil {
		return nil, err
	}
	return v.School.Classes, nil
}

func (v *scoped) CreateClass(_ context.Context, in model.ClassInput) error {
	return v.record("CreateClass", in)
}

func (v *scoped) UpdateClass(_ context.Context, id string, in model.ClassInput) error {
	return v.record("UpdateClass", id, in)
}

func (v *scoped) DeleteClass(_ context.Context, id string) error {
	return v.record("DeleteClass", id)
}

func (v *scoped) ListClassStudents(_ context.Context, classID string) ([]model.ClassStudent, error) {
	if err := v.record("ListClassStudents", classID); err != nil {
		return nil, err
	}
	return v.ClassStudents[classID], nil
}

func (v *scoped) AddClassStudent(_ context.Context, classID, studentID string) error {
	return v.record("AddClassStudent", classID, studentID)
}

func (v *scoped) ListStudents(context.Context) ([]model.Student, error) {
	if err := v.record("ListStudents"); err != nil {
		return nil, err
	}
	return v.School.Students, nil
}

func (v *scoped) CreateStudent(_ context.Context, in model.StudentInput) error {
	return v.record("CreateStudent", in)
}

func (v *scoped) UpdateStudent(_ context.Context, id string, in model.StudentInput) error {
	return v.record("UpdateStudent", id, in)
}

func (v *scoped) DeleteStudent(_ context.Context, id string) error {
	return v.record("DeleteStudent", id)
}

func (v *scoped) ListClassExams(_ context.Context, classID string) ([]model.Exam, error) {
	if err := v.record("ListClassExams", classID); err != nil {
		return nil, err
	}
	return v.Exams[classID], nil
}

func (v *scoped) CreateExam(_ context.Context, in model.ExamInput) error {
	return v.record("CreateExam", in)
}

func (v *scoped) UpdateExam(_ context.Context, id string, in model.ExamInput) error {
	return v.record("UpdateExam", id, in)
}

func (v *scoped) DeleteExam(_ context.Context, id string) error {
	return v.record("DeleteExam", id)
}

func (v *scoped) ListExamGrades(_ context.Context, examID string) ([]model.ExamGrade, error) {
	if err := v.record("ListExamGrades", examID); err != nil {
		return nil, err
	}
	return v.Grades[examID], nil
}

func (v *scoped) SaveExamGrades(_ context.Context, examID string, grades []model.GradeEntry) error {
	return v.record("SaveExamGrades", examID, grades)
}

func (v *scoped) ListDocuments(context.Context) ([]model.Document, error) {
	if err := v.record("ListDocuments"); err != nil {
		return nil, err
	}
	return v.School.Documents, nil
}

func (v *scoped) CreateDocument(_ context.Context, in model.DocumentInput) error {
	return v.record("CreateDocument", in)
}

func (v *scoped) UpdateDocument(_ context.Context, id string, in model.DocumentInput) error {
	return v.record("UpdateDocument", id, in)
}

func (v *scoped) DeleteDocument(_ context.Context, id string) error {
	return v.record("DeleteDocument", id)
}

func (v *scoped) ListSubjects(context.Context) ([]model.Subject, error) {
	if err := v.record("ListSubjects"); err != nil {
		return nil, err
	}
	return v.School.Subjects, nil
}

func (v *scoped) ListTuitionBatches(_ context.Context, classID string) ([]model.TuitionBatch, error) {
	if err := v.record("ListTuitionBatches", classID); err != nil {
		return nil, err
	}
	return v.Batches[classID], nil
}

func (v *scoped) CreateTuitionBatch(_ context.Context, in model.TuitionBatchInput) error {
	return v.record("CreateTuitionBatch", in)
}

func (v *scoped) DeleteTuitionBatch(_ context.Context, batchID string) error {
	return v.record("DeleteTuitionBatch", batchID)
}

func (v *scoped) ListTuitions(_ context.Context, batchID string) ([]model.Tuition, error) {
	if err := v.record("ListTuitions", batchID); err != nil {
		return nil, err
	}
	return v.School.Tuitions[batchID], nil
}

func (v *scoped) MarkTuitionPaid(_ context.Context, id string) error {
	return v.record("MarkTuitionPaid", id)
}

func (v *scoped) MarkTuitionUnpaid(_ context.Context, id string) error {
	return v.record("MarkTuitionUnpaid", id)
}

func (v *scoped) AdminDashboard(context.Context) (model.AdminDashboard, error) {
	if err := v.record("AdminDashboard"); err != nil {
		return model.AdminDashboard{}, err
	}
	return v.Admin, nil
}

func (v *scoped) StudentDashboard(context.Context) (model.StudentDashboard, error) {
	if err := v.record("StudentDashboard"); err != nil {
		return model.StudentDashboard{}, err
	}
	return v.Student, nil
}

func (v *scoped) StudentGrades(context.Context) ([]model.StudentGrade, error) {
	if err := v.record("StudentGrades"); err != nil {
		return nil, err
	}
	return v.MyGrades, nil
}

func (v *scoped) StudentDocuments(context.Context) ([]model.Document, error) {
	if err := v.record("StudentDocuments"); err != nil {
		return nil, err
	}
	return v.MyDocuments, nil
}

func (v *scoped) StudentTuitions(context.Context) ([]model.StudentTuition, error) {
	if err := v.record("StudentTuitions"); err != nil {
		return nil, err
	}
	return v.MyTuitions, nil
}
