package ports

import (
	"context"

	"github.com/ghugn/chem-class-git/internal/domain/model"
)

// ClassAPI manages classes and their rosters.
type ClassAPI interface {
	ListClasses(ctx context.Context) ([]model.Class, error)
	CreateClass(ctx context.Context, in model.ClassInput) error
	UpdateClass(ctx context.Context, id string, in model.ClassInput) error
	DeleteClass(ctx context.Context, id string) error
	ListClassStudents(ctx context.Context, classID string) ([]model.ClassStudent, error)
	AddClassStudent(ctx context.Context, classID, studentID string) error
}

// StudentAPI manages student accounts.
type StudentAPI interface {
	ListStudents(ctx context.Context) ([]model.Student, error)
	CreateStudent(ctx context.Context, in model.StudentInput) error
	UpdateStudent(ctx context.Context, id string, in model.StudentInput) error
	DeleteStudent(ctx context.Context, id string) error
}

// GradeAPI manages exams and grade sheets.
type GradeAPI interface {
	ListClassExams(ctx context.Context, classID string) ([]model.Exam, error)
	CreateExam(ctx context.Context, in model.ExamInput) error
	UpdateExam(ctx context.Context, id string, in model.ExamInput) error
	DeleteExam(ctx context.Context, id string) error
	ListExamGrades(ctx context.Context, examID string) ([]model.ExamGrade, error)
	SaveExamGrades(ctx context.Context, examID string, grades []model.GradeEntry) error
}

// DocumentAPI manages study materials.
type DocumentAPI interface {
	ListDocuments(ctx context.Context) ([]model.Document, error)
	CreateDocument(ctx context.Context, in model.DocumentInput) error
	UpdateDocument(ctx context.Context, id string, in model.DocumentInput) error
	DeleteDocument(ctx context.Context, id string) error
	ListSubjects(ctx context.Context) ([]model.Subject, error)
}

// TuitionAPI manages tuition batches and payments.
type TuitionAPI interface {
	ListTuitionBatches(ctx context.Context, classID string) ([]model.TuitionBatch, error)
	CreateTuitionBatch(ctx context.Context, in model.TuitionBatchInput) error
	DeleteTuitionBatch(ctx context.Context, batchID string) error
	ListTuitions(ctx context.Context, batchID string) ([]model.Tuition, error)
	MarkTuitionPaid(ctx context.Context, id string) error
	MarkTuitionUnpaid(ctx context.Context, id string) error
}

// PortalAPI covers the read-only endpoints of the student portal and the admin overview.
type PortalAPI interface {
	AdminDashboard(ctx context.Context) (model.AdminDashboard, error)
	StudentDashboard(ctx context.Context) (model.StudentDashboard, error)
	StudentGrades(ctx context.Context) ([]model.StudentGrade, error)
	StudentDocuments(ctx context.Context) ([]model.Document, error)
	StudentTuitions(ctx context.Context) ([]model.StudentTuition, error)
}

// SchoolAPI is the full set of endpoints reachable with a user's token.
type SchoolAPI interface {
	ClassAPI
	StudentAPI
	GradeAPI
	DocumentAPI
	TuitionAPI
	PortalAPI
}

// SchoolAPIFactory returns an API view authorised with the given bearer token.
type SchoolAPIFactory interface {
	ForToken(token string) SchoolAPI
}

// HealthChecker reports whether the upstream API is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}
