package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ghugn/chem-class-git/internal/domain/model"
	"github.com/ghugn/chem-class-git/internal/ports"
)

// SchoolServiceOptions groups dependencies for SchoolService.
type SchoolServiceOptions struct {
	API    ports.SchoolAPIFactory
	Logger *slog.Logger
}

// SchoolService assembles the data each page shows. Reads that fail are logged and
// degrade to empty data, so a page always renders.
type SchoolService struct {
	api    ports.SchoolAPIFactory
	logger *slog.Logger
}

// NewSchoolService constructs a new SchoolService.
func NewSchoolService(opts SchoolServiceOptions) *SchoolService {
	if opts.API == nil {
		panic("service: SchoolService requires an API factory")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SchoolService{api: opts.API, logger: logger.With("component", "school_service")}
}

// API returns the API view for token. Writes go straight through it.
func (s *SchoolService) API(token string) ports.SchoolAPI {
	return s.api.ForToken(token)
}

// degrade logs a failed read and reports whether the result can be used.
func (s *SchoolService) degrade(ctx context.Context, what string, err error) bool {
	if err == nil {
		return true
	}
	s.logger.WarnContext(ctx, "page read failed", "read", what, "error", err)
	return false
}

// fetch runs a read into dst; on failure dst keeps its zero value.
func fetch[T any](ctx context.Context, s *SchoolService, what string, dst *T, read func(context.Context) (T, error)) {
	v, err := read(ctx)
	if s.degrade(ctx, what, err) {
		*dst = v
	}
}

// AdminDashboard loads the admin overview counts.
func (s *SchoolService) AdminDashboard(ctx context.Context, token string) model.AdminDashboard {
	var out model.AdminDashboard
	fetch(ctx, s, "admin dashboard", &out, s.API(token).AdminDashboard)
	return out
}

// ClassesPage is the class management screen.
type ClassesPage struct {
	Classes    []model.Class
	Selected   *model.Class
	Roster     []model.ClassStudent
	Candidates []model.Student
}

// ClassesPage loads all classes and, when a class is selected, its roster and
// the students not yet in it.
func (s *SchoolService) ClassesPage(ctx context.Context, token, selectedID string) ClassesPage {
	api := s.API(token)
	var page ClassesPage
	fetch(ctx, s, "classes", &page.Classes, api.ListClasses)

	if selectedID == "" {
		return page
	}
	for i := range page.Classes {
		if page.Classes[i].ID.String() == selectedID {
			page.Selected = &page.Classes[i]
			break
		}
	}
	if page.Selected == nil {
		return page
	}

	var students []model.Student
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetch(gctx, s, "class roster", &page.Roster, func(c context.Context) ([]model.ClassStudent, error) {
			return api.ListClassStudents(c, selectedID)
		})
		return nil
	})
	g.Go(func() error {
		fetch(gctx, s, "students", &students, api.ListStudents)
		return nil
	})
	_ = g.Wait()

	page.Candidates = model.ExcludeMembers(students, page.Roster)
	return page
}

// StudentsPage is the student management screen.
type StudentsPage struct {
	Students []model.Student
	Total    int
	Classes  []model.Class
	Filter   model.StudentFilter
}

// StudentsPage loads students and classes in parallel and applies filter.
func (s *SchoolService) StudentsPage(ctx context.Context, token string, filter model.StudentFilter) StudentsPage {
	api := s.API(token)
	var (
		students []model.Student
		page     = StudentsPage{Filter: filter}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetch(gctx, s, "students", &students, api.ListStudents)
		return nil
	})
	g.Go(func() error {
		fetch(gctx, s, "classes", &page.Classes, api.ListClasses)
		return nil
	})
	_ = g.Wait()

	page.Total = len(students)
	page.Students = filter.Apply(students)
	return page
}

// GradesPage is the exam and grade sheet screen.
type GradesPage struct {
	Classes []model.Class
	ClassID string
	Exams   []model.Exam
	Exam    *model.Exam
	Grades  []model.ExamGrade
}

// GradesPage loads classes, defaulting the selection to the first class, then the
// class's exams and, when an exam is selected, its grade sheet.
func (s *SchoolService) GradesPage(ctx context.Context, token, classID, examID string) GradesPage {
	api := s.API(token)
	page := GradesPage{ClassID: classID}
	fetch(ctx, s, "classes", &page.Classes, api.ListClasses)
	if page.ClassID == "" && len(page.Classes) > 0 {
		page.ClassID = page.Classes[0].ID.String()
	}
	if page.ClassID == "" {
		return page
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetch(gctx, s, "exams", &page.Exams, func(c context.Context) ([]model.Exam, error) {
			return api.ListClassExams(c, page.ClassID)
		})
		return nil
	})
	if examID != "" {
		g.Go(func() error {
			fetch(gctx, s, "exam grades", &page.Grades, func(c context.Context) ([]model.ExamGrade, error) {
				return api.ListExamGrades(c, examID)
			})
			return nil
		})
	}
	_ = g.Wait()

	for i := range page.Exams {
		if page.Exams[i].ID.String() == examID {
			page.Exam = &page.Exams[i]
			break
		}
	}
	if page.Exam == nil {
		page.Grades = nil
	}
	return page
}

// DocumentsPage is the admin document library.
type DocumentsPage struct {
	Documents []model.Document
	Total     int
	Classes   []model.Class
	Subjects  []model.Subject
	Filter    model.DocumentFilter
}

// DocumentsPage loads documents, classes and subjects in parallel and applies filter.
func (s *SchoolService) DocumentsPage(ctx context.Context, token string, filter model.DocumentFilter) DocumentsPage {
	api := s.API(token)
	var (
		docs []model.Document
		page = DocumentsPage{Filter: filter}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetch(gctx, s, "documents", &docs, api.ListDocuments)
		return nil
	})
	g.Go(func() error {
		fetch(gctx, s, "classes", &page.Classes, api.ListClasses)
		return nil
	})
	g.Go(func() error {
		fetch(gctx, s, "subjects", &page.Subjects, api.ListSubjects)
		return nil
	})
	_ = g.Wait()

	page.Total = len(docs)
	page.Documents = filter.Apply(docs)
	return page
}

// PaymentsPage is the tuition management screen.
type PaymentsPage struct {
	Classes  []model.Class
	ClassID  string
	Batches  []model.TuitionBatch
	Batch    *model.TuitionBatch
	Tuitions []model.Tuition
	Summary  model.TuitionSummary
}

// PaymentsPage loads classes and, once a class is chosen, its batches. The
// requested batch, or the first one, is selected and its tuitions summarised.
func (s *SchoolService) PaymentsPage(ctx context.Context, token, classID, batchID string) PaymentsPage {
	api := s.API(token)
	page := PaymentsPage{ClassID: classID}
	fetch(ctx, s, "classes", &page.Classes, api.ListClasses)
	if classID == "" {
		return page
	}

	fetch(ctx, s, "tuition batches", &page.Batches, func(c context.Context) ([]model.TuitionBatch, error) {
		return api.ListTuitionBatches(c, classID)
	})
	page.Batch = model.FindBatch(page.Batches, batchID)
	if page.Batch == nil {
		return page
	}

	fetch(ctx, s, "tuitions", &page.Tuitions, func(c context.Context) ([]model.Tuition, error) {
		return api.ListTuitions(c, page.Batch.ID.String())
	})
	page.Summary = model.SummarizeTuitions(page.Batch, page.Tuitions)
	return page
}

// Schedule groups every class by weekday.
func (s *SchoolService) Schedule(ctx context.Context, token string) []model.DaySchedule {
	var classes []model.Class
	fetch(ctx, s, "classes", &classes, s.API(token).ListClasses)
	return model.GroupByWeekday(classes)
}

// StudentDashboard loads the signed-in student's overview.
func (s *SchoolService) StudentDashboard(ctx context.Context, token string) model.StudentDashboard {
	var out model.StudentDashboard
	fetch(ctx, s, "student dashboard", &out, s.API(token).StudentDashboard)
	return out
}

// StudentGrades loads the signed-in student's results.
func (s *SchoolService) StudentGrades(ctx context.Context, token string) []model.StudentGrade {
	var out []model.StudentGrade
	fetch(ctx, s, "student grades", &out, s.API(token).StudentGrades)
	return out
}

// StudentDocumentsPage is the student's document library.
type StudentDocumentsPage struct {
	Documents []model.Document
	Total     int
	Classes   []model.Ref
	Subjects  []model.Subject
	Filter    model.DocumentFilter
}

// StudentDocumentsPage loads the student's documents and the subject list in
// parallel. Class options come from the documents themselves.
func (s *SchoolService) StudentDocumentsPage(ctx context.Context, token string, filter model.DocumentFilter) StudentDocumentsPage {
	api := s.API(token)
	var (
		docs []model.Document
		page = StudentDocumentsPage{Filter: filter}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetch(gctx, s, "student documents", &docs, api.StudentDocuments)
		return nil
	})
	g.Go(func() error {
		fetch(gctx, s, "subjects", &page.Subjects, api.ListSubjects)
		return nil
	})
	_ = g.Wait()

	page.Total = len(docs)
	page.Classes = model.ClassesFromDocuments(docs)
	page.Documents = filter.Apply(docs)
	return page
}

// StudentTuitions loads the signed-in student's tuition lines.
func (s *SchoolService) StudentTuitions(ctx context.Context, token string) []model.StudentTuition {
	var out []model.StudentTuition
	fetch(ctx, s, "student tuitions", &out, s.API(token).StudentTuitions)
	return out
}
