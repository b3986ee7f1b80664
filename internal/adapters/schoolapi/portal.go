package schoolapi

import (
	"context"
	"fmt"

	"github.com/ghugn/chem-class-git/internal/domain/model"
)

// AdminDashboard returns the headline counts for the admin overview.
func (s *Scoped) AdminDashboard(ctx context.Context) (model.AdminDashboard, error) {
	var out model.AdminDashboard
	if err := s.get(ctx, "dashboard.admin", "/admin/dashboard", &out); err != nil {
		return model.AdminDashboard{}, fmt.Errorf("schoolapi.AdminDashboard: %w", err)
	}
	return out, nil
}

// StudentDashboard returns the signed-in student's classes and fee summary.
func (s *Scoped) StudentDashboard(ctx context.Context) (model.StudentDashboard, error) {
	var out model.StudentDashboard
	if err := s.get(ctx, "dashboard.student", "/students/dashboard", &out); err != nil {
		return model.StudentDashboard{}, fmt.Errorf("schoolapi.StudentDashboard: %w", err)
	}
	return out, nil
}

func (s *Scoped) StudentGrades(ctx context.Context) ([]model.StudentGrade, error) {
	var out []model.StudentGrade
	if err := s.get(ctx, "student.grades", "/student/grades", &out); err != nil {
		return nil, fmt.Errorf("schoolapi.StudentGrades: %w", err)
	}
	return out, nil
}

func (s *Scoped) StudentDocuments(ctx context.Context) ([]model.Document, error) {
	var out []model.Document
	if err := s.get(ctx, "student.documents", "/student/documents", &out); err != nil {
		return nil, fmt.Errorf("schoolapi.StudentDocuments: %w", err)
	}
	return out, nil
}

func (s *Scoped) StudentTuitions(ctx context.Context) ([]model.StudentTuition, error) {
	var out []model.StudentTuition
	if err := s.get(ctx, "student.tuitions", "/student/tuitions", &out); err != nil {
		return nil, fmt.Errorf("schoolapi.StudentTuitions: %w", err)
	}
	return out, nil
}
