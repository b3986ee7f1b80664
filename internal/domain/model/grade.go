//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxScore is the score ceiling offered for a new exam.
const DefaultMaxScore = 10

// Exam is a graded assessment shared by one or more classes.
type Exam struct {
	ID       ID        `json:"id"`
	Title    string    `json:"title"`
	Date     Timestamp `json:"date"`
	MaxScore Number    `json:"max_score"`
	Classes  []Ref     `json:"classes,omitempty"`
}

// ClassIDs returns the ids of the classes sitting the exam.
func (e Exam) ClassIDs() []ID {
	ids := make([]ID, 0, len(e.Classes))
	for _, c := range e.Classes {
		ids = append(ids, c.ID)
	}
	return ids
}

// ExamInput is the create/update body for an exam. Date is YYYY-MM-DD.
type ExamInput struct {
	Title    string  `json:"title"`
	Date     string  `json:"date"`
	MaxScore float64 `json:"max_score"`
	ClassIDs []ID    `json:"class_ids"`
}

// ExamGrade is one roster row of an exam's grade sheet.
type ExamGrade struct {
	StudentID ID      `json:"student_id"`
	FullName  string  `json:"full_name"`
	Score     *Number `json:"score"`
	Comment   string  `json:"comment"`
}

// GradeEntry is one row submitted when saving an exam's grades. A nil Score clears the grade.
type GradeEntry struct {
	StudentID ID       `json:"student_id"`
	Score     *float64 `json:"score"`
	Comment   string   `json:"comment"`
}

// StudentGrade is a student's own result for one exam.
type StudentGrade struct {
	ExamID    ID        `json:"exam_id"`
	Title     string    `json:"title"`
	ClassName string    `json:"class_name"`
	Score     *Number   `json:"score"`
	MaxScore  Number    `json:"max_score"`
	Comment   string    `json:"comment"`
	ExamDate  Timestamp `json:"exam_date"`
}

// ParseScore converts a grade input. An empty input clears the score.
func ParseScore(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("score %q: %w", raw, err)
	}
	return &v, nil
}
