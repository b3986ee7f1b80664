//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"unicode/utf8"
)

// AdminDashboard holds the headline counts for the admin overview.
type AdminDashboard struct {
	TotalStudents  int `json:"totalStudents"`
	TotalClasses   int `json:"totalClasses"`
	TotalMaterials int `json:"totalMaterials"`
	Financials     struct {
		TotalPaid   Number `json:"totalPaid"`
		TotalUnpaid Number `json:"totalUnpaid"`
	} `json:"financials"`
}

// Classmate is a fellow student shown on the student overview.
type Classmate struct {
	FullName string `json:"full_name"`
}

// Initial returns the upper-cased first letter of the name, or "U".
func (c Classmate) Initial() string {
	name := strings.TrimSpace(c.FullName)
	if name == "" {
		return "U"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

// EnrolledClass is one of the student's classes on the overview.
type EnrolledClass struct {
	ClassID        ID          `json:"class_id"`
	ClassName      string      `json:"class_name"`
	Schedule       string      `json:"schedule"`
	ClassmateCount int         `json:"classmate_count"`
	Classmates     []Classmate `json:"classmates"`
}

// StudentDashboard is the student overview payload.
type StudentDashboard struct {
	Classes []EnrolledClass `json:"classes"`
	Summary struct {
		TotalClasses  int    `json:"totalClasses"`
		TotalFee      Number `json:"totalFee"`
		UnpaidTuition Number `json:"unpaidTuition"`
	} `json:"summary"`
}
