//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

// FilterAll selects every item in a filter dropdown.
const FilterAll = "ALL"

// DefaultStudentPassword is assigned when an admin creates a student without a password.
const DefaultStudentPassword = "123456"

// Student is a student account as listed for admins.
type Student struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Classes []Ref  `json:"classes"`
}

// InClass reports whether the student is enrolled in the class.
func (s Student) InClass(id ID) bool {
	for _, c := range s.Classes {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ClassIDs returns the ids of the student's classes.
func (s Student) ClassIDs() []ID {
	ids := make([]ID, 0, len(s.Classes))
	for _, c := range s.Classes {
		ids = append(ids, c.ID)
	}
	return ids
}

// StudentInput is the create/update body for a student. Email and Password are only sent on create.
type StudentInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	ClassIDs []ID   `json:"class_ids"`
}

// StudentFilter narrows the admin student list.
// Q matches the name case-insensitively; ClassID is FilterAll or a class id.
type StudentFilter struct {
	Q       string
	ClassID string
}

// Apply returns the students matching f.
func (f StudentFilter) Apply(students []Student) []Student {
	q := strings.ToLower(strings.TrimSpace(f.Q))
	classID := strings.TrimSpace(f.ClassID)
	out := make([]Student, 0, len(students))
	for _, s := range students {
		if q != "" && !strings.Contains(strings.ToLower(s.Name), q) {
			continue
		}
		if classID != "" && classID != FilterAll && !s.InClass(ID(classID)) {
			continue
		}
		out = append(out, s)
	}
	return out
}
