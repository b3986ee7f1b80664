//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

// FilterUnassigned selects documents without a subject.
const FilterUnassigned = "UNASSIGNED"

// Subject is a course subject documents can be tagged with.
type Subject = Ref

// Document is an uploaded study material.
type Document struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ClassID     ID     `json:"class_id"`
	ClassName   string `json:"class_name,omitempty"`
	SubjectID   ID     `json:"subject_id,omitempty"`
	SubjectName string `json:"subject_name,omitempty"`
	FileURL     string `json:"file_url"`
}

// DocumentInput is the multipart create/update body. File is optional on update.
type DocumentInput struct {
	Title       string
	Description string
	ClassID     string
	SubjectID   string
	File        *Upload
}

// Upload is a file attached to a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DocumentFilter narrows a document list.
// SubjectID may be FilterAll, FilterUnassigned or a subject id; ClassID is FilterAll or a class id.
type DocumentFilter struct {
	Q         string
	ClassID   string
	SubjectID string
}

// Apply returns the documents matching f.
func (f DocumentFilter) Apply(docs []Document) []Document {
	q := strings.ToLower(strings.TrimSpace(f.Q))
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if !f.matchesClass(d) || !f.matchesSubject(d) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(d.Title), q) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (f DocumentFilter) matchesClass(d Document) bool {
	if f.ClassID == "" || f.ClassID == FilterAll {
		return true
	}
	return string(d.ClassID) == f.ClassID
}

func (f DocumentFilter) matchesSubject(d Document) bool {
	switch f.SubjectID {
	case "", FilterAll:
		return true
	case FilterUnassigned:
		return d.SubjectID == ""
	default:
		return string(d.SubjectID) == f.SubjectID
	}
}

// ClassesFromDocuments derives the distinct classes referenced by docs, in first-seen order.
func ClassesFromDocuments(docs []Document) []Ref {
	seen := make(map[ID]int)
	var out []Ref
	for _, d := range docs {
		if d.ClassID == "" || d.ClassName == "" {
			continue
		}
		if i, ok := seen[d.ClassID]; ok {
			out[i].Name = d.ClassName
			continue
		}
		seen[d.ClassID] = len(out)
		out = append(out, Ref{ID: d.ClassID, Name: d.ClassName})
	}
	return out
}
