package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/ghugn/chem-class-git/internal/domain/model"
)

const (
	documentsPath = "/admin/documents"
	// maxUploadBytes bounds a document upload including the other form fields.
	maxUploadBytes = 32 << 20
)

func documentFilter(r *http.Request) model.DocumentFilter {
	return model.DocumentFilter{
		Q:         queryValue(r, "q"),
		ClassID:   filterValue(r, "class"),
		SubjectID: filterValue(r, "subject"),
	}
}

// AdminDocuments lists documents filtered by ?q=, ?class= and ?subject=.
// ?edit= opens the edit form for a document.
func (h *UIHandlers) AdminDocuments(w http.ResponseWriter, r *http.Request) {
	filter := documentFilter(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Tài liệu", PageTitle: "Quản lý tài liệu", CurrentPage: PageAdminDocuments},
		Fetch: func(ctx context.Context, data map[string]any) error {
			page := h.School.DocumentsPage(ctx, token(r), filter)
			data["Page"] = page
			if editID := queryValue(r, "edit"); editID != "" {
				for i := range page.Documents {
					if page.Documents[i].ID.String() == editID {
						data["Edit"] = &page.Documents[i]
						break
					}
				}
			}
			return nil
		},
	})
}

// parseDocumentForm reads a multipart document form. The file is optional.
func parseDocumentForm(r *http.Request) (documentForm, *model.Upload, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return documentForm{}, nil, err
	}
	form := documentForm{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		ClassID:     formValue(r, "class_id"),
		SubjectID:   formValue(r, "subject_id"),
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return form, nil, nil
	}
	if err != nil {
		return form, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return form, nil, err
	}
	if len(data) == 0 {
		return form, nil, nil
	}
	return form, &model.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (f documentForm) input(upload *model.Upload) model.DocumentInput {
	return model.DocumentInput{
		Title:       f.Title,
		Description: f.Description,
		ClassID:     f.ClassID,
		SubjectID:   f.SubjectID,
		File:        upload,
	}
}

// documentSubmission is a parsed document form with its optional file.
type documentSubmission struct {
	documentForm
	Upload *model.Upload `form:"-"`
}

// documentParser reads and validates the multipart form. requireFile makes the
// upload mandatory, as it is on create.
func (h *UIHandlers) documentParser(requireFile bool) FormParser[documentSubmission] {
	return func(r *http.Request) (documentSubmission, map[string]string) {
		form, upload, err := parseDocumentForm(r)
		sub := documentSubmission{documentForm: form, Upload: upload}
		if err != nil {
			h.logger().WarnContext(r.Context(), "read document upload", "error", err)
			return sub, map[string]string{"file": "Không thể đọc tệp tải lên"}
		}
		if errs := h.forms().Struct(form); errs != nil {
			return sub, errs
		}
		if requireFile && upload == nil {
			return sub, map[string]string{"file": "Vui lòng chọn tệp"}
		}
		return sub, nil
	}
}

func (h *UIHandlers) documentForms(r *http.Request) FormFuncs[documentSubmission] {
	api := h.School.API(token(r))
	return FormFuncs[documentSubmission]{
		CreateFn: func(ctx context.Context, d documentSubmission) error {
			return api.CreateDocument(ctx, d.input(d.Upload))
		},
		UpdateFn: func(ctx context.Context, id string, d documentSubmission) error {
			return api.UpdateDocument(ctx, id, d.input(d.Upload))
		},
	}
}

// CreateDocument uploads a new document. A file is required.
func (h *UIHandlers) CreateDocument(w http.ResponseWriter, r *http.Request) {
	HandleForm(h, FormHandlerOpts[documentSubmission]{
		W: w, R: r, Mode: FormModeCreate,
		Parser:     h.documentParser(true),
		Service:    h.documentForms(r),
		SuccessURL: documentsPath,
		Success:    msgCreated,
		Fallback:   msgGenericError,
	})
}

// UpdateDocument saves a document's details and, when given, replaces its file.
func (h *UIHandlers) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	HandleForm(h, FormHandlerOpts[documentSubmission]{
		W: w, R: r, Mode: FormModeEdit,
		Parser:     h.documentParser(false),
		Service:    h.documentForms(r),
		SuccessURL: documentsPath,
		ErrorURL:   withQuery(documentsPath, "edit", r.PathValue("id")),
		Success:    msgSaved,
		Fallback:   msgGenericError,
	})
}

// DeleteDocument removes a document.
func (h *UIHandlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	err := h.School.API(token(r)).DeleteDocument(r.Context(), r.PathValue("id"))
	h.finishWrite(w, r, documentsPath, err, msgDeleted, "Lỗi khi xóa tài liệu")
}
