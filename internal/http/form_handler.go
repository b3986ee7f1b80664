package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghugn/chem-class-git/internal/http/validation"
)

// FormMode selects the operation HandleForm runs.
type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

// FormParser parses form data from an HTTP request and returns the parsed data
// along with any field-level validation errors.
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormService is the pair of writes behind a create/edit form.
type FormService[T any] interface {
	Create(ctx context.Context, in T) error
	Update(ctx context.Context, id string, in T) error
}

// FormFuncs adapts plain functions to FormService. A nil function makes that
// mode unavailable.
type FormFuncs[T any] struct {
	CreateFn func(ctx context.Context, in T) error
	UpdateFn func(ctx context.Context, id string, in T) error
}

func (f FormFuncs[T]) Create(ctx context.Context, in T) error {
	if f.CreateFn == nil {
		return errFormModeUnsupported
	}
	return f.CreateFn(ctx, in)
}

func (f FormFuncs[T]) Update(ctx context.Context, id string, in T) error {
	if f.UpdateFn == nil {
		return errFormModeUnsupported
	}
	return f.UpdateFn(ctx, id, in)
}

var errFormModeUnsupported = errors.New("form mode not supported")

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	W       http.ResponseWriter
	R       *http.Request
	Mode    FormMode
	Parser  FormParser[T]
	Service FormService[T]

	// SuccessURL is where a saved form lands.
	SuccessURL string
	// ErrorURL is where a rejected form returns. Defaults to SuccessURL.
	ErrorURL string
	// Success is the flash shown after a save; Fallback replaces API errors
	// that carry no user-facing message.
	Success  string
	Fallback string
	// GetID extracts the record id in edit mode (default: r.PathValue("id")).
	GetID func(r *http.Request) string
}

// HandleForm runs a create or edit submission: parse and validate, call the
// service, then POST-redirect-GET with a flash. Validation errors return to
// ErrorURL with the first message in field order.
func HandleForm[T any](h *UIHandlers, opts FormHandlerOpts[T]) {
	if opts.Parser == nil || opts.Service == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}
	errorURL := opts.ErrorURL
	if errorURL == "" {
		errorURL = opts.SuccessURL
	}

	var id string
	switch opts.Mode {
	case FormModeCreate:
	case FormModeEdit:
		if id = formID(opts); id == "" {
			http.NotFound(opts.W, opts.R)
			return
		}
	default:
		http.Error(opts.W, "invalid form mode", http.StatusBadRequest)
		return
	}

	data, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		rejectForm(opts.W, opts.R, errorURL, fieldErrors, validation.FieldOrder(data)...)
		return
	}

	var err error
	if opts.Mode == FormModeEdit {
		err = opts.Service.Update(opts.R.Context(), id, data)
	} else {
		err = opts.Service.Create(opts.R.Context(), data)
	}
	if errors.Is(err, context.Canceled) {
		h.logger().InfoContext(opts.R.Context(), "form submission canceled", "path", opts.R.URL.Path)
		return
	}
	if errors.Is(err, errFormModeUnsupported) {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}
	h.finishWrite(opts.W, opts.R, opts.SuccessURL, err, opts.Success, opts.Fallback)
}

func formID[T any](opts FormHandlerOpts[T]) string {
	if opts.GetID != nil {
		return opts.GetID(opts.R)
	}
	return opts.R.PathValue("id")
}

// validated turns a plain parse function into a FormParser that checks struct tags.
func validated[T any](v *validation.Validator, parse func(*http.Request) T) FormParser[T] {
	return func(r *http.Request) (T, map[string]string) {
		form := parse(r)
		return form, v.Struct(form)
	}
}
