package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/ghugn/chem-class-git/internal/errors"
)

// ErrorOpts contains all options needed to re-render a form after a failed submit.
type ErrorOpts struct {
	// Err is the error that occurred (optional, can be nil if only field errors)
	Err error
	// FieldErrors contains field-level validation errors (field name → error message)
	FieldErrors map[string]string
	// Fallback is shown when Err carries no message fit for users.
	Fallback string
	PageMeta PageMeta
	// Data preserves submitted values and page state such as dropdown options.
	Data map[string]any
	// StatusCode defaults to 200 so htmx swaps the response.
	StatusCode int
}

// RenderFormError renders the page of opts.PageMeta with the submitted data and
// the error messages.
func (h *UIHandlers) RenderFormError(w http.ResponseWriter, r *http.Request, opts ErrorOpts) {
	if errors.Is(opts.Err, context.Canceled) || errors.Is(opts.Err, context.DeadlineExceeded) {
		http.Error(w, "request canceled", http.StatusRequestTimeout)
		return
	}

	builder := NewTemplateData(r, opts.PageMeta)
	fieldErrors := opts.FieldErrors
	general := processError(opts.Err, &fieldErrors, opts.Fallback)
	builder.WithFieldErrors(fieldErrors).WithError(general)
	for k, v := range opts.Data {
		builder.With(k, v)
	}

	if opts.Err != nil {
		h.logger().WarnContext(r.Context(), "form submission failed",
			"path", r.URL.Path,
			"code", apperrors.GetCode(opts.Err),
			"error", opts.Err,
		)
	}

	h.renderPageStatus(w, r, builder.Build(), opts.StatusCode)
}

// processError moves field-scoped validation errors into fieldErrors and returns
// the general message to show, if any.
func processError(err error, fieldErrors *map[string]string, fallback string) string {
	if err == nil {
		return ""
	}
	if field := apperrors.GetField(err); field != "" && apperrors.IsValidation(err) {
		if *fieldErrors == nil {
			*fieldErrors = map[string]string{}
		}
		(*fieldErrors)[field] = apperrors.UserMessage(err, fallback)
		return ""
	}
	if fallback == "" {
		fallback = msgGenericError
	}
	return apperrors.UserMessage(err, fallback)
}
