package httpx

import (
	"bytes"
	"net/http"

	apperrors "github.com/megabox/megabox-web/internal/errors"
)

const errMsgFixBelow = "form.fix_below"

// ErrorRenderer is a function that renders an error template with the given data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, status int, data map[string]any)

// ErrorOpts contains all options needed to render a form error response.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the error that occurred (optional, can be nil if only field errors)
	Err error
	// FieldErrors contains field-level validation errors (field name → message or catalog key)
	FieldErrors map[string]string
	// Renderer is typically h.render
	Renderer ErrorRenderer
	PageMeta PageMeta
	// Builder supplies the base page data; NewTemplateData(R, PageMeta) when nil.
	Builder *TemplateDataBuilder
	// Data carries form values and select options back into the template
	Data map[string]any
	// StatusCode overrides the status derived from Err.
	StatusCode int
	// ShowToast also raises an error toast with the general message.
	ShowToast bool
}

// DetermineErrorStatus maps a service error to the status of the re-rendered page.
// 0 means the caller's default (formStatus); a backend 4xx rejection is a form error.
func DetermineErrorStatus(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeUnavailable:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return 0
	}
}

// RenderError re-renders a page with a general message and field errors. A validation
// error with a field is shown next to that field instead of above the form.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	builder := opts.Builder
	if builder == nil {
		builder = NewTemplateData(opts.R, opts.PageMeta)
	}
	generalError := processError(opts.Err, &opts.FieldErrors)

	if len(opts.FieldErrors) > 0 {
		builder.WithFieldErrors(opts.FieldErrors)
	}
	if generalError != "" {
		builder.WithError(generalError)
	} else if len(opts.FieldErrors) > 0 {
		builder.WithError(errMsgFixBelow)
	}
	for k, v := range opts.Data {
		builder.With(k, v)
	}

	if opts.ShowToast && generalError != "" && IsHTMX(opts.R) {
		triggerToast(opts.W, opts.R, generalError, "error")
	}

	status := opts.StatusCode
	if status == 0 {
		status = DetermineErrorStatus(opts.Err)
	}
	if status == 0 || IsHTMX(opts.R) {
		status = formStatus(opts.R)
	}
	opts.Renderer(opts.W, opts.R, status, builder.Build())
}

// processError moves a field-scoped validation error into fieldErrors and returns the
// message to show above the form.
func processError(err error, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}
	if field := apperrors.GetField(err); field != "" && apperrors.IsValidation(err) {
		if *fieldErrors == nil {
			*fieldErrors = make(map[string]string)
		}
		if _, exists := (*fieldErrors)[field]; !exists {
			(*fieldErrors)[field] = apperrors.UserMessage(err)
		}
		return ""
	}
	return apperrors.UserMessage(err)
}

// formError re-renders meta's page with err and the submitted form values.
func (h *UIHandlers) formError(w http.ResponseWriter, r *http.Request, meta PageMeta, err error, data map[string]any) {
	RenderError(ErrorOpts{
		W:         w,
		R:         r,
		Err:       err,
		Renderer:  h.render,
		PageMeta:  meta,
		Builder:   h.page(r, meta),
		Data:      data,
		ShowToast: true,
	})
}

// handleServiceError renders the outcome of a failed backend read for a full page.
// An expired session goes back to sign-in, a missing resource to the not-found page.
func (h *UIHandlers) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.IsUnauthorized(err):
		h.expireSession(w, r)
	case apperrors.IsNotFound(err):
		h.NotFound(w, r)
	case apperrors.IsForbidden(err):
		h.Forbidden(w, r)
	default:
		h.logger().WarnContext(r.Context(), "backend request failed",
			"error", err, "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()))
		if IsHTMX(r) {
			triggerToast(w, r, apperrors.UserMessage(err), "error")
		}
		h.renderErrorPage(w, r, StatusFor(err), apperrors.UserMessage(err))
	}
}

// expireSession clears a token the backend no longer accepts and sends the browser to sign-in.
func (h *UIHandlers) expireSession(w http.ResponseWriter, r *http.Request) {
	if token := TokenFromContext(r.Context()); token != "" && h.Auth != nil {
		h.Auth.ForgetIdentity(r.Context(), token)
	}
	if h.Sessions != nil {
		h.Sessions.Clear(w, r)
	}
	redirectToLogin(w, r)
}

// renderErrorPage writes the standalone error layout.
func (h *UIHandlers) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	data := h.pageData(r, PageMeta{Title: "error.title", PageTitle: "error.title"})
	data["Status"] = status
	data["ErrorMessage"] = TranslatorFromContext(r.Context()).T(msg)
	if WantsPartial(r) {
		h.renderFragment(w, r, "error-content", data)
		return
	}

	var buf bytes.Buffer
	if err := h.T.Execute(&buf, "error-layout", data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "error page")
		return
	}
	writeHTML(w, status, &buf)
}
