package httpx

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
)

// multipartOverhead leaves room for part headers and boundaries around the file.
const multipartOverhead = 1 << 20

//nolint:gochecknoglobals // static page metadata
var (
	metaFiles      = PageMeta{Title: "page.files", PageTitle: "page.files", CurrentPage: PageFiles}
	metaPublicFile = PageMeta{Title: "page.public_file", PageTitle: "page.public_file", CurrentPage: PagePublicFile}
)

// FilesPage lists the caller's uploads, twenty per page.
// GET {section}/files.
func (h *UIHandlers) FilesPage(w http.ResponseWriter, r *http.Request) {
	h.renderFiles(w, r, http.StatusOK, nil)
}

func (h *UIHandlers) renderFiles(w http.ResponseWriter, r *http.Request, status int, uploadErr error) {
	list, err := h.Files.List(r.Context(), TokenFromContext(r.Context()), parsePage(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	b := h.page(r, metaFiles).
		With("Files", list).
		With("MaxUploadBytes", h.Files.MaxUploadBytes()).
		With("ShareBase", h.BaseURL+"/f/").
		WithPagination(PaginationData{
			Page:       list.Page,
			PageSize:   list.PageSize,
			TotalCount: list.Total,
			HasPrev:    list.HasPrev(),
			HasNext:    list.HasNext(),
			ItemCount:  len(list.Items),
			BasePath:   identitySection(r) + "/files",
		})
	if uploadErr != nil {
		b.WithError(apperrors.UserMessage(uploadErr))
	}
	h.render(w, r, status, b.Build())
}

// UploadFile streams the first "file" part of a multipart body to the backend without
// buffering it. The CSRF token must come in the request header for multipart posts.
// POST {section}/files/upload.
func (h *UIHandlers) UploadFile(w http.ResponseWriter, r *http.Request) {
	if limit := h.Files.MaxUploadBytes(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}

	part, err := firstFilePart(r)
	if err != nil {
		h.uploadFailed(w, r, err)
		return
	}
	defer part.Close()

	f, err := h.Files.Upload(r.Context(), TokenFromContext(r.Context()), model.UploadInput{
		Filename:    part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
		Body:        part,
	})
	if err != nil {
		h.uploadFailed(w, r, err)
		return
	}
	h.logger().InfoContext(r.Context(), "file uploaded", "file_id", f.ID, "size", f.Size)
	finish(w, r, identitySection(r)+"/files", "files.toast.uploaded")
}

// firstFilePart skips non-file fields until the part named "file".
func firstFilePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, apperrors.ValidationField("file", "Choose a file to upload.")
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, apperrors.ValidationField("file", "Choose a file to upload.")
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, apperrors.ValidationField("file", "The file is larger than the upload limit.")
			}
			return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "The upload was interrupted. Please try again.")
		}
		if part.FormName() == "file" && part.FileName() != "" {
			return part, nil
		}
		_ = part.Close()
	}
}

func (h *UIHandlers) uploadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.IsUnauthorized(err) {
		h.expireSession(w, r)
		return
	}
	if IsHTMX(r) {
		triggerToast(w, r, apperrors.UserMessage(err), "error")
		SetHXReswap(w, "none")
		w.WriteHeader(http.StatusOK)
		return
	}
	status := DetermineErrorStatus(err)
	if status == 0 {
		status = http.StatusUnprocessableEntity
	}
	h.renderFiles(w, r, status, err)
}

// DeleteFile removes one file. htmx callers get an empty 200 so the row swaps out.
// POST {section}/files/{id}/delete.
func (h *UIHandlers) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Files.Delete(r.Context(), TokenFromContext(r.Context()), id); err != nil {
		if IsHTMX(r) && !apperrors.IsUnauthorized(err) {
			triggerToast(w, r, apperrors.UserMessage(err), "error")
			SetHXReswap(w, "none")
			w.WriteHeader(http.StatusOK)
			return
		}
		h.handleServiceError(w, r, err)
		return
	}
	if IsHTMX(r) {
		triggerToast(w, r, "files.toast.deleted", "success")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, identitySection(r)+"/files", http.StatusSeeOther)
}

// PublicFile is the anonymous share page. Viewing it counts a view on the backend.
// GET /f/{id}.
func (h *UIHandlers) PublicFile(w http.ResponseWriter, r *http.Request) {
	f, err := h.Files.Public(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.handleServiceError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, h.page(r, metaPublicFile).With("File", f).Build())
}

// identitySection is the caller's area prefix, e.g. /Promoter.
func identitySection(r *http.Request) string {
	if id := GetIdentityFromContext(r.Context()); id != nil {
		return sectionFor(id.Role)
	}
	return ""
}
