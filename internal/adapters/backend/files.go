package backend

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/domain/model"
)

// ListFiles returns one page of the caller's files.
func (c *Client) ListFiles(ctx context.Context, token string, opts model.FileListOptions) (model.FileList, error) {
	opts = opts.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("limit", strconv.Itoa(opts.PageSize))

	var list model.FileList
	err := c.do(ctx, call{
		endpoint: "files.list",
		method:   http.MethodGet,
		path:     "/files",
		token:    token,
		query:    q,
		out:      &list,
	})
	if err != nil {
		return model.FileList{}, err
	}
	if list.Page == 0 {
		list.Page = opts.Page
	}
	if list.PageSize == 0 {
		list.PageSize = opts.PageSize
	}
	if list.Total == 0 {
		list.Total = (list.Page-1)*list.PageSize + len(list.Items)
	}
	return list, nil
}

// UploadFile streams in.Body to the backend as a single multipart request.
func (c *Client) UploadFile(ctx context.Context, token string, in model.UploadInput) (model.File, error) {
	if in.Body == nil || strings.TrimSpace(in.Filename) == "" {
		return model.File{}, apperrors.Validation("Choose a file to upload.")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeUpload(mw, in))
	}()

	var f model.File
	err := c.do(ctx, call{
		endpoint:    "files.upload",
		method:      http.MethodPost,
		path:        "/files/upload",
		token:       token,
		rawBody:     pr,
		contentType: mw.FormDataContentType(),
		selectors:   []string{"file"},
		out:         &f,
		timeout:     c.uploadTimeout,
	})
	// Unblock the writer goroutine if the request ended before consuming the body.
	_ = pr.CloseWithError(io.ErrClosedPipe)
	return f, err
}

func writeUpload(mw *multipart.Writer, in model.UploadInput) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, in.Filename))
	ct := in.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, in.Body); err != nil {
		return err
	}
	return mw.Close()
}

// DeleteFile removes a file owned by the caller.
func (c *Client) DeleteFile(ctx context.Context, token, id string) error {
	return c.do(ctx, call{
		endpoint: "files.delete",
		method:   http.MethodDelete,
		path:     "/files/" + url.PathEscape(id),
		token:    token,
	})
}

// PublicFile fetches the anonymous view of a shared file.
func (c *Client) PublicFile(ctx context.Context, id string) (model.PublicFile, error) {
	var f model.PublicFile
	err := c.do(ctx, call{
		endpoint:  "files.public",
		method:    http.MethodGet,
		path:      "/files/public/" + url.PathEscape(id),
		selectors: []string{"file"},
		out:       &f,
	})
	return f, err
}

// RecordView counts a view of a shared file toward the owner's earnings.
func (c *Client) RecordView(ctx context.Context, id string) error {
	return c.do(ctx, call{
		endpoint: "files.view",
		method:   http.MethodPost,
		path:     "/files/public/" + url.PathEscape(id) + "/view",
	})
}
