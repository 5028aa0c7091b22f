package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/ports"
)

const queryFilesPrefix = "files?"

// FilesServiceOptions groups dependencies for FilesService.
type FilesServiceOptions struct {
	API   ports.FilesAPI
	Cache *QueryCache
	// MaxUploadBytes caps a single upload; zero means unlimited.
	MaxUploadBytes int64
}

// FilesService lists, uploads and deletes the caller's files.
type FilesService struct {
	api       ports.FilesAPI
	cache     *QueryCache
	maxUpload int64
}

// NewFilesService constructs a FilesService.
func NewFilesService(opts FilesServiceOptions) *FilesService {
	return &FilesService{api: opts.API, cache: opts.Cache, maxUpload: opts.MaxUploadBytes}
}

// MaxUploadBytes returns the configured upload cap.
func (s *FilesService) MaxUploadBytes() int64 { return s.maxUpload }

// List returns one page of files.
func (s *FilesService) List(ctx context.Context, token string, page int) (model.FileList, error) {
	opts := model.FileListOptions{Page: page}.Normalize()
	return Fetch(ctx, s.cache, token, Query[model.FileList]{
		Key: queryFilesPrefix + "page=" + strconv.Itoa(opts.Page),
		Fetch: func(ctx context.Context) (model.FileList, error) {
			return s.api.ListFiles(ctx, token, opts)
		},
	})
}

// Upload streams one file to the backend. Reading past the cap fails the upload.
func (s *FilesService) Upload(ctx context.Context, token string, in model.UploadInput) (model.File, error) {
	in.Filename = strings.TrimSpace(in.Filename)
	if in.Filename == "" || in.Body == nil {
		return model.File{}, apperrors.ValidationField("file", "Choose a file to upload.")
	}
	if s.maxUpload > 0 {
		in.Body = &cappedReader{r: in.Body, remaining: s.maxUpload, limit: s.maxUpload}
	}
	f, err := s.api.UploadFile(ctx, token, in)
	if err != nil {
		var tooLarge *uploadTooLargeError
		if errors.As(err, &tooLarge) {
			return model.File{}, apperrors.ValidationField("file", "The file is larger than the upload limit.")
		}
		return model.File{}, err
	}
	s.cache.InvalidatePrefix(ctx, token, queryFilesPrefix)
	return f, nil
}

// Delete removes a file and drops cached listings.
func (s *FilesService) Delete(ctx context.Context, token, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NotFound("File not found.")
	}
	if err := s.api.DeleteFile(ctx, token, id); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, token, queryFilesPrefix)
	return nil
}

// Public returns a shared file for anonymous viewers and counts the view.
// A failed view count does not hide the file.
func (s *FilesService) Public(ctx context.Context, id string) (model.PublicFile, error) {
	f, err := Fetch(ctx, s.cache, "", Query[model.PublicFile]{
		Key:   "file:" + id,
		Fetch: func(ctx context.Context) (model.PublicFile, error) { return s.api.PublicFile(ctx, id) },
	})
	if err != nil {
		return model.PublicFile{}, err
	}
	_ = s.api.RecordView(ctx, id)
	return f, nil
}

type uploadTooLargeError struct{ limit int64 }

func (e *uploadTooLargeError) Error() string {
	return "upload exceeds " + strconv.FormatInt(e.limit, 10) + " bytes"
}

// cappedReader fails once more than remaining bytes have been read.
type cappedReader struct {
	r         io.Reader
	remaining int64
	limit     int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, &uploadTooLargeError{limit: c.limit}
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, &uploadTooLargeError{limit: c.limit}
	}
	return n, err
}
