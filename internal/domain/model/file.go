//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"io"
	"time"
)

const (
	// DefaultFilePageSize is the page size for file listings.
	DefaultFilePageSize = 20
	maxFilePageSize     = 100
)

// File is an uploaded file owned by the current user.
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	Views     int64     `json:"views"`
	Downloads int64     `json:"downloads"`
	ShareID   string    `json:"shareId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FileListOptions controls paging for file listings.
type FileListOptions struct {
	Page     int
	PageSize int
}

// Normalize clamps paging values to sane bounds.
func (o FileListOptions) Normalize() FileListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = DefaultFilePageSize
	}
	if o.PageSize > maxFilePageSize {
		o.PageSize = maxFilePageSize
	}
	return o
}

// FileList is one page of files.
type FileList struct {
	Items      []File `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	UsedBytes  int64  `json:"usedBytes"`
	QuotaBytes int64  `json:"quotaBytes"`
}

// HasNext reports whether another page exists.
func (l FileList) HasNext() bool {
	return l.Page*l.PageSize < l.Total
}

// HasPrev reports whether a previous page exists.
func (l FileList) HasPrev() bool {
	return l.Page > 1
}

// UsagePercent returns storage usage as a whole percentage, or 0 when no quota is known.
func (l FileList) UsagePercent() int {
	if l.QuotaBytes <= 0 {
		return 0
	}
	p := int(l.UsedBytes * 100 / l.QuotaBytes)
	if p > 100 {
		return 100
	}
	return p
}

// UploadInput is a single file streamed through to the backend.
type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// PublicFile is the anonymous view of a shared file.
type PublicFile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	MimeType    string    `json:"mimeType"`
	OwnerName   string    `json:"ownerName"`
	DownloadURL string    `json:"downloadUrl"`
	StreamURL   string    `json:"streamUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
