// Package assets maps logical static asset names to their content-hashed filenames.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"
)

// AssetResolver resolves logical asset names using manifest.json. In dev mode it re-reads
// the manifest from disk when the file changes.
type AssetResolver struct {
	mu           sync.RWMutex
	manifest     map[string]string
	fsys         fs.FS
	manifestPath string
	diskPath     string
	lastModTime  time.Time
}

// NewAssetResolverFromDisk reads the manifest from the local filesystem.
func NewAssetResolverFromDisk(manifestPath string) (*AssetResolver, error) {
	ar := &AssetResolver{manifestPath: manifestPath, diskPath: manifestPath}
	return ar, ar.Reload()
}

// NewAssetResolverFromFS reads the manifest from fsys.
func NewAssetResolverFromFS(fsys fs.FS, manifestPath string) (*AssetResolver, error) {
	ar := &AssetResolver{manifestPath: manifestPath, fsys: fsys}
	return ar, ar.Reload()
}

// Reload replaces the in-memory manifest. A missing manifest is an empty mapping.
func (ar *AssetResolver) Reload() error {
	var (
		raw []byte
		err error
		mod time.Time
	)
	if ar.fsys != nil {
		raw, err = fs.ReadFile(ar.fsys, ar.manifestPath)
	} else {
		var info os.FileInfo
		if info, err = os.Stat(ar.diskPath); err == nil {
			mod = info.ModTime()
			raw, err = os.ReadFile(ar.diskPath)
		}
	}

	manifest := map[string]string{}
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("read asset manifest %s: %w", ar.manifestPath, err)
	default:
		if err := json.Unmarshal(raw, &manifest); err != nil {
			return fmt.Errorf("parse asset manifest %s: %w", ar.manifestPath, err)
		}
	}

	ar.mu.Lock()
	ar.manifest = manifest
	ar.lastModTime = mod
	ar.mu.Unlock()
	return nil
}

// ReloadIfChanged reloads a disk manifest whose modification time moved forward.
func (ar *AssetResolver) ReloadIfChanged() error {
	if ar == nil || ar.diskPath == "" {
		return nil
	}
	info, err := os.Stat(ar.diskPath)
	if err != nil {
		return nil
	}
	ar.mu.RLock()
	last := ar.lastModTime
	ar.mu.RUnlock()
	if !info.ModTime().After(last) {
		return nil
	}
	return ar.Reload()
}

// Resolve returns the public URL for logicalName, or /static/<logicalName> when the
// manifest has no entry.
func (ar *AssetResolver) Resolve(logicalName string) string {
	if ar == nil {
		return "/static/" + logicalName
	}
	ar.mu.RLock()
	defer ar.mu.RUnlock()
	if hashed, ok := ar.manifest[logicalName]; ok {
		return "/static/" + hashed
	}
	return "/static/" + logicalName
}
