// Package storage stores uploaded sources, archives and processed images as blobs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// ErrNotExist is returned by Get when no blob is stored under the key.
var ErrNotExist = errors.New("blob does not exist")

// BlobStore reads and writes whole blobs by key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// URL returns the address under which a stored blob is served.
	URL(key string) string
}

// Key layout shared by the HTTP server and the upload-triggered function.
const (
	importsPrefix = "imports"
	imagesPrefix  = "images"
)

// SourceKey is where an uploaded spreadsheet is stored.
func SourceKey(token, filename string) string {
	return path.Join(importsPrefix, token, "source"+strings.ToLower(path.Ext(filename)))
}

// ArchiveKey is where an uploaded image archive is stored.
func ArchiveKey(token string) string {
	return path.Join(importsPrefix, token, "images.zip")
}

// ImageKey is where the processed image of a draft is stored.
func ImageKey(jobID, draftID, ext string) string {
	return path.Join(imagesPrefix, jobID, draftID+ext)
}

// ParseSourceKey extracts the upload token from a source key. It reports false for other keys.
func ParseSourceKey(key string) (token string, ok bool) {
	parts := strings.Split(key, "/")
	if len(parts) != 3 || parts[0] != importsPrefix || parts[1] == "" {
		return "", false
	}
	switch parts[2] {
	case "source.csv", "source.xlsx":
		return parts[1], true
	}
	return "", false
}

// publicURL joins a base URL and a key, falling back to the provider default.
func publicURL(base, fallback, key string) string {
	if base != "" {
		return strings.TrimSuffix(base, "/") + "/" + key
	}
	return fallback + "/" + key
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func wrapNotExist(key string) error {
	return fmt.Errorf("get %s: %w", key, ErrNotExist)
}
