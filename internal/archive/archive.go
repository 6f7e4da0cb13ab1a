// Package archive indexes the image entries of a zip archive.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"catalog-import/internal/canonical"
	"catalog-import/internal/domain"
)

// MaxEntrySize caps the bytes read from a single entry.
const MaxEntrySize = 32 << 20

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// ErrEntryNotFound is returned when a filename is not an image entry of the archive.
var ErrEntryNotFound = errors.New("archive entry not found")

// ArchiveError reports bytes that are not a readable zip archive.
type ArchiveError struct {
	Err error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("invalid archive: %v", e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// IsImageFile reports whether the filename has a supported image extension.
func IsImageFile(filename string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(filename))]
	return ok
}

// Archive is an opened zip archive restricted to its image entries.
type Archive struct {
	files map[string]*zip.File
	index []domain.ZipIndexEntry
}

// Open parses the archive and indexes its image entries in archive order.
func Open(data []byte) (*Archive, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ArchiveError{Err: err}
	}

	a := &Archive{
		files: make(map[string]*zip.File),
		index: make([]domain.ZipIndexEntry, 0, len(reader.File)),
	}
	for _, f := range reader.File {
		if f.FileInfo().IsDir() || !IsImageFile(f.Name) {
			continue
		}
		// macOS resource forks look like images but are not.
		if strings.HasPrefix(f.Name, "__MACOSX/") || strings.HasPrefix(path.Base(f.Name), "._") {
			continue
		}
		a.files[f.Name] = f
		a.index = append(a.index, domain.ZipIndexEntry{
			Filename:     f.Name,
			CanonicalKey: canonical.FileKey(f.Name),
			Size:         int64(f.UncompressedSize64),
		})
	}
	return a, nil
}

// IndexArchive returns the image index of an archive. An archive without
// images yields an empty index, not an error.
func IndexArchive(data []byte) ([]domain.ZipIndexEntry, error) {
	a, err := Open(data)
	if err != nil {
		return nil, err
	}
	return a.Index(), nil
}

// Index returns the image entries.
func (a *Archive) Index() []domain.ZipIndexEntry {
	return a.index
}

// Len returns the number of image entries.
func (a *Archive) Len() int {
	return len(a.index)
}

// ReadFile returns the bytes of an image entry.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrEntryNotFound)
	}
	if f.UncompressedSize64 > MaxEntrySize {
		return nil, fmt.Errorf("%s: entry exceeds %d bytes", name, MaxEntrySize)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, &ArchiveError{Err: fmt.Errorf("open %s: %w", name, err)}
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return nil, &ArchiveError{Err: fmt.Errorf("read %s: %w", name, err)}
	}
	if len(data) > MaxEntrySize {
		return nil, fmt.Errorf("%s: entry exceeds %d bytes", name, MaxEntrySize)
	}
	return data, nil
}
