package service

import "errors"

var (
	// ErrJobNotFound is returned when no import job has the requested id.
	ErrJobNotFound = errors.New("import job not found")
	// ErrDraftNotFound is returned when no draft has the requested id.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrJobNotActive is returned for batch calls against a FAILED or CANCELLED job.
	ErrJobNotActive = errors.New("import job is not active")
	// ErrNoArchive is returned when an image stage runs on a job without an archive.
	ErrNoArchive = errors.New("import job has no image archive")
	// ErrArchiveUnreadable is returned when the attached archive is absent or not a zip.
	ErrArchiveUnreadable = errors.New("image archive is missing or unreadable")
	// ErrDraftTerminal is returned when an approved or rejected draft is patched.
	ErrDraftTerminal = errors.New("draft has already been reviewed")
	// ErrInvalidInput is returned for malformed requests and unreadable source files.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorageUnavailable is returned when the blob store fails transiently.
	ErrStorageUnavailable = errors.New("blob storage unavailable")
)
