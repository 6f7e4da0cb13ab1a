package handler

import "time"

// TimeFormat is the standard time format for API responses (RFC3339)
const TimeFormat = time.RFC3339

const (
	// MaxUploadBytes caps a single uploaded spreadsheet or archive.
	MaxUploadBytes = 256 << 20
	// RetryAfterSeconds is sent with 503 responses.
	RetryAfterSeconds = "30"
)
