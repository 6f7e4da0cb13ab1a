package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GCSStore keeps blobs in one Cloud Storage bucket.
type GCSStore struct {
	client  *gcs.Client
	bucket  *gcs.BucketHandle
	name    string
	baseURL string
	timeout time.Duration
}

// NewGCSStore creates a store on an existing client.
func NewGCSStore(client *gcs.Client, bucket, baseURL string, timeout time.Duration) *GCSStore {
	return &GCSStore{
		client:  client,
		bucket:  client.Bucket(bucket),
		name:    bucket,
		baseURL: baseURL,
		timeout: timeout,
	}
}

// Get reads a whole object.
func (s *GCSStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	reader, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, wrapNotExist(key)
		}
		return nil, fmt.Errorf("open gcs object %s: %w", key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read gcs object %s: %w", key, err)
	}
	return data, nil
}

// Put writes a whole object, replacing any previous version.
func (s *GCSStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	writer := s.bucket.Object(key).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write gcs object %s: %w", key, describeGoogleError(err))
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize gcs object %s: %w", key, describeGoogleError(err))
	}
	return nil
}

// URL returns the public address of an object.
func (s *GCSStore) URL(key string) string {
	return publicURL(s.baseURL, "https://storage.googleapis.com/"+s.name, key)
}

// Close releases the client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

// describeGoogleError keeps the HTTP status of API failures visible in logs.
func describeGoogleError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("%s (%d): %w", http.StatusText(gerr.Code), gerr.Code, err)
	}
	return err
}
