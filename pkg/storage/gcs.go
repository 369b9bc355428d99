package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const objectPrefix = "posts/"

// GCSStore implements ObjectStore on a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a new GCSStore. An empty credentials path falls back
// to application default credentials.
func NewGCSStore(ctx context.Context, bucket, credentialsPath string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}

	return &GCSStore{client: client, bucket: bucket}, nil
}

// Store uploads the blob under a fresh key and returns its public URL
func (s *GCSStore) Store(ctx context.Context, r io.Reader, contentType string) (string, error) {
	key := objectPrefix + uuid.NewString()

	writer := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, r); err != nil {
		return "", fmt.Errorf("failed to copy blob to GCS object %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer for %s: %w", key, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key), nil
}

// Delete removes the blob a previously returned URL points at
func (s *GCSStore) Delete(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	key := strings.TrimPrefix(url, prefix)
	if key == url || key == "" {
		return fmt.Errorf("url %q does not belong to bucket %s", url, s.bucket)
	}

	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %s: %w", key, err)
	}
	return nil
}
