package document

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// MinIOStore adapts minio.Client to the blobStore interface. The bucket
// is private; the only read path is a presigned URL.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore constructs an adapter bound to one bucket.
func NewMinIOStore(client *minio.Client, bucket string) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket}
}

// Upload stores the object under key. Existing objects are never
// overwritten; a collision returns ErrObjectExists.
func (s *MinIOStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return ErrObjectExists
	}
	if !isNoSuchKey(err) {
		return fmt.Errorf("stat object: %w", err)
	}

	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, key, reader, size, opts); err != nil {
		return fmt.Errorf("store object: %w", err)
	}
	return nil
}

// Remove deletes the object under key. Removing a missing key is not an
// error here; callers treat it as already gone.
func (s *MinIOStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

// SignedURL issues a fresh presigned GET link for key, valid for ttl.
// A missing object yields ErrObjectNotFound rather than a dead link.
func (s *MinIOStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return "", ErrObjectNotFound
		}
		return "", fmt.Errorf("stat object: %w", err)
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign object: %w", err)
	}
	return u.String(), nil
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
