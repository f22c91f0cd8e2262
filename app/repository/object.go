package repository

import (
	"context"
	"errors"
	"io"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound is returned when a well-formed key has no backing
// object in the bucket.
var ErrObjectNotFound = errors.New("object not found")

type ObjectRepository struct {
	client *minio.Client
	bucket string
}

func NewObjectRepository(client *minio.Client, bucket string) *ObjectRepository {
	return &ObjectRepository{client: client, bucket: bucket}
}

// Get streams the object at key. The caller owns the returned reader.
func (r *ObjectRepository) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	// GetObject defers the request until the first read, so a missing
	// key would only surface mid-stream; Stat first to report absence
	// up front.
	if _, err := r.client.StatObject(ctx, r.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}

	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}
