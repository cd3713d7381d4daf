package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
)

// MinIOAdapter implements Reader with the MinIO client, which speaks to MinIO
// and to any S3-compatible service, AWS S3 included.
type MinIOAdapter struct {
	client *minio.Client
}

// MinIOOptions configures MinIO client initialization.
type MinIOOptions struct {
	// Endpoint is the server address, e.g. "s3.amazonaws.com" or "minio:9000".
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
	Region       string
	// UseSSL toggles TLS.
	UseSSL bool
}

// NewMinIO constructs an adapter. No request is made until the first read.
func NewMinIO(opts MinIOOptions) (*MinIOAdapter, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}
	return &MinIOAdapter{client: client}, nil
}

// GetObject opens an object and returns it with its metadata.
func (m *MinIOAdapter) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, mapMinIOError(bucket, key, err)
	}

	// GetObject is lazy; Stat performs the request and surfaces missing keys.
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, ObjectInfo{}, mapMinIOError(bucket, key, err)
	}
	return obj, toObjectInfo(bucket, key, stat), nil
}

// StatObject returns metadata for an object.
func (m *MinIOAdapter) StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error) {
	stat, err := m.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, mapMinIOError(bucket, key, err)
	}
	return toObjectInfo(bucket, key, stat), nil
}

// Close releases adapter resources.
func (m *MinIOAdapter) Close() error {
	return nil
}

func mapMinIOError(bucket, key string, err error) error {
	resp := minio.ToErrorResponse(err)
	what := fmt.Sprintf("storage: %s/%s", bucket, key)
	switch {
	case resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket":
		return goerror.NewNotFound(what)
	case resp.StatusCode != 0:
		if mapped := goerror.FromHTTPStatus(resp.StatusCode, what); mapped != nil {
			return mapped
		}
	}
	if resp.StatusCode == 0 {
		return goerror.NewUnavailable(what, err)
	}
	return err
}

func toObjectInfo(bucket, key string, stat minio.ObjectInfo) ObjectInfo {
	return ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        stat.Size,
		ETag:        stat.ETag,
		ContentType: stat.ContentType,
		UpdatedAt:   stat.LastModified,
	}
}
