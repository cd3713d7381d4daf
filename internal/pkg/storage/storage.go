// Package storage reads objects from S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
)

// Scheme is the URL scheme that addresses stored objects: s3://bucket/key.
const Scheme = "s3"

// Reader defines the read side of object storage.
type Reader interface {
	io.Closer

	// GetObject opens the object for reading. Callers must close the reader.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
	// StatObject returns object metadata without reading its contents.
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
}

// ObjectInfo describes object metadata.
type ObjectInfo struct {
	Bucket      string
	Key         string
	Size        int64
	ETag        string
	ContentType string
	UpdatedAt   time.Time
}

// ParseObjectURL splits s3://bucket/path/to/key into bucket and key.
func ParseObjectURL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", goerror.NewInvalidInput("storage: malformed object url", err)
	}
	if u.Scheme != Scheme {
		return "", "", goerror.NewInvalidInput(fmt.Sprintf("storage: scheme %q is not %q", u.Scheme, Scheme), nil)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", goerror.NewInvalidInput("storage: object url needs a bucket and a key", nil)
	}
	return u.Host, key, nil
}
