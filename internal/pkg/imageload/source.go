package imageload

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
	"github.com/shandysiswandi/webkit/internal/pkg/storage"
)

// Source opens the bytes behind a URL.
type Source interface {
	Open(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// HTTPSource fetches images with plain GET requests.
type HTTPSource struct {
	client *http.Client
}

// NewHTTPSource returns an HTTPSource using client, or http.DefaultClient when nil.
func NewHTTPSource(client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{client: client}
}

// Open issues the GET request. Non-2xx answers are mapped to goerror codes;
// 5xx and 429 are retryable.
func (s *HTTPSource) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, goerror.NewInvalidInput("imageload: bad request url", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, goerror.NewUnavailable("imageload: "+rawURL, err)
	}

	if err := goerror.FromHTTPStatus(resp.StatusCode, fmt.Sprintf("imageload: GET %s", rawURL)); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		_ = resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// StorageSource reads s3://bucket/key URLs from object storage.
type StorageSource struct {
	reader storage.Reader
}

// NewStorageSource wraps an object storage reader.
func NewStorageSource(reader storage.Reader) *StorageSource {
	return &StorageSource{reader: reader}
}

// Open parses the object URL and opens the object.
func (s *StorageSource) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	bucket, key, err := storage.ParseObjectURL(rawURL)
	if err != nil {
		return nil, err
	}
	rc, _, err := s.reader.GetObject(ctx, bucket, key)
	return rc, err
}
