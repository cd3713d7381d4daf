package imageload

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
	"github.com/shandysiswandi/webkit/internal/pkg/instrument"
	"github.com/shandysiswandi/webkit/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

type fixture struct {
	server   *httptest.Server
	failures atomic.Int32
	hits     atomic.Int32
	hangs    atomic.Int32
	hangHits atomic.Int32
}

func newFixture(t *testing.T, failFirst int32) *fixture {
	t.Helper()
	img := pngBytes(t, 3, 2)
	f := &fixture{}
	f.failures.Store(failFirst)

	mux := http.NewServeMux()
	mux.HandleFunc("/ok.png", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		if f.failures.Add(-1) >= 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(img)
	})
	mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("definitely not an image"))
	})
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	mux.HandleFunc("/stall.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(img[:8])
		if fl, ok := w.(http.Flusher); ok {
			fl.Flush()
		}
		<-r.Context().Done()
	})
	mux.HandleFunc("/hang-first.png", func(w http.ResponseWriter, r *http.Request) {
		f.hangHits.Add(1)
		if f.hangs.Add(-1) >= 0 {
			<-r.Context().Done()
			return
		}
		_, _ = w.Write(img)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func newLoader(f *fixture, cfg Config, objects storage.Reader) *Loader {
	sources := map[string]Source{
		"http":  NewHTTPSource(f.server.Client()),
		"HTTPS": NewHTTPSource(f.server.Client()),
	}
	if objects != nil {
		sources["s3"] = NewStorageSource(objects)
	}
	return New(cfg, instrument.NewNoop(), sources)
}

func await(t *testing.T, l *Loader, url string) (Image, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return l.Load(ctx, url).Await(ctx)
}

func TestLoader_LoadHTTP(t *testing.T) {
	f := newFixture(t, 0)
	l := newLoader(f, Config{}, nil)

	img, err := await(t, l, f.server.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, int64(len(pngBytes(t, 3, 2))), img.Bytes)
	assert.Equal(t, f.server.URL+"/ok.png", img.URL)
}

func TestLoader_RetriesTransientFailures(t *testing.T) {
	f := newFixture(t, 2)
	l := newLoader(f, Config{MaxRetries: 3, Backoff: time.Millisecond}, nil)

	_, err := await(t, l, f.server.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, int32(3), f.hits.Load())
}

func TestLoader_GivesUpAfterMaxRetries(t *testing.T) {
	f := newFixture(t, 10)
	l := newLoader(f, Config{MaxRetries: 1, Backoff: time.Millisecond}, nil)

	_, err := await(t, l, f.server.URL+"/ok.png")
	assert.Equal(t, goerror.CodeUnavailable, goerror.CodeOf(err))
	assert.Equal(t, int32(2), f.hits.Load())
}

func TestLoader_Errors(t *testing.T) {
	f := newFixture(t, 0)
	l := newLoader(f, Config{MaxRetries: 2, Backoff: time.Millisecond, Timeout: 50 * time.Millisecond}, nil)

	tests := []struct {
		name string
		url  string
		code goerror.Code
	}{
		{"not found", f.server.URL + "/missing.png", goerror.CodeNotFound},
		{"not an image", f.server.URL + "/text", goerror.CodeInvalidFormat},
		{"unknown scheme", "ftp://example.com/a.png", goerror.CodeInvalidInput},
		{"malformed", "http://[::1", goerror.CodeInvalidInput},
		{"no storage configured", "s3://bucket/a.png", goerror.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := await(t, l, tt.url)
			require.Error(t, err)
			assert.Equal(t, tt.code, goerror.CodeOf(err))
		})
	}

	t.Run("timeout", func(t *testing.T) {
		_, err := await(t, l, f.server.URL+"/slow.png")
		require.Error(t, err)
		assert.Equal(t, goerror.CodeTimeout, goerror.CodeOf(err))
	})

	t.Run("timeout while decoding", func(t *testing.T) {
		_, err := await(t, l, f.server.URL+"/stall.png")
		require.Error(t, err)
		assert.Equal(t, goerror.CodeTimeout, goerror.CodeOf(err))
	})
}

func TestLoader_RetriesTimedOutAttempt(t *testing.T) {
	f := newFixture(t, 0)
	f.hangs.Store(1)
	l := newLoader(f, Config{Timeout: 50 * time.Millisecond, MaxRetries: 3, Backoff: time.Millisecond}, nil)

	img, err := await(t, l, f.server.URL+"/hang-first.png")
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, int32(2), f.hangHits.Load())
}

func TestLoader_LoadFromStorage(t *testing.T) {
	f := newFixture(t, 0)
	mem := storage.NewMemory()
	mem.Put("assets", "img/logo.png", pngBytes(t, 5, 4))
	l := newLoader(f, Config{}, mem)

	img, err := await(t, l, "s3://assets/img/logo.png")
	require.NoError(t, err)
	assert.Equal(t, 5, img.Width)
	assert.Equal(t, 4, img.Height)

	_, err = await(t, l, "s3://assets/img/missing.png")
	assert.Equal(t, goerror.CodeNotFound, goerror.CodeOf(err))
}

func TestLoader_Preload(t *testing.T) {
	f := newFixture(t, 0)
	l := newLoader(f, Config{MaxConcurrent: 2}, nil)

	err := l.Preload(context.Background(), f.server.URL+"/ok.png", f.server.URL+"/ok.png", f.server.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, int32(3), f.hits.Load())

	err = l.Preload(context.Background(), f.server.URL+"/ok.png", f.server.URL+"/missing.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}
