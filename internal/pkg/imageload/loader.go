package imageload

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
	"github.com/shandysiswandi/webkit/internal/pkg/goroutine"
	"github.com/shandysiswandi/webkit/internal/pkg/instrument"
	"github.com/shandysiswandi/webkit/internal/pkg/promise"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const scope = "imageload"

// Image describes a fetched image.
type Image struct {
	URL    string
	Format string
	Width  int
	Height int
	Bytes  int64
}

// Config tunes loading.
type Config struct {
	// Timeout bounds a single attempt. Zero means no per-attempt timeout.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts after a transient failure.
	MaxRetries uint64
	// Backoff is the first retry delay; it doubles on every retry.
	Backoff time.Duration
	// MaxConcurrent bounds Preload fan-out. Non-positive uses the goroutine default.
	MaxConcurrent int
}

// Loader fetches images through scheme-specific sources.
type Loader struct {
	cfg      Config
	sources  map[string]Source
	tracer   trace.Tracer
	loads    metric.Int64Counter
	duration metric.Float64Histogram
}

// New builds a Loader. sources maps a URL scheme ("http", "https", "s3") to
// the Source serving it.
func New(cfg Config, ins instrument.Instrumentation, sources map[string]Source) *Loader {
	if cfg.Backoff <= 0 {
		cfg.Backoff = 100 * time.Millisecond
	}
	if ins == nil {
		ins = instrument.NewNoop()
	}

	meter := ins.Meter(scope)
	loads, err := meter.Int64Counter("image.load.count", metric.WithDescription("Number of image loads by result"))
	if err != nil {
		slog.Error("failed to create image load counter", "error", err)
	}
	duration, err := meter.Float64Histogram("image.load.duration", metric.WithDescription("Image load duration in milliseconds"))
	if err != nil {
		slog.Error("failed to create image load histogram", "error", err)
	}

	srcs := make(map[string]Source, len(sources))
	for scheme, src := range sources {
		srcs[strings.ToLower(scheme)] = src
	}

	return &Loader{
		cfg:      cfg,
		sources:  srcs,
		tracer:   ins.Tracer(scope),
		loads:    loads,
		duration: duration,
	}
}

// Load starts fetching rawURL and returns a future that fulfils with the image
// header data or rejects with the load error.
func (l *Loader) Load(ctx context.Context, rawURL string) *promise.Future[Image] {
	return promise.Go(ctx, func(ctx context.Context) (Image, error) {
		return l.load(ctx, rawURL)
	})
}

// Preload loads every URL with bounded concurrency and returns all failures
// joined together.
func (l *Loader) Preload(ctx context.Context, urls ...string) error {
	ctx = instrument.EnsureCorrelationID(ctx)
	mgr := goroutine.NewManager(l.cfg.MaxConcurrent)
	for _, u := range urls {
		mgr.Go(ctx, func(ctx context.Context) error {
			_, err := l.load(ctx, u)
			return err
		})
	}

	err := mgr.Wait()
	if err != nil {
		slog.WarnContext(ctx, "image preload finished with errors", "count", len(urls), "error", err)
	} else {
		slog.InfoContext(ctx, "image preload finished", "count", len(urls))
	}
	return err
}

func (l *Loader) load(ctx context.Context, rawURL string) (img Image, err error) {
	ctx, span := l.tracer.Start(ctx, "Load", trace.WithAttributes(attribute.String("image.url", rawURL)))
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		attrs := metric.WithAttributes(attribute.String("result", result))
		if l.loads != nil {
			l.loads.Add(ctx, 1, attrs)
		}
		if l.duration != nil {
			l.duration.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)
		}
		span.End()
	}()

	src, err := l.source(rawURL)
	if err != nil {
		return Image{}, err
	}

	b := retry.WithMaxRetries(l.cfg.MaxRetries, retry.NewExponential(l.cfg.Backoff))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		var ferr error
		img, ferr = l.fetch(ctx, src, rawURL)
		if goerror.IsRetryable(ferr) {
			slog.DebugContext(ctx, "image load attempt failed, retrying", "url", rawURL, "error", ferr)
			return retry.RetryableError(ferr)
		}
		return ferr
	})
	if err != nil {
		return Image{}, err
	}
	return img, nil
}

func (l *Loader) source(rawURL string) (Source, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, goerror.NewInvalidInput("imageload: malformed url", err)
	}
	src, ok := l.sources[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, goerror.NewInvalidInput(fmt.Sprintf("imageload: no source for scheme %q", u.Scheme), nil)
	}
	return src, nil
}

// fetch runs one attempt bounded by Config.Timeout. An attempt that runs out
// of time while ctx is still live is reported as a retryable timeout.
func (l *Loader) fetch(ctx context.Context, src Source, rawURL string) (Image, error) {
	if l.cfg.Timeout <= 0 {
		return read(ctx, src, rawURL)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	img, err := read(attemptCtx, src, rawURL)
	if err != nil && ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return Image{}, goerror.NewTimeout(fmt.Sprintf("imageload: %s timed out after %s", rawURL, l.cfg.Timeout), err)
	}
	return img, err
}

func read(ctx context.Context, src Source, rawURL string) (Image, error) {
	rc, err := src.Open(ctx, rawURL)
	if err != nil {
		return Image{}, err
	}
	defer rc.Close()

	cr := &countingReader{r: rc}
	cfg, format, err := image.DecodeConfig(cr)
	if err != nil {
		if ctx.Err() != nil {
			return Image{}, ctx.Err()
		}
		return Image{}, goerror.NewInvalidFormat("imageload: "+rawURL+" is not a supported image", err)
	}
	if _, err := io.Copy(io.Discard, cr); err != nil {
		return Image{}, goerror.NewUnavailable("imageload: reading "+rawURL, err)
	}

	return Image{URL: rawURL, Format: format, Width: cfg.Width, Height: cfg.Height, Bytes: cr.n}, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
