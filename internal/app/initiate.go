package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shandysiswandi/webkit/internal/pkg/clock"
	"github.com/shandysiswandi/webkit/internal/pkg/goroutine"
	"github.com/shandysiswandi/webkit/internal/pkg/imageload"
	"github.com/shandysiswandi/webkit/internal/pkg/instrument"
	"github.com/shandysiswandi/webkit/internal/pkg/number"
	"github.com/shandysiswandi/webkit/internal/pkg/storage"
	"github.com/shandysiswandi/webkit/internal/pkg/validator"
)

func (a *App) initSettings() error {
	v, err := validator.NewV10Validator()
	if err != nil {
		return err
	}
	a.validator = v

	s, err := loadSettings(a.config, a.validator)
	if err != nil {
		return err
	}
	a.settings = s
	return nil
}

func (a *App) initTimezone() error {
	tz := strings.TrimSpace(a.settings.App.TZ)
	if tz == "" {
		return nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return err
	}
	time.Local = loc
	return nil
}

func (a *App) initInstrument() error {
	cfg := a.settings.Instrument
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = a.settings.App.Name
	}

	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          cfg.Enabled,
		ServiceName:      serviceName,
		ServiceVersion:   cfg.ServiceVersion,
		Environment:      cfg.Env,
		OTLPEndpoint:     cfg.OTLPEndpoint,
		OTLPSecure:       cfg.OTLPSecure,
		TraceSampleRatio: cfg.TraceSampleRatio,
		MetricsInterval:  cfg.MetricIntervalSeconds,
		LogLevel:         cfg.LogLevel,
		MaskFields:       cfg.LogMaskFields,
	})
	if err != nil {
		return err
	}
	a.ins = ins
	return nil
}

func (a *App) initLibraries() error {
	a.clock = clock.New()
	a.goroutine = goroutine.NewManager(a.settings.App.MaxGoroutine)

	numbers, err := number.NewFormatter(a.settings.Locale.Default)
	if err != nil {
		return err
	}
	a.numbers = numbers
	return nil
}

func (a *App) initStorage() error {
	if !a.settings.Storage.Enabled {
		return nil
	}

	cfg := a.settings.Storage.Minio
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return errors.New("storage.minio.endpoint is required when storage is enabled")
	}

	client, err := storage.NewMinIO(storage.MinIOOptions{
		Endpoint:     cfg.Endpoint,
		AccessKey:    cfg.AccessKey,
		SecretKey:    cfg.SecretKey,
		SessionToken: cfg.SessionToken,
		Region:       cfg.Region,
		UseSSL:       cfg.UseSSL,
	})
	if err != nil {
		return err
	}
	a.storage = client
	return nil
}

func (a *App) initImages() error {
	cfg := a.settings.Image
	httpSource := imageload.NewHTTPSource(&http.Client{Timeout: cfg.TimeoutSeconds})

	sources := map[string]imageload.Source{
		"http":  httpSource,
		"https": httpSource,
	}
	if a.storage != nil {
		sources[storage.Scheme] = imageload.NewStorageSource(a.storage)
	}

	a.images = imageload.New(imageload.Config{
		Timeout:       cfg.TimeoutSeconds,
		MaxRetries:    uint64(cfg.MaxRetries),
		Backoff:       cfg.BackoffMillis,
		MaxConcurrent: a.goroutine.Limit(),
	}, a.ins, sources)
	return nil
}

func (a *App) initClosers() {
	a.closers = []closer{
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				if a.ins == nil {
					return nil
				}
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Storage",
			fn: func(context.Context) error {
				if a.storage == nil {
					return nil
				}
				return a.storage.Close()
			},
		},
	}
}
