package app

import (
	"time"

	"github.com/shandysiswandi/webkit/internal/pkg/config"
	"github.com/shandysiswandi/webkit/internal/pkg/validator"
)

// settings is the typed view of the configuration. Field names follow the
// config keys so validation errors name the offending key.
type settings struct {
	App struct {
		Name         string
		TZ           string `validate:"omitempty,timezone"`
		MaxGoroutine int    `validate:"gte=0"`
	}
	Locale struct {
		Default string
	}
	Instrument struct {
		Enabled               bool
		ServiceName           string
		ServiceVersion        string
		Env                   string
		OTLPEndpoint          string `validate:"required_if=Enabled true"`
		OTLPSecure            bool
		TraceSampleRatio      float64 `validate:"gte=0,lte=1"`
		MetricIntervalSeconds time.Duration
		LogLevel              string `validate:"omitempty,oneof=debug info warn error"`
		LogMaskFields         []string
	}
	Image struct {
		TimeoutSeconds time.Duration `validate:"gte=0"`
		MaxRetries     uint          `validate:"lte=10"`
		BackoffMillis  time.Duration `validate:"gte=0"`
		Preload        []string      `validate:"dive,imageurl"`
	}
	Storage struct {
		Enabled bool
		Minio   struct {
			Endpoint     string `validate:"omitempty,hostname_port"`
			AccessKey    string
			SecretKey    string
			SessionToken string
			Region       string
			UseSSL       bool
		}
	}
}

func loadSettings(cfg config.Config, v validator.Validator) (*settings, error) {
	s := &settings{}

	s.App.Name = cfg.GetString("app.name")
	s.App.TZ = cfg.GetString("app.tz")
	s.App.MaxGoroutine = cfg.GetInt("app.max_goroutine")

	s.Locale.Default = cfg.GetString("locale.default")

	s.Instrument.Enabled = cfg.GetBool("instrument.enabled")
	s.Instrument.ServiceName = cfg.GetString("instrument.service_name")
	s.Instrument.ServiceVersion = cfg.GetString("instrument.service_version")
	s.Instrument.Env = cfg.GetString("instrument.env")
	s.Instrument.OTLPEndpoint = cfg.GetString("instrument.otlp_endpoint")
	s.Instrument.OTLPSecure = cfg.GetBool("instrument.otlp_secure")
	s.Instrument.TraceSampleRatio = cfg.GetFloat64("instrument.trace_sample_ratio")
	s.Instrument.MetricIntervalSeconds = cfg.GetSecond("instrument.metric_interval_seconds")
	s.Instrument.LogLevel = cfg.GetString("instrument.log_level")
	s.Instrument.LogMaskFields = cfg.GetArray("instrument.log_mask_fields")

	s.Image.TimeoutSeconds = cfg.GetSecond("image.timeout_seconds")
	s.Image.MaxRetries = cfg.GetUint("image.max_retries")
	s.Image.BackoffMillis = cfg.GetMillisecond("image.backoff_millis")
	s.Image.Preload = cfg.GetArray("image.preload")

	s.Storage.Enabled = cfg.GetBool("storage.enabled")
	s.Storage.Minio.Endpoint = cfg.GetString("storage.minio.endpoint")
	s.Storage.Minio.AccessKey = cfg.GetString("storage.minio.access_key")
	s.Storage.Minio.SecretKey = cfg.GetString("storage.minio.secret_key")
	s.Storage.Minio.SessionToken = cfg.GetString("storage.minio.session_token")
	s.Storage.Minio.Region = cfg.GetString("storage.minio.region")
	s.Storage.Minio.UseSSL = cfg.GetBool("storage.minio.use_ssl")

	if err := v.Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}
