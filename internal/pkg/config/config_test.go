package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: webkit
  max_goroutine: 8
locale:
  default: ru
image:
  timeout_seconds: 5
  backoff_millis: 150
  max_retries: 2
  preload:
    - https://cdn.example.com/a.png
    - " "
    - https://cdn.example.com/b.png
instrument:
  log_mask_fields: "password, token,"
  trace_sample_ratio: 0.5
storage:
  enabled: true
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)
	defer cfg.Close()

	assert.Equal(t, "webkit", cfg.GetString("app.name"))
	assert.Equal(t, 8, cfg.GetInt("app.max_goroutine"))
	assert.Equal(t, uint(2), cfg.GetUint("image.max_retries"))
	assert.Equal(t, 5*time.Second, cfg.GetSecond("image.timeout_seconds"))
	assert.Equal(t, 150*time.Millisecond, cfg.GetMillisecond("image.backoff_millis"))
	assert.InDelta(t, 0.5, cfg.GetFloat64("instrument.trace_sample_ratio"), 1e-9)
	assert.True(t, cfg.GetBool("storage.enabled"))
	assert.Equal(t, []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"}, cfg.GetArray("image.preload"))
	assert.Equal(t, []string{"password", "token"}, cfg.GetArray("instrument.log_mask_fields"))
	assert.Nil(t, cfg.GetArray("missing.key"))
}

func TestNewViperFromBytes_Errors(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sampleYAML))
	assert.Error(t, err)

	_, err = NewViperFromBytes("yaml", []byte("app: [unclosed"))
	assert.Error(t, err)
}

func TestNewViper_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(sampleYAML), 0o600))

	cfg, err := NewViper(file)
	require.NoError(t, err)
	assert.Equal(t, "ru", cfg.GetString("locale.default"))

	_, err = NewViper(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestViper_EnvOverride(t *testing.T) {
	t.Setenv("WEBKIT_LOCALE_DEFAULT", "de")

	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.GetString("locale.default"))
}
