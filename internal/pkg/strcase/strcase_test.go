package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"Name":           "name",
		"MaxRetries":     "max_retries",
		"OTLPEndpoint":   "otlp_endpoint",
		"userID":         "user_id",
		"HTTPServer":     "http_server",
		"Timeout2Second": "timeout2_second",
		"already_snake":  "already_snake",
	}
	for in, want := range tests {
		assert.Equal(t, want, ToLowerSnake(in), in)
	}
}

func TestToKey(t *testing.T) {
	assert.Equal(t, "image.max_retries", ToKey("settings.Image.MaxRetries"))
	assert.Equal(t, "image.preload[1]", ToKey("settings.Image.Preload[1]"))
	assert.Equal(t, "storage.minio.endpoint", ToKey("settings.Storage.Minio.Endpoint"))
	assert.Equal(t, "max_goroutine", ToKey("MaxGoroutine"))
}
