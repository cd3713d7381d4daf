package config

import (
	"io"
	"time"
)

// Config is the read-only view of the toolkit configuration. Missing keys and
// values that cannot be converted yield the zero value of the requested type.
type Config interface {
	io.Closer

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool
	// GetString returns the value for key as a string.
	GetString(key string) string
	// GetInt returns the value for key as an int.
	GetInt(key string) int
	// GetUint returns the value for key as a uint.
	GetUint(key string) uint
	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetMillisecond reads an integer number of milliseconds.
	GetMillisecond(key string) time.Duration
	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration

	// GetArray returns a list value. Both YAML sequences and comma separated
	// strings ("a,b,c") are accepted; blank elements are dropped.
	GetArray(key string) []string
}
