package clock

import (
	"sync"
	"time"
)

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current local time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current local time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// FixedClocker always reports the same instant until Set moves it.
type FixedClocker struct {
	mu sync.RWMutex
	at time.Time
}

// NewFixed returns a FixedClocker frozen at t.
func NewFixed(t time.Time) *FixedClocker {
	return &FixedClocker{at: t}
}

// Now returns the frozen instant.
func (f *FixedClocker) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.at
}

// Set moves the frozen instant.
func (f *FixedClocker) Set(t time.Time) {
	f.mu.Lock()
	f.at = t
	f.mu.Unlock()
}
