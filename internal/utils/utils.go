// Package utils is the helper service handed to application modules. It
// gathers the moment, promise, equality, binding, number, image and slice
// helpers behind a single value built from its dependencies.
package utils

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/webkit/internal/pkg/bind"
	"github.com/shandysiswandi/webkit/internal/pkg/clock"
	"github.com/shandysiswandi/webkit/internal/pkg/equal"
	"github.com/shandysiswandi/webkit/internal/pkg/imageload"
	"github.com/shandysiswandi/webkit/internal/pkg/moment"
	"github.com/shandysiswandi/webkit/internal/pkg/number"
	"github.com/shandysiswandi/webkit/internal/pkg/promise"
	"github.com/shandysiswandi/webkit/internal/pkg/sliceutil"
)

// Name is the key the service is registered under.
const Name = "utils"

// Dependency lists what the service needs.
type Dependency struct {
	Clock   clock.Clocker
	Numbers *number.Formatter
	Images  *imageload.Loader
}

// Utils exposes the helpers.
type Utils struct {
	clock   clock.Clocker
	numbers *number.Formatter
	images  *imageload.Loader
}

// New validates dep and builds the service.
func New(dep Dependency) (*Utils, error) {
	if dep.Numbers == nil {
		return nil, errors.New("utils: number formatter is required")
	}
	if dep.Images == nil {
		return nil, errors.New("utils: image loader is required")
	}
	if dep.Clock == nil {
		dep.Clock = clock.New()
	}

	return &Utils{
		clock:   dep.Clock,
		numbers: dep.Numbers,
		images:  dep.Images,
	}, nil
}

// Moment returns the current instant.
func (u *Utils) Moment() moment.Moment {
	return moment.Now(u.clock)
}

// MomentAt wraps t; the zero time means now.
func (u *Utils) MomentAt(t time.Time) moment.Moment {
	if t.IsZero() {
		return u.Moment()
	}
	return moment.New(t)
}

// MomentFromMillis wraps epoch milliseconds; 0 means now.
func (u *Utils) MomentFromMillis(ms int64) moment.Moment {
	if ms == 0 {
		return u.Moment()
	}
	return moment.FromMillis(ms)
}

// When adapts a future, a thenable or a plain value into a future.
func (u *Utils) When(data any) *promise.Future[any] {
	return promise.When[any](data)
}

// WhenAll adapts every item with When and joins them fail-fast.
func (u *Utils) WhenAll(ctx context.Context, items ...any) *promise.Future[[]any] {
	futures := make([]*promise.Future[any], len(items))
	for i, item := range items {
		futures[i] = promise.When[any](item)
	}
	return promise.WhenAll(ctx, futures...)
}

// Resolve settles with a tagged Result and never rejects.
func (u *Utils) Resolve(ctx context.Context, p any) *promise.Future[promise.Result[any]] {
	return promise.Resolve[any](ctx, promise.When[any](p))
}

// IsEqual reports structural equality; see equal.IsEqual.
func (u *Utils) IsEqual(a, b any) bool {
	return equal.IsEqual(a, b)
}

// Bind binds the named methods of target.
func (u *Utils) Bind(target any, keys ...string) (*bind.Bound, error) {
	return bind.Bind(target, keys...)
}

// ParseNiceNumber parses loosely formatted numeric input; garbage is 0.
func (u *Utils) ParseNiceNumber(data any) float64 {
	return number.ParseNice(data)
}

// GetNiceNumber renders num in the active language with at least precision
// fraction digits.
func (u *Utils) GetNiceNumber(num any, precision int) string {
	return u.numbers.Nice(num, precision)
}

// SetLanguage switches the language used by GetNiceNumber.
func (u *Utils) SetLanguage(lang string) error {
	return u.numbers.SetLanguage(lang)
}

// Language returns the language used by GetNiceNumber.
func (u *Utils) Language() string {
	return u.numbers.Language()
}

// LoadImage fetches the image at url; the future rejects on load errors.
func (u *Utils) LoadImage(ctx context.Context, url string) *promise.Future[imageload.Image] {
	return u.images.Load(ctx, url)
}

// PreloadImages loads every url and reports all failures together.
func (u *Utils) PreloadImages(ctx context.Context, urls ...string) error {
	return u.images.Preload(ctx, urls...)
}

// ToArray returns slices as they are and wraps anything else.
func (u *Utils) ToArray(some any) []any {
	return sliceutil.ToArray[any](some)
}
