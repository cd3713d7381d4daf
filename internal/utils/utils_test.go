package utils

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/shandysiswandi/webkit/internal/pkg/clock"
	"github.com/shandysiswandi/webkit/internal/pkg/imageload"
	"github.com/shandysiswandi/webkit/internal/pkg/instrument"
	"github.com/shandysiswandi/webkit/internal/pkg/number"
	"github.com/shandysiswandi/webkit/internal/pkg/promise"
	"github.com/shandysiswandi/webkit/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 16, 9, 30, 15, 0, time.UTC)

func newUtils(t *testing.T) (*Utils, *storage.Memory) {
	t.Helper()

	numbers, err := number.NewFormatter("en")
	require.NoError(t, err)

	mem := storage.NewMemory()
	loader := imageload.New(imageload.Config{}, instrument.NewNoop(), map[string]imageload.Source{
		storage.Scheme: imageload.NewStorageSource(mem),
	})

	u, err := New(Dependency{Clock: clock.NewFixed(now), Numbers: numbers, Images: loader})
	require.NoError(t, err)
	return u, mem
}

func ctxT(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Dependency{})
	assert.Error(t, err)

	numbers, err := number.NewFormatter("en")
	require.NoError(t, err)
	_, err = New(Dependency{Numbers: numbers})
	assert.Error(t, err)
}

func TestUtils_Moment(t *testing.T) {
	u, _ := newUtils(t)

	assert.Equal(t, now.UnixMilli(), u.Moment().ValueOf())
	assert.Equal(t, now.UnixMilli(), u.MomentAt(time.Time{}).ValueOf())
	assert.Equal(t, now.UnixMilli(), u.MomentFromMillis(0).ValueOf())
	assert.Equal(t, int64(86_400_000), u.MomentFromMillis(86_400_000).ValueOf())

	m := u.MomentAt(now).AddDay(1).StartOfDay()
	assert.Equal(t, "17.10.2026 00:00", m.Format("DD.MM.YYYY hh:mm"))
	assert.Equal(t, now, u.MomentAt(now).Time())
}

func TestUtils_Promises(t *testing.T) {
	u, _ := newUtils(t)
	ctx := ctxT(t)

	v, err := u.When(3).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	all, err := u.WhenAll(ctx, 1, promise.Resolved("two"), u.When(3.0)).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{1, "two", 3.0}, all)

	reason := errors.New("p2 failed")
	_, err = u.WhenAll(ctx, promise.Resolved(1), promise.Rejected[int](reason)).Await(ctx)
	assert.Same(t, reason, err)

	r, err := u.Resolve(ctx, promise.Rejected[string](errors.New("err"))).Await(ctx)
	require.NoError(t, err)
	assert.False(t, r.State)
	assert.EqualError(t, r.Reason, "err")

	r, err = u.Resolve(ctx, promise.Resolved("data")).Await(ctx)
	require.NoError(t, err)
	assert.True(t, r.State)
	assert.Equal(t, "data", r.Data)
}

type greeter struct{ name string }

func (g *greeter) Hello() string { return "hello " + g.name }

func TestUtils_BindAndEqual(t *testing.T) {
	u, _ := newUtils(t)

	b, err := u.Bind(&greeter{name: "ana"}, "Hello")
	require.NoError(t, err)
	fn, ok := b.Func("Hello")
	require.True(t, ok)
	assert.Equal(t, "hello ana", fn.(func() string)())

	a := map[string]any{"a": 1, "b": []int{2}}
	assert.True(t, u.IsEqual(a, a))
	assert.True(t, u.IsEqual(map[string]any{"a": 1, "b": 2}, map[string]any{"b": 2, "a": 1}))
	assert.False(t, u.IsEqual(1, "1"))
}

func TestUtils_Numbers(t *testing.T) {
	u, _ := newUtils(t)

	assert.Equal(t, 1.5, u.ParseNiceNumber("1,5"))
	assert.Equal(t, 0.0, u.ParseNiceNumber("abc"))
	assert.Equal(t, 1000.25, u.ParseNiceNumber(" 1 000,25 "))
	assert.Equal(t, "1,000.25", u.GetNiceNumber(" 1 000,25 ", 2))

	require.NoError(t, u.SetLanguage("de"))
	assert.Equal(t, "de", u.Language())
	assert.Equal(t, "1.000,25", u.GetNiceNumber("1000,25", 2))
}

func TestUtils_ToArray(t *testing.T) {
	u, _ := newUtils(t)

	in := []any{1, 2}
	out := u.ToArray(in)
	out[0] = "changed"
	assert.Equal(t, "changed", in[0])
	assert.Equal(t, []any{5}, u.ToArray(5))
}

func TestUtils_Images(t *testing.T) {
	u, mem := newUtils(t)
	ctx := ctxT(t)

	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewGray(image.Rect(0, 0, 8, 6))))
	mem.Put("cdn", "a.png", buf.Bytes())

	img, err := u.LoadImage(ctx, "s3://cdn/a.png").Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Width)
	assert.Equal(t, 6, img.Height)

	_, err = u.LoadImage(ctx, "s3://cdn/b.png").Await(ctx)
	assert.Error(t, err)

	assert.NoError(t, u.PreloadImages(ctx, "s3://cdn/a.png"))
	assert.Error(t, u.PreloadImages(ctx, "s3://cdn/a.png", "s3://cdn/b.png"))
}
