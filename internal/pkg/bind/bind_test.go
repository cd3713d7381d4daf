package bind

import (
	"strings"
	"testing"

	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	n int
}

func (c *counter) Inc()          { c.n++ }
func (c *counter) Add(d int) int { c.n += d; return c.n }
func (c *counter) Join(sep string, parts ...string) string {
	return strings.Join(parts, sep)
}

func TestBind_DetachedCallsKeepReceiver(t *testing.T) {
	c := &counter{}
	b, err := Bind(c, "Inc", "Add", "Inc")
	require.NoError(t, err)
	assert.Equal(t, []string{"Inc", "Add"}, b.Names())
	assert.Same(t, c, b.Target())

	fn, ok := b.Func("Inc")
	require.True(t, ok)
	inc := fn.(func())
	inc()
	inc()
	assert.Equal(t, 2, c.n)

	out, err := b.Call("Add", 3)
	require.NoError(t, err)
	assert.Equal(t, []any{5}, out)
}

func TestBind_SingleKey(t *testing.T) {
	b, err := Bind(&counter{}, "Add")
	require.NoError(t, err)
	assert.Equal(t, []string{"Add"}, b.Names())

	_, ok := b.Func("Inc")
	assert.False(t, ok)
}

func TestBind_Variadic(t *testing.T) {
	b, err := Bind(&counter{}, "Join")
	require.NoError(t, err)

	out, err := b.Call("Join", "-", "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, []any{"a-b-c"}, out)

	out, err = b.Call("Join", ",")
	require.NoError(t, err)
	assert.Equal(t, []any{""}, out)
}

func TestBind_Errors(t *testing.T) {
	_, err := Bind(nil, "Inc")
	assert.Equal(t, goerror.CodeInvalidInput, goerror.CodeOf(err))

	_, err = Bind(&counter{})
	assert.Equal(t, goerror.CodeInvalidInput, goerror.CodeOf(err))

	_, err = Bind(&counter{}, "Missing")
	assert.Equal(t, goerror.CodeNotFound, goerror.CodeOf(err))

	_, err = Bind(counter{}, "Inc")
	assert.Equal(t, goerror.CodeNotFound, goerror.CodeOf(err), "pointer methods are not in a value's method set")

	b, err := Bind(&counter{}, "Add")
	require.NoError(t, err)

	_, err = b.Call("Inc")
	assert.Equal(t, goerror.CodeNotFound, goerror.CodeOf(err))

	_, err = b.Call("Add")
	assert.Equal(t, goerror.CodeInvalidInput, goerror.CodeOf(err))

	_, err = b.Call("Add", "three")
	assert.Equal(t, goerror.CodeInvalidInput, goerror.CodeOf(err))
}
