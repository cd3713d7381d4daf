package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/webkit/internal/pkg/promise.Go[...].func1.1()
	/src/webkit/internal/pkg/promise/future.go:88 +0x45
panic({0x1234, 0x5678})
	/usr/local/go/src/runtime/panic.go:785 +0x132
github.com/shandysiswandi/webkit/internal/utils.(*Utils).LoadImage(...)
	/src/webkit/internal/utils/utils.go:120
`

func TestInternalPaths(t *testing.T) {
	got := InternalPaths([]byte(sample))
	assert.Equal(t, []string{
		"internal/pkg/promise/future.go:88",
		"internal/utils/utils.go:120",
	}, got)
}

func TestInternalPaths_None(t *testing.T) {
	assert.Empty(t, InternalPaths([]byte("goroutine 1 [running]:\nmain.main()\n\t/tmp/main.go:3 +0x1\n")))
}

func TestCurrent(t *testing.T) {
	assert.NotEmpty(t, Current())
}
