package stacktrace

import (
	"runtime/debug"
	"strings"
)

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a raw goroutine stack, innermost first.
func InternalPaths(stack []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "/") && !strings.Contains(line, ":/") {
			continue
		}

		loc, _, _ := strings.Cut(line, " +0x")
		_, rel, found := strings.Cut(loc, "/internal/")
		if !found || !strings.Contains(rel, ".go:") {
			continue
		}
		paths = append(paths, "internal/"+rel)
	}
	return paths
}

// Current returns the internal frames of the calling goroutine, or the whole
// stack when none of them is internal.
func Current() []string {
	stack := debug.Stack()
	if paths := InternalPaths(stack); len(paths) > 0 {
		return paths
	}
	return []string{string(stack)}
}
