package sliceutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToArray_SameSlice(t *testing.T) {
	in := []int{1, 2}
	got := ToArray[int](in)

	assert.Equal(t, []int{1, 2}, got)
	got[0] = 9
	assert.Equal(t, 9, in[0], "the input slice is returned, not a copy")
}

func TestToArray_Wraps(t *testing.T) {
	assert.Equal(t, []int{5}, ToArray[int](5))
	assert.Equal(t, []string{"a"}, ToArray[string]("a"))
	assert.Equal(t, []any{map[string]int{"k": 1}}, ToArray[any](map[string]int{"k": 1}))
}

func TestToArray_OtherSequences(t *testing.T) {
	assert.Equal(t, []any{1, 2, 3}, ToArray[any]([]int{1, 2, 3}))
	assert.Equal(t, []string{"x", "y"}, ToArray[string]([2]string{"x", "y"}))
}

func TestToArray_Nil(t *testing.T) {
	assert.Nil(t, ToArray[int](nil))
	assert.Nil(t, ToArray[int]("not an int"))
}
