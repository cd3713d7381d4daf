// Package sliceutil holds small slice helpers.
package sliceutil

import (
	"reflect"

	"github.com/samber/lo"
)

// ToArray returns some unchanged when it already is a []T, copies the elements
// of any other slice or array whose elements are assignable to T, and wraps
// every other T in a one-element slice. nil yields nil; a value that is not a
// T yields nil as well.
func ToArray[T any](some any) []T {
	switch v := some.(type) {
	case nil:
		return nil
	case []T:
		return v
	}

	rv := reflect.ValueOf(some)
	if k := rv.Kind(); k == reflect.Slice || k == reflect.Array {
		target := reflect.TypeFor[T]()
		if rv.Type().Elem().AssignableTo(target) {
			return lo.Times(rv.Len(), func(i int) T {
				return rv.Index(i).Interface().(T)
			})
		}
	}

	if v, ok := some.(T); ok {
		return []T{v}
	}
	return nil
}
