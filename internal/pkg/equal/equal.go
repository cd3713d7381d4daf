// Package equal compares values by walking their leaf paths.
package equal

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/samber/lo"
)

const maxDepth = 64

// Path is a route of map keys, exported field names, and indices into a value.
type Path []string

// String renders the path with dots, e.g. "items.0.name".
func (p Path) String() string {
	return strings.Join(p, ".")
}

type mapEntry struct {
	name string
	typ  string
	key  reflect.Value
}

type leaf struct {
	path  Path
	value reflect.Value
}

// Paths lists the leaf paths of v depth first. Map keys are visited in the
// order of their printed form, struct fields in declaration order (exported
// fields only), and slice or array elements by index. Empty containers and
// structs without exported fields are leaves. A scalar v has a single empty
// path.
func Paths(v any) []Path {
	return lo.Map(leaves(v), func(l leaf, _ int) Path { return l.path })
}

func leaves(v any) []leaf {
	var out []leaf
	walk(reflect.ValueOf(v), nil, 0, &out)
	return out
}

func walk(rv reflect.Value, prefix Path, depth int, out *[]leaf) {
	rv = indirect(rv)
	if depth >= maxDepth {
		*out = append(*out, leaf{path: prefix, value: rv})
		return
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			*out = append(*out, leaf{path: prefix, value: rv})
			return
		}
		if rv.Kind() == reflect.Map {
			for _, e := range sortedEntries(rv) {
				walk(rv.MapIndex(e.key), extend(prefix, e.name), depth+1, out)
			}
			return
		}
		for i := 0; i < rv.Len(); i++ {
			walk(rv.Index(i), extend(prefix, strconv.Itoa(i)), depth+1, out)
		}
	case reflect.Struct:
		fields := exportedFields(rv.Type())
		if len(fields) == 0 {
			*out = append(*out, leaf{path: prefix, value: rv})
			return
		}
		for _, f := range fields {
			walk(rv.FieldByIndex(f.Index), extend(prefix, f.Name), depth+1, out)
		}
	default:
		*out = append(*out, leaf{path: prefix, value: rv})
	}
}

// Get returns the value found at p inside v. Map keys that print alike, such
// as 1 and "1" in a map[any]any, resolve to the first one in visiting order.
func Get(v any, p Path) (any, bool) {
	rv := reflect.ValueOf(v)
	for _, seg := range p {
		rv = indirect(rv)
		switch rv.Kind() {
		case reflect.Map:
			e, ok := lo.Find(sortedEntries(rv), func(e mapEntry) bool { return e.name == seg })
			if !ok {
				return nil, false
			}
			rv = rv.MapIndex(e.key)
		case reflect.Slice, reflect.Array:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= rv.Len() {
				return nil, false
			}
			rv = rv.Index(i)
		case reflect.Struct:
			f, ok := rv.Type().FieldByName(seg)
			if !ok || !f.IsExported() {
				return nil, false
			}
			rv = rv.FieldByIndex(f.Index)
		default:
			return nil, false
		}
	}

	rv = indirect(rv)
	if !rv.IsValid() {
		return nil, true
	}
	return rv.Interface(), true
}

// IsEqual reports whether a and b are equal.
//
// Operands of different classes (nil, bool, number, string, function, object)
// are never equal. Scalars compare with ==. Objects (maps, structs, slices,
// arrays, and pointers to them) are equal when both yield the same number of
// leaf paths, the paths match pairwise in order, and the leaf values are equal.
// Functions are equal only to themselves.
// Because struct fields are walked in declaration order, two struct types with
// the same fields declared in a different order are not equal.
func IsEqual(a, b any) bool {
	ca, cb := class(a), class(b)
	if ca != cb {
		return false
	}
	if ca != "object" {
		return leafEqual(deref(a), deref(b))
	}

	la, lb := leaves(a), leaves(b)
	if len(la) != len(lb) {
		return false
	}
	for i := range la {
		if la[i].path.String() != lb[i].path.String() {
			return false
		}
		if !leafEqual(valueOf(la[i].value), valueOf(lb[i].value)) {
			return false
		}
	}
	return true
}

// IsEqualJSON reports whether two JSON documents are semantically equal,
// ignoring object key order and insignificant whitespace.
func IsEqualJSON(a, b []byte) bool {
	return jsonpatch.Equal(a, b)
}

func class(v any) string {
	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Invalid:
		return "nil"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Func:
		return "function"
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return "object"
	default:
		return rv.Kind().String()
	}
}

func leafEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	switch va.Kind() {
	case reflect.Func:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Map, reflect.Slice:
		if va.Len() == 0 && vb.Len() == 0 {
			return true
		}
	}
	return reflect.DeepEqual(a, b)
}

func valueOf(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}

func deref(v any) any {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func extend(p Path, seg string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, seg)
}

func sortedEntries(rv reflect.Value) []mapEntry {
	entries := lo.Map(rv.MapKeys(), func(k reflect.Value, _ int) mapEntry {
		return mapEntry{name: fmt.Sprint(k.Interface()), typ: fmt.Sprintf("%T", k.Interface()), key: k}
	})
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].name != entries[j].name {
			return entries[i].name < entries[j].name
		}
		return entries[i].typ < entries[j].typ
	})
	return entries
}

func exportedFields(t reflect.Type) []reflect.StructField {
	fields := make([]reflect.StructField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.IsExported() {
			fields = append(fields, f)
		}
	}
	return fields
}
