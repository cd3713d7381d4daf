// Package bind builds tables of methods bound to their receiver, so they can
// be handed around and called by name detached from the value they belong to.
package bind

import (
	"fmt"
	"reflect"

	"github.com/samber/lo"
	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
)

// Bound holds method values of a single target, keyed by method name.
type Bound struct {
	target  any
	names   []string
	methods map[string]reflect.Value
}

// Bind resolves every named method of target. The method list is explicit:
// there is no inference of which methods to bind. Repeated names are bound
// once. Unknown or unexported names fail with a not-found error.
func Bind(target any, keys ...string) (*Bound, error) {
	if target == nil {
		return nil, goerror.NewInvalidInput("bind: target is nil", nil)
	}
	if len(keys) == 0 {
		return nil, goerror.NewInvalidInput("bind: no method names given", nil)
	}

	rv := reflect.ValueOf(target)
	names := lo.Uniq(keys)
	methods := make(map[string]reflect.Value, len(names))
	for _, name := range names {
		m := rv.MethodByName(name)
		if !m.IsValid() {
			return nil, goerror.NewNotFound(fmt.Sprintf("bind: %T has no method %q", target, name))
		}
		methods[name] = m
	}

	return &Bound{target: target, names: names, methods: methods}, nil
}

// Target returns the receiver every method is bound to.
func (b *Bound) Target() any {
	return b.target
}

// Names returns the bound method names in the order they were requested.
func (b *Bound) Names() []string {
	return append([]string(nil), b.names...)
}

// Func returns the bound method value, e.g. a func(string) error, ready to be
// type-asserted by the caller.
func (b *Bound) Func(name string) (any, bool) {
	m, ok := b.methods[name]
	if !ok {
		return nil, false
	}
	return m.Interface(), true
}

// Call invokes the named method with args and returns its results.
func (b *Bound) Call(name string, args ...any) ([]any, error) {
	m, ok := b.methods[name]
	if !ok {
		return nil, goerror.NewNotFound(fmt.Sprintf("bind: method %q is not bound", name))
	}

	mt := m.Type()
	if !mt.IsVariadic() && len(args) != mt.NumIn() || mt.IsVariadic() && len(args) < mt.NumIn()-1 {
		return nil, goerror.NewInvalidInput(fmt.Sprintf("bind: %s expects %d arguments, got %d", name, mt.NumIn(), len(args)), nil)
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		want := paramType(mt, i)
		if arg == nil {
			in[i] = reflect.Zero(want)
			continue
		}
		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(want) {
			return nil, goerror.NewInvalidInput(fmt.Sprintf("bind: %s argument %d is %T, want %s", name, i, arg, want), nil)
		}
		in[i] = av
	}

	out := m.Call(in)
	return lo.Map(out, func(v reflect.Value, _ int) any { return v.Interface() }), nil
}

func paramType(mt reflect.Type, i int) reflect.Type {
	if mt.IsVariadic() && i >= mt.NumIn()-1 {
		return mt.In(mt.NumIn() - 1).Elem()
	}
	return mt.In(i)
}
