package app

import (
	"fmt"
	"sync"

	"github.com/shandysiswandi/webkit/internal/utils"
)

// Registry holds the initialized modules by name.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]any
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]any)}
}

// Register adds module under name. Names are unique.
func (r *Registry) Register(name string, module any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.modules[name]; ok {
		return fmt.Errorf("module %q already registered", name)
	}
	r.modules[name] = module
	return nil
}

// Get returns the module registered under name.
func (r *Registry) Get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[name]
	return m, ok
}

// Lookup returns the module registered under name when it has type T.
func Lookup[T any](r *Registry, name string) (T, bool) {
	m, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := m.(T)
	return t, ok
}

func (a *App) initModules() error {
	u, err := utils.New(utils.Dependency{
		Clock:   a.clock,
		Numbers: a.numbers,
		Images:  a.images,
	})
	if err != nil {
		return fmt.Errorf("module %s: %w", utils.Name, err)
	}
	return a.registry.Register(utils.Name, u)
}

// Utils returns the registered helper service.
func (a *App) Utils() *utils.Utils {
	u, _ := Lookup[*utils.Utils](a.registry, utils.Name)
	return u
}
