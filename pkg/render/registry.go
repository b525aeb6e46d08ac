package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned when a lookup names an unregistered
// renderer.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry stores renderers by name. Names, aliases and extensions are
// matched case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	aliases   map[string]string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		aliases:   make(map[string]string),
	}
}

// Register adds a renderer by its Name(). A name already taken by another
// renderer or alias is an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := normalizeName(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(name) {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Alias makes alias resolve to the registered renderer target, so "xml" can
// stand in for "aem-xml" on the command line.
func (r *Registry) Alias(alias, target string) error {
	alias, target = normalizeName(alias), normalizeName(target)
	if alias == "" {
		return errors.New("render: alias is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.renderers[target]; !ok {
		return fmt.Errorf("%w: %q", ErrRendererNotFound, target)
	}
	if r.taken(alias) {
		return fmt.Errorf("render: alias %q already registered", alias)
	}
	r.aliases[alias] = target
	return nil
}

// Get retrieves a renderer by name or alias.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := normalizeName(name)
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	renderer, ok := r.renderers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// ForExtension finds the renderer whose FileExtension matches ext, with or
// without the leading dot. When several match, the first name in sorted
// order wins.
func (r *Registry) ForExtension(ext string) (Renderer, error) {
	want := "." + strings.TrimPrefix(normalizeName(ext), ".")

	for _, name := range r.List() {
		renderer, err := r.Get(name)
		if err != nil {
			continue
		}
		if strings.ToLower(renderer.FileExtension()) == want {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("%w: no renderer writes %q files", ErrRendererNotFound, want)
}

// List returns the sorted renderer names. Aliases are not listed.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a name or alias resolves to a renderer.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.renderers[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
