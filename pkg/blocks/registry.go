package blocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

// Definition describes one field type offered by the palette. Defaults builds
// a fresh properties value every call so blocks never share slices.
type Definition struct {
	Type     model.FieldType
	Name     string
	Label    string
	Icon     string
	Defaults func() model.Properties
}

// Registry tracks field type definitions keyed by type. Catalog order is the
// registration order.
type Registry struct {
	mu          sync.RWMutex
	definitions map[model.FieldType]Definition
	order       []model.FieldType
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		definitions: make(map[model.FieldType]Definition),
	}
}

// Clone returns a copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for _, fieldType := range r.order {
		cloned.definitions[fieldType] = r.definitions[fieldType]
		cloned.order = append(cloned.order, fieldType)
	}
	return cloned
}

// Register associates a definition with its type. Existing entries are
// replaced in place, keeping their catalog position.
func (r *Registry) Register(definition Definition) error {
	fieldType := model.FieldType(strings.TrimSpace(string(definition.Type)))
	if fieldType == "" {
		return fmt.Errorf("blocks: definition type is required")
	}
	if definition.Defaults == nil {
		return fmt.Errorf("blocks: defaults for %q are nil", fieldType)
	}
	if defaults := definition.Defaults(); defaults == nil || defaults.FieldType() != fieldType {
		return fmt.Errorf("blocks: defaults for %q produce a mismatched properties variant", fieldType)
	}
	definition.Type = fieldType
	if strings.TrimSpace(definition.Name) == "" {
		definition.Name = string(fieldType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[fieldType]; !exists {
		r.order = append(r.order, fieldType)
	}
	r.definitions[fieldType] = definition
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(definition Definition) {
	if err := r.Register(definition); err != nil {
		panic(err)
	}
}

// Definition fetches a definition by type.
func (r *Registry) Definition(fieldType model.FieldType) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	definition, ok := r.definitions[fieldType]
	return definition, ok
}

// Types returns the registered types in catalog order.
func (r *Registry) Types() []model.FieldType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.FieldType(nil), r.order...)
}

// Definitions returns every definition in catalog order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, fieldType := range r.order {
		out = append(out, r.definitions[fieldType])
	}
	return out
}

// NewBlock builds an unplaced block (no ID, no tab) of the given type using
// the registered defaults. An empty name falls back to the definition name.
func (r *Registry) NewBlock(fieldType model.FieldType, name string) (model.Block, error) {
	definition, ok := r.Definition(fieldType)
	if !ok {
		return model.Block{}, fmt.Errorf("blocks: type %q not registered", fieldType)
	}
	if strings.TrimSpace(name) == "" {
		name = definition.Name
	}
	return model.Block{
		Type:       definition.Type,
		Name:       name,
		Label:      definition.Label,
		Icon:       definition.Icon,
		Properties: definition.Defaults(),
	}, nil
}
