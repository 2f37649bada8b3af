package tools

import (
	"fmt"
	"strings"

	"github.com/harunnryd/saku/pkg/llm"
)

// Registry holds the spec and handler for every registered tool, keyed by
// name. It is built once at process start and read-only afterwards, so
// concurrent lookups from multiple conversations need no locking.
type Registry struct {
	order   []string
	entries map[string]entry
}

type entry struct {
	spec    Spec
	handler Handler
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a tool. A duplicate name fails with DuplicateToolError
// and leaves the registry unchanged.
func (r *Registry) Register(spec Spec, handler Handler) error {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return fmt.Errorf("tool spec is missing a name")
	}
	if handler == nil {
		return fmt.Errorf("tool %s is missing a handler", name)
	}
	for _, req := range spec.Required {
		if _, ok := spec.Params[req]; !ok {
			return fmt.Errorf("tool %s requires undeclared parameter %q", name, req)
		}
	}
	if _, exists := r.entries[name]; exists {
		return DuplicateToolError{Name: name}
	}
	r.entries[name] = entry{spec: spec, handler: handler}
	r.order = append(r.order, name)
	return nil
}

// Lookup resolves a tool name to its spec and handler.
func (r *Registry) Lookup(name string) (Spec, Handler, error) {
	e, ok := r.entries[name]
	if !ok {
		return Spec{}, nil, UnknownToolError{Name: name}
	}
	return e.spec, e.handler, nil
}

// Tools returns the declarative offer list in registration order.
func (r *Registry) Tools() []llm.Tool {
	out := make([]llm.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].spec.Tool())
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}
