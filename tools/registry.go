package tools

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/sorcery-ai/concierge/pkg/llms"
)

// Registry holds the tools exposed to the model for one agent. Lookup by
// name is case-insensitive, and the catalogue preserves registration order.
type Registry struct {
	byName []ITool
	index  map[string]ITool
}

// NewRegistry returns a Registry with the given tools registered.
func NewRegistry(list ...ITool) *Registry {
	r := &Registry{
		index: make(map[string]ITool),
	}
	r.Register(list...)
	return r
}

// Register adds tools to the registry. A tool whose lowercased name is
// already registered is skipped.
func (r *Registry) Register(list ...ITool) *Registry {
	for _, tool := range list {
		key := strings.ToLower(tool.Name())
		if r.index[key] == nil {
			r.index[key] = tool
			r.byName = append(r.byName, tool)
		}
	}
	return r
}

// List returns the registered tools in registration order.
func (r *Registry) List() []ITool {
	return r.byName
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for _, tool := range r.byName {
		names = append(names, tool.Name())
	}
	return names
}

// Resolve returns the tool registered under the given name,
// or ErrToolNotFound.
func (r *Registry) Resolve(name string) (ITool, error) {
	tool := r.index[strings.ToLower(name)]
	if tool == nil {
		return nil, errors.WithMessagef(ErrToolNotFound, "%s", name)
	}
	return tool, nil
}

// Definitions returns the tool catalogue in the provider wire format.
func (r *Registry) Definitions() []llms.Tool {
	defs := make([]llms.Tool, 0, len(r.byName))
	for _, tool := range r.byName {
		defs = append(defs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		})
	}
	return defs
}
