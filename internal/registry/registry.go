package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/topology"
)

// Module is the interface that all plugin packages must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Plugin describes what a plugin kind accepts.
type Plugin struct {
	// Kind is the plugin name modules refer to.
	Kind string
	// Bindings maps local binding names to the direction the plugin uses them in.
	Bindings map[string]topology.Direction
	// Commands lists the addressable phases the plugin handles.
	Commands []phase.Phase
	// Conf, when set, is the Go struct the conf payload is expected to fit.
	// Fields are matched through their `cty` tags.
	Conf reflect.Type
}

// Accepts reports whether the plugin handles commands for the phase.
func (p *Plugin) Accepts(ph phase.Phase) bool {
	for _, c := range p.Commands {
		if c == ph {
			return true
		}
	}
	return false
}

// Registry holds the registered plugin kinds for a single application instance.
type Registry struct {
	plugins map[string]*Plugin
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{plugins: make(map[string]*Plugin)}
}

// RegisterPlugin adds a plugin kind to the catalog.
func (r *Registry) RegisterPlugin(p *Plugin) {
	if p == nil || p.Kind == "" {
		panic("plugin kind must not be empty")
	}
	if _, exists := r.plugins[p.Kind]; exists {
		panic(fmt.Sprintf("plugin with kind '%s' already registered", p.Kind))
	}
	slog.Debug("Registering plugin.", "kind", p.Kind, "bindings", len(p.Bindings), "commands", len(p.Commands))
	r.plugins[p.Kind] = p
}

// Plugin returns the registered plugin for a kind.
func (r *Registry) Plugin(kind string) (*Plugin, bool) {
	p, ok := r.plugins[kind]
	return p, ok
}

// Kinds returns the registered plugin kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.plugins))
	for k := range r.plugins {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
