package config

import (
	"context"

	"github.com/specialistvlad/queueplan/internal/params"
	"github.com/specialistvlad/queueplan/internal/topology"
)

// Model is the unified, format-agnostic representation of a pipeline
// definition, in declaration order.
type Model struct {
	Queues  []topology.QueueDecl
	Modules []topology.ModuleDecl
	Params  *params.Table
}

// NewModel returns an empty model with an initialized parameter table.
func NewModel() *Model {
	return &Model{Params: params.NewTable()}
}

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the pipeline definition from the given files or directories
	// and translates it into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
