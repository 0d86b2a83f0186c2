// Package fakedataconsumer describes the FakeDataConsumer plugin, which reads
// FakeData messages from its input queue and checks their contents.
package fakedataconsumer

import (
	"reflect"

	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/registry"
	"github.com/specialistvlad/queueplan/internal/topology"
)

// Kind is the plugin name modules refer to.
const Kind = "FakeDataConsumer"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Conf defines the parameters of the plugin's conf command.
type Conf struct {
	NIntsPerVector int   `cty:"nIntsPerVector"`
	StartingInt    int64 `cty:"starting_int"`
	EndingInt      int64 `cty:"ending_int"`
	QueueTimeoutMs int   `cty:"queue_timeout_ms"`
}

// Register registers the plugin with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPlugin(&registry.Plugin{
		Kind:     Kind,
		Bindings: map[string]topology.Direction{"input": topology.Input},
		Commands: []phase.Phase{phase.Conf, phase.Start, phase.Stop},
		Conf:     reflect.TypeOf(Conf{}),
	})
}
