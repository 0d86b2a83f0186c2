// Package queuetonetwork describes the QueueToNetwork plugin, which pops
// messages from its input queue and sends them over the network.
package queuetonetwork

import (
	"reflect"

	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/registry"
	"github.com/specialistvlad/queueplan/internal/topology"
	"github.com/zclconf/go-cty/cty"
)

// Kind is the plugin name modules refer to.
const Kind = "QueueToNetwork"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Conf defines the parameters of the plugin's conf command.
type Conf struct {
	MsgType       string    `cty:"msg_type"`
	MsgModuleName string    `cty:"msg_module_name"`
	SenderConfig  cty.Value `cty:"sender_config"`
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
