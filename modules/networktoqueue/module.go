// Package networktoqueue describes the NetworkToQueue plugin, which receives
// messages from the network and pushes them onto its output queue.
package networktoqueue

import (
	"reflect"

	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/registry"
	"github.com/specialistvlad/queueplan/internal/topology"
	"github.com/zclconf/go-cty/cty"
)

// Kind is the plugin name modules refer to.
const Kind = "NetworkToQueue"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Conf defines the parameters of the plugin's conf command.
type Conf struct {
	MsgType       string `cty:"msg_type"`
	MsgModuleName string `cty:"msg_module_name"`
	// ReceiverConfig is passed through to the network receiver as is.
	ReceiverConfig cty.Value `cty:"receiver_config"`
}

// Register registers the plugin with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPlugin(&registry.Plugin{
		Kind:     Kind,
		Bindings: map[string]topology.Direction{"output": topology.Output},
		Commands: []phase.Phase{phase.Conf, phase.Start, phase.Stop},
		Conf:     reflect.TypeOf(Conf{}),
	})
}
