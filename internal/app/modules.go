package app

import (
	"github.com/specialistvlad/queueplan/internal/registry"
	"github.com/specialistvlad/queueplan/modules/fakedataconsumer"
	"github.com/specialistvlad/queueplan/modules/networktoqueue"
	"github.com/specialistvlad/queueplan/modules/queuetonetwork"
)

// coreModules is the definitive list of all plugin modules that are compiled
// into the queueplan binary.
var coreModules = []registry.Module{
	&fakedataconsumer.Module{},
	&networktoqueue.Module{},
	&queuetonetwork.Module{},
}
