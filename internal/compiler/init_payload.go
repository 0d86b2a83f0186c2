// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package compiler

import (
	"github.com/specialistvlad/queueplan/internal/topology"
	"github.com/zclconf/go-cty/cty"
)

// InitPayload describes the full topology for the init broadcast:
//
//	{
//	  queues:  [{inst, kind, capacity}],
//	  modules: [{inst, plugin, data: {qinfos: [{name, inst, dir}]}}]
//	}
func InitPayload(topo *topology.Topology) cty.Value {
	queues := make([]cty.Value, 0, len(topo.Queues()))
	for _, q := range topo.Queues() {
		queues = append(queues, cty.ObjectVal(map[string]cty.Value{
			"inst":     cty.StringVal(q.Name),
			"kind":     cty.StringVal(string(q.Kind)),
			"capacity": cty.NumberIntVal(int64(q.Capacity)),
		}))
	}

	modules := make([]cty.Value, 0, len(topo.Modules()))
	for _, m := range topo.Modules() {
		qinfos := make([]cty.Value, 0, len(m.Bindings))
		for _, b := range m.Bindings {
			qinfos = append(qinfos, cty.ObjectVal(map[string]cty.Value{
				"name": cty.StringVal(b.Name),
				"inst": cty.StringVal(b.Queue),
				"dir":  cty.StringVal(string(b.Direction)),
			}))
		}
		modules = append(modules, cty.ObjectVal(map[string]cty.Value{
			"inst":   cty.StringVal(m.Name),
			"plugin": cty.StringVal(m.Plugin),
			"data": cty.ObjectVal(map[string]cty.Value{
				"qinfos": cty.TupleVal(qinfos),
			}),
		}))
	}

	return cty.ObjectVal(map[string]cty.Value{
		"queues":  cty.TupleVal(queues),
		"modules": cty.TupleVal(modules),
	})
}
