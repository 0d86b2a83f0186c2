package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/queueplan/internal/params"
	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/registry"
	"github.com/specialistvlad/queueplan/internal/topology"
	"github.com/specialistvlad/queueplan/modules/fakedataconsumer"
	"github.com/specialistvlad/queueplan/modules/networktoqueue"
	"github.com/specialistvlad/queueplan/modules/queuetonetwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func newRegistry() *registry.Registry {
	r := registry.New()
	for _, m := range []registry.Module{
		&fakedataconsumer.Module{},
		&networktoqueue.Module{},
		&queuetonetwork.Module{},
	} {
		m.Register(r)
	}
	return r
}

func build(t *testing.T, modules ...topology.ModuleDecl) *topology.Topology {
	t.Helper()
	topo, err := topology.Build(
		[]topology.QueueDecl{{Name: "hose", Kind: "FollySPSCQueue", Capacity: 10}},
		modules,
	)
	require.NoError(t, err)
	return topo
}

func fdcDecl(direction string) topology.ModuleDecl {
	return topology.ModuleDecl{
		Name:     "fdc",
		Plugin:   fakedataconsumer.Kind,
		Bindings: []topology.BindingDecl{{Name: "input", Queue: "hose", Direction: direction}},
	}
}

func fdcConf(startingInt cty.Value) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"nIntsPerVector":   cty.NumberIntVal(10),
		"starting_int":     startingInt,
		"ending_int":       cty.NumberIntVal(14000000),
		"queue_timeout_ms": cty.NumberIntVal(100),
	})
}

func TestRegistry_Kinds(t *testing.T) {
	r := newRegistry()
	assert.Equal(t, []string{"FakeDataConsumer", "NetworkToQueue", "QueueToNetwork"}, r.Kinds())

	p, ok := r.Plugin(networktoqueue.Kind)
	require.True(t, ok)
	assert.True(t, p.Accepts(phase.Start))
	assert.False(t, p.Accepts(phase.Pause))
}

func TestRegistry_RegisterTwicePanics(t *testing.T) {
	r := newRegistry()
	assert.Panics(t, func() { (&queuetonetwork.Module{}).Register(r) })
	assert.Panics(t, func() { r.RegisterPlugin(&registry.Plugin{}) })
}

func TestCheck_CleanPipeline(t *testing.T) {
	r := newRegistry()
	topo := build(t,
		fdcDecl("input"),
		topology.ModuleDecl{
			Name:     "ntoq",
			Plugin:   networktoqueue.Kind,
			Bindings: []topology.BindingDecl{{Name: "output", Queue: "hose", Direction: "output"}},
		},
	)
	tbl := params.NewTable()
	require.NoError(t, tbl.Set("fdc", phase.Conf, fdcConf(cty.NumberIntVal(-4))))
	require.NoError(t, tbl.Set("fdc", phase.Stop, params.Null()))
	require.NoError(t, tbl.Set("ntoq", phase.Conf, cty.ObjectVal(map[string]cty.Value{
		"msg_type":        cty.StringVal("dunedaq::nwqueueadapters::fsd::FakeData"),
		"msg_module_name": cty.StringVal("FakeData"),
		"receiver_config": cty.ObjectVal(map[string]cty.Value{
			"address": params.NewEndpointRef("fake_data"),
		}),
	})))

	assert.Empty(t, r.Check(context.Background(), topo, tbl))
	assert.NoError(t, r.Validate(context.Background(), topo, tbl))
}

func TestCheck_Findings(t *testing.T) {
	testCases := []struct {
		name     string
		module   topology.ModuleDecl
		params   map[phase.Phase]cty.Value
		expected []string
	}{
		{
			name:     "unknown plugin",
			module:   topology.ModuleDecl{Name: "x", Plugin: "Mystery"},
			expected: []string{
				"module 'x': unknown plugin kind 'Mystery' (known: FakeDataConsumer, NetworkToQueue, QueueToNetwork)",
				"queue 'hose': not bound by any module",
			},
		},
		{
			name:   "wrong direction",
			module: fdcDecl("output"),
			params: map[phase.Phase]cty.Value{phase.Conf: fdcConf(cty.NumberIntVal(0))},
			expected: []string{
				"module 'fdc' binding 'input': plugin 'FakeDataConsumer' uses it as input, declared as output",
			},
		},
		{
			name: "unconnected and unknown binding",
			module: topology.ModuleDecl{
				Name:     "fdc",
				Plugin:   fakedataconsumer.Kind,
				Bindings: []topology.BindingDecl{{Name: "in", Queue: "hose", Direction: "input"}},
			},
			params: map[phase.Phase]cty.Value{phase.Conf: fdcConf(cty.NumberIntVal(0))},
			expected: []string{
				"module 'fdc': plugin 'FakeDataConsumer' has no binding 'in'",
				"module 'fdc': binding 'input' of plugin 'FakeDataConsumer' is not connected",
			},
		},
		{
			name:   "unaccepted phase",
			module: fdcDecl("input"),
			params: map[phase.Phase]cty.Value{
				phase.Conf:  fdcConf(cty.NumberIntVal(0)),
				phase.Pause: params.Null(),
			},
			expected: []string{"module 'fdc': plugin 'FakeDataConsumer' does not accept 'pause' commands"},
		},
		{
			name:     "missing conf",
			module:   fdcDecl("input"),
			expected: []string{"module 'fdc': plugin 'FakeDataConsumer' expects conf parameters"},
		},
		{
			name:     "conf not an object",
			module:   fdcDecl("input"),
			params:   map[phase.Phase]cty.Value{phase.Conf: cty.StringVal("x")},
			expected: []string{"module 'fdc': conf parameters must be an object, got string"},
		},
		{
			name:   "conf missing attribute",
			module: fdcDecl("input"),
			params: map[phase.Phase]cty.Value{phase.Conf: cty.ObjectVal(map[string]cty.Value{
				"nIntsPerVector":   cty.NumberIntVal(10),
				"starting_int":   cty.NumberIntVal(0),
				"ending_int":     cty.NumberIntVal(1),
			})},
			expected: []string{"module 'fdc': conf is missing 'queue_timeout_ms'"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRegistry()
			topo := build(t, tc.module)
			tbl := params.NewTable()
			for p, v := range tc.params {
				require.NoError(t, tbl.Set(tc.module.Name, p, v))
			}

			assert.Equal(t, tc.expected, r.Check(context.Background(), topo, tbl))

			err := r.Validate(context.Background(), topo, tbl)
			var checkErr *registry.CheckError
			require.True(t, errors.As(err, &checkErr))
			assert.Equal(t, tc.expected, checkErr.Findings)
		})
	}
}

func TestCheck_SingleProducerQueue(t *testing.T) {
	r := newRegistry()
	output := func(name string) topology.ModuleDecl {
		return topology.ModuleDecl{
			Name:     name,
			Plugin:   networktoqueue.Kind,
			Bindings: []topology.BindingDecl{{Name: "output", Queue: "hose", Direction: "output"}},
		}
	}
	topo := build(t, output("ntoq1"), output("ntoq2"))
	tbl := params.NewTable()
	for _, name := range []string{"ntoq1", "ntoq2"} {
		require.NoError(t, tbl.Set(name, phase.Conf, cty.ObjectVal(map[string]cty.Value{
			"msg_type":        cty.StringVal("FakeData"),
			"msg_module_name": cty.StringVal("FakeData"),
			"receiver_config": cty.EmptyObjectVal,
		})))
	}

	assert.Equal(t, []string{
		"queue 'hose': FollySPSCQueue allows one producer and one consumer, has 2 and 0",
	}, r.Check(context.Background(), topo, tbl))
}

func TestCheck_ConfTypeMismatch(t *testing.T) {
	r := newRegistry()
	topo := build(t, fdcDecl("input"))

	for name, bad := range map[string]cty.Value{
		"fraction": cty.NumberFloatVal(1.5),
		"string":   cty.StringVal("minus four"),
		"endpoint": params.NewEndpointRef("fake_data"),
	} {
		t.Run(name, func(t *testing.T) {
			tbl := params.NewTable()
			require.NoError(t, tbl.Set("fdc", phase.Conf, fdcConf(bad)))

			findings := r.Check(context.Background(), topo, tbl)
			require.Len(t, findings, 1)
			assert.Contains(t, findings[0], "module 'fdc': conf 'starting_int':")
		})
	}
}
