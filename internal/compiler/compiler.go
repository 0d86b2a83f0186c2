// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package compiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/queueplan/internal/binder"
	"github.com/specialistvlad/queueplan/internal/command"
	"github.com/specialistvlad/queueplan/internal/ctxlog"
	"github.com/specialistvlad/queueplan/internal/endpoint"
	"github.com/specialistvlad/queueplan/internal/params"
	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/plan"
	"github.com/specialistvlad/queueplan/internal/topology"
)

// Compile produces the command plan for topo. The context only carries the
// logger; compilation has no cancellation points.
func Compile(ctx context.Context, topo *topology.Topology, table *params.Table, lookup endpoint.Lookup) (*plan.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	if topo == nil {
		return nil, errors.New("compile: topology is nil")
	}
	logger.Debug("Compiling command plan.", "queues", len(topo.Queues()), "modules", len(topo.Modules()))

	sets := make(map[phase.Phase]command.Set, phase.Count)
	sets[phase.Init] = command.Broadcast(InitPayload(topo))

	for _, p := range phase.Addressable() {
		order, err := addressingOrder(p, topo, table)
		if err != nil {
			return nil, err
		}

		targets := make([]command.Target, 0, len(order))
		for _, mod := range order {
			data, ok, err := binder.Bind(p, mod, table, lookup)
			if err != nil {
				return nil, fmt.Errorf("phase %q: %w", p, err)
			}
			if !ok {
				continue
			}
			targets = append(targets, command.Target{Name: mod.Name, Data: data})
		}

		set, err := command.Address(targets)
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", p, err)
		}
		sets[p] = set
		logger.Debug("Phase compiled.", "phase", p.String(), "targets", set.Targets())
	}

	out, err := plan.New(sets)
	if err != nil {
		return nil, err
	}
	logger.Debug("Command plan compiled.", "commands", out.Len())
	return out, nil
}

// addressingOrder lists the modules to consider for phase p. Modules named by
// the phase's ordering hint come first, in hint order; the rest follow in
// declaration order. A hint naming a module twice is rejected even when the
// module has no parameters in that phase.
func addressingOrder(p phase.Phase, topo *topology.Topology, table *params.Table) ([]topology.Module, error) {
	declared := topo.Modules()
	hint := table.Order(p)
	if len(hint) == 0 {
		return declared, nil
	}

	order := make([]topology.Module, 0, len(declared)+len(hint))
	hinted := make(map[string]bool, len(hint))
	for _, name := range hint {
		mod, ok := topo.Module(name)
		if !ok {
			return nil, &UnknownTargetError{Phase: p, Target: name}
		}
		if hinted[name] {
			return nil, fmt.Errorf("phase %q: %w", p, &command.DuplicateTargetError{Target: name})
		}
		order = append(order, mod)
		hinted[name] = true
	}
	for _, mod := range declared {
		if !hinted[mod.Name] {
			order = append(order, mod)
		}
	}
	return order, nil
}
