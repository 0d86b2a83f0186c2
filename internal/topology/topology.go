// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package topology

import (
	"fmt"

	"github.com/specialistvlad/queueplan/internal/ordered"
)

// Topology is the validated set of queues and modules. It is never modified
// after Build returns; accessors hand out copies.
type Topology struct {
	queues  ordered.Map[string, Queue]
	modules ordered.Map[string, Module]
}

// Build validates the declarations and returns an immutable Topology. The
// first violation found is returned; no partial topology is ever produced.
func Build(queueDecls []QueueDecl, moduleDecls []ModuleDecl) (*Topology, error) {
	t := &Topology{}

	for _, qd := range queueDecls {
		q, err := buildQueue(qd)
		if err != nil {
			return nil, err
		}
		if !t.queues.Put(q.Name, q) {
			return nil, &DuplicateNameError{Kind: "queue", Name: q.Name}
		}
	}

	for _, md := range moduleDecls {
		if md.Name == "" {
			return nil, &InvalidDeclarationError{Kind: "module", Name: md.Name, Reason: "name must not be empty"}
		}
		if md.Plugin == "" {
			return nil, &InvalidDeclarationError{Kind: "module", Name: md.Name, Reason: "plugin must not be empty"}
		}
		if t.modules.Has(md.Name) {
			return nil, &DuplicateNameError{Kind: "module", Name: md.Name}
		}

		m := Module{Name: md.Name, Plugin: md.Plugin, Bindings: make([]Binding, 0, len(md.Bindings))}
		var local ordered.Map[string, struct{}]
		for _, bd := range md.Bindings {
			b, err := t.buildBinding(md.Name, bd)
			if err != nil {
				return nil, err
			}
			if !local.Put(b.Name, struct{}{}) {
				return nil, &InvalidDeclarationError{
					Kind:   "binding",
					Name:   md.Name + "." + b.Name,
					Reason: "local queue name bound more than once",
				}
			}
			m.Bindings = append(m.Bindings, b)
		}
		t.modules.Put(m.Name, m)
	}

	return t, nil
}

func buildQueue(qd QueueDecl) (Queue, error) {
	if qd.Name == "" {
		return Queue{}, &InvalidDeclarationError{Kind: "queue", Name: qd.Name, Reason: "name must not be empty"}
	}
	kind, err := ParseQueueKind(qd.Kind)
	if err != nil {
		return Queue{}, &InvalidDeclarationError{Kind: "queue", Name: qd.Name, Reason: err.Error()}
	}
	if qd.Capacity <= 0 {
		return Queue{}, &InvalidDeclarationError{
			Kind:   "queue",
			Name:   qd.Name,
			Reason: fmt.Sprintf("capacity must be positive, got %d", qd.Capacity),
		}
	}
	return Queue{Name: qd.Name, Kind: kind, Capacity: qd.Capacity}, nil
}

func (t *Topology) buildBinding(module string, bd BindingDecl) (Binding, error) {
	if bd.Name == "" {
		return Binding{}, &InvalidDeclarationError{Kind: "binding", Name: module, Reason: "local name must not be empty"}
	}
	dir, err := ParseDirection(bd.Direction)
	if err != nil {
		return Binding{}, &InvalidDeclarationError{Kind: "binding", Name: module + "." + bd.Name, Reason: err.Error()}
	}
	if !t.queues.Has(bd.Queue) {
		return Binding{}, &UnknownQueueError{Module: module, Binding: bd.Name, Queue: bd.Queue}
	}
	return Binding{Name: bd.Name, Queue: bd.Queue, Direction: dir}, nil
}

// Queues returns the queues in declaration order.
func (t *Topology) Queues() []Queue {
	return t.queues.Values()
}

// Modules returns the modules in declaration order. Binding slices are copied
// so callers cannot reach back into the topology.
func (t *Topology) Modules() []Module {
	mods := t.modules.Values()
	for i := range mods {
		mods[i].Bindings = append([]Binding(nil), mods[i].Bindings...)
	}
	return mods
}

// Module looks up a module by name.
func (t *Topology) Module(name string) (Module, bool) {
	m, ok := t.modules.Get(name)
	if !ok {
		return Module{}, false
	}
	m.Bindings = append([]Binding(nil), m.Bindings...)
	return m, true
}

// HasModule reports whether a module with the given name is declared.
func (t *Topology) HasModule(name string) bool {
	return t.modules.Has(name)
}
