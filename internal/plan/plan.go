// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package plan holds the compiled command plan: one command set for every
// lifecycle phase, always all of them, always in lifecycle order.
//
// A Plan is immutable once built. Its serialized forms (JSON and YAML) are a
// mapping with exactly the keys init, conf, start, pause, resume, stop and
// scrap, in that order, each holding an ordered list of {target, payload}
// records. Consumers rely on both the key names and the list order.
package plan

import (
	"fmt"

	"github.com/specialistvlad/queueplan/internal/command"
	"github.com/specialistvlad/queueplan/internal/phase"
)

// Plan is the complete per-phase output of compilation.
type Plan struct {
	sets [phase.Count]command.Set
}

// New assembles a plan. Phases missing from sets get an empty command set.
func New(sets map[phase.Phase]command.Set) (*Plan, error) {
	p := &Plan{}
	for ph, set := range sets {
		if !ph.Valid() {
			return nil, fmt.Errorf("invalid phase %s in plan", ph)
		}
		p.sets[ph] = append(command.Set{}, set...)
	}
	for i := range p.sets {
		if p.sets[i] == nil {
			p.sets[i] = command.Set{}
		}
	}
	return p, nil
}

// Get returns a copy of the command set for a phase.
func (p *Plan) Get(ph phase.Phase) command.Set {
	if !ph.Valid() {
		return command.Set{}
	}
	return append(command.Set{}, p.sets[ph]...)
}

// Phases returns the phases present in the plan, which is always all of them.
func (p *Plan) Phases() []phase.Phase {
	return phase.All()
}

// Len returns the total number of commands across all phases.
func (p *Plan) Len() int {
	n := 0
	for _, s := range p.sets {
		n += len(s)
	}
	return n
}

// Record is the serialized form of one addressed command.
type Record struct {
	Target  *string `json:"target" yaml:"target"`
	Payload any     `json:"payload" yaml:"payload"`
}

// Records converts a phase's command set into serializable records.
func (p *Plan) Records(ph phase.Phase) ([]Record, error) {
	set := p.Get(ph)
	out := make([]Record, 0, len(set))
	for _, c := range set {
		payload, err := ToNative(c.Data)
		if err != nil {
			return nil, fmt.Errorf("phase %q target %q: %w", ph, c.Target, err)
		}
		rec := Record{Payload: payload}
		if !c.IsBroadcast() {
			target := c.Target
			rec.Target = &target
		}
		out = append(out, rec)
	}
	return out, nil
}
