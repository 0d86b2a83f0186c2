// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package params

import (
	"fmt"

	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/zclconf/go-cty/cty"
)

// Null returns the explicit "addressed, but no payload" value.
func Null() cty.Value {
	return cty.NullVal(cty.DynamicPseudoType)
}

// Table maps (module, phase) pairs to payloads and carries optional per-phase
// ordering hints. It is populated once by a loader and only read afterwards.
type Table struct {
	entries map[string]map[phase.Phase]cty.Value
	orders  map[phase.Phase][]string
}

// NewTable creates an empty parameter table.
func NewTable() *Table {
	return &Table{
		entries: make(map[string]map[phase.Phase]cty.Value),
		orders:  make(map[phase.Phase][]string),
	}
}

// Set records the payload for a module in a phase. cty.NilVal is stored as an
// explicit null. The init phase is synthesized by the compiler and cannot be
// parameterized.
func (t *Table) Set(module string, p phase.Phase, data cty.Value) error {
	if err := checkAddressable(p); err != nil {
		return fmt.Errorf("module %q: %w", module, err)
	}
	if data == cty.NilVal {
		data = Null()
	}
	if !data.IsWhollyKnown() {
		return fmt.Errorf("module %q phase %q: payload contains unknown values", module, p)
	}

	byPhase, ok := t.entries[module]
	if !ok {
		byPhase = make(map[phase.Phase]cty.Value)
		t.entries[module] = byPhase
	}
	if _, exists := byPhase[p]; exists {
		return fmt.Errorf("module %q phase %q: parameters already set", module, p)
	}
	byPhase[p] = data
	return nil
}

// Lookup returns the payload for a module in a phase and whether one exists.
func (t *Table) Lookup(module string, p phase.Phase) (cty.Value, bool) {
	if t == nil {
		return cty.NilVal, false
	}
	v, ok := t.entries[module][p]
	return v, ok
}

// Phases returns, in lifecycle order, the phases the module has parameters for.
func (t *Table) Phases(module string) []phase.Phase {
	var out []phase.Phase
	if t == nil {
		return out
	}
	for _, p := range phase.Addressable() {
		if _, ok := t.entries[module][p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Modules returns the number of modules with at least one entry.
func (t *Table) Modules() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// SetOrder records an explicit addressing order for a phase. Listed modules
// are addressed first, in list order; the remaining participants follow in
// declaration order.
func (t *Table) SetOrder(p phase.Phase, modules []string) error {
	if err := checkAddressable(p); err != nil {
		return err
	}
	if _, exists := t.orders[p]; exists {
		return fmt.Errorf("phase %q: order already set", p)
	}
	t.orders[p] = append([]string(nil), modules...)
	return nil
}

// Order returns a copy of the ordering hint for a phase, or nil.
func (t *Table) Order(p phase.Phase) []string {
	if t == nil {
		return nil
	}
	hint, ok := t.orders[p]
	if !ok {
		return nil
	}
	return append([]string(nil), hint...)
}

func checkAddressable(p phase.Phase) error {
	if !p.Valid() {
		return fmt.Errorf("invalid phase %s", p)
	}
	if p == phase.Init {
		return fmt.Errorf("phase %q is synthesized from the topology and takes no parameters", p)
	}
	return nil
}
