// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package command wraps ordered (target, payload) pairs into the addressed
// command set of a single phase.
package command

import (
	"fmt"

	"github.com/specialistvlad/queueplan/internal/ordered"
	"github.com/zclconf/go-cty/cty"
)

// BroadcastTarget addresses every module at once. It is serialized as null.
const BroadcastTarget = ""

// AddressedCommand is one command of a phase: the module it targets and the
// payload it carries. A null Data is an explicit "no payload".
type AddressedCommand struct {
	Target string
	Data   cty.Value
}

// IsBroadcast reports whether the command is not addressed to a single module.
func (c AddressedCommand) IsBroadcast() bool {
	return c.Target == BroadcastTarget
}

// Set is the ordered command set of one phase. Order is significant and is
// the order in which targets were supplied.
type Set []AddressedCommand

// Targets returns the command targets in order.
func (s Set) Targets() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Target
	}
	return out
}

// Target is an input pair for Address.
type Target struct {
	Name string
	Data cty.Value
}

// DuplicateTargetError reports a module addressed twice within one phase.
type DuplicateTargetError struct {
	Target string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("module %q addressed more than once", e.Target)
}

// Address builds a command set from ordered targets. Order is preserved
// exactly and an empty input yields an empty, non-nil set.
func Address(targets []Target) (Set, error) {
	var seen ordered.Map[string, cty.Value]
	for _, t := range targets {
		if t.Name == BroadcastTarget {
			return nil, fmt.Errorf("addressed command needs a target name")
		}
		data := t.Data
		if data == cty.NilVal {
			data = cty.NullVal(cty.DynamicPseudoType)
		}
		if !seen.Put(t.Name, data) {
			return nil, &DuplicateTargetError{Target: t.Name}
		}
	}

	set := make(Set, 0, seen.Len())
	names, payloads := seen.Keys(), seen.Values()
	for i := range names {
		set = append(set, AddressedCommand{Target: names[i], Data: payloads[i]})
	}
	return set, nil
}

// Broadcast builds a command set holding exactly one broadcast command.
func Broadcast(data cty.Value) Set {
	return Set{{Target: BroadcastTarget, Data: data}}
}
