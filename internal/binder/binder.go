// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package binder produces the payload a module receives in a given phase.
//
// It is the late-binding step of compilation: payloads in the parameter table
// may contain symbolic endpoint references, and Bind replaces each of them
// with the address the caller's lookup table provides. Bind is a pure
// function of its arguments.
package binder

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/queueplan/internal/endpoint"
	"github.com/specialistvlad/queueplan/internal/params"
	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/topology"
	"github.com/zclconf/go-cty/cty"
)

// UnresolvedEndpointError reports an endpoint reference with no entry in the
// lookup table.
type UnresolvedEndpointError struct {
	Key    string
	Module string
	Phase  phase.Phase
	Path   string // location inside the payload, e.g. "receiver_config.address"
}

func (e *UnresolvedEndpointError) Error() string {
	where := ""
	if e.Path != "" {
		where = " at " + e.Path
	}
	return fmt.Sprintf("module %q phase %q: unresolved endpoint %q%s", e.Module, e.Phase, e.Key, where)
}

// Bind returns the payload for module in phase p.
//
// The boolean result is false when the table has no entry for the pair, in
// which case the module must be left out of the phase. An explicit null entry
// is returned as a present, null payload.
func Bind(p phase.Phase, module topology.Module, table *params.Table, lookup endpoint.Lookup) (cty.Value, bool, error) {
	data, ok := table.Lookup(module.Name, p)
	if !ok {
		return cty.NilVal, false, nil
	}
	if data.IsNull() {
		return data, true, nil
	}

	resolved, err := cty.Transform(data, func(path cty.Path, v cty.Value) (cty.Value, error) {
		ref, isRef := params.AsEndpointRef(v)
		if !isRef {
			return v, nil
		}
		var addr string
		var found bool
		if lookup != nil {
			addr, found = lookup.Resolve(ref.Key)
		}
		if !found {
			return cty.NilVal, &UnresolvedEndpointError{
				Key:    ref.Key,
				Module: module.Name,
				Phase:  p,
				Path:   formatPath(path),
			}
		}
		return cty.StringVal(addr), nil
	})
	if err != nil {
		return cty.NilVal, false, err
	}
	return resolved, true, nil
}

// formatPath renders a cty.Path the way it would be written in configuration.
func formatPath(path cty.Path) string {
	var sb strings.Builder
	for _, step := range path {
		switch s := step.(type) {
		case cty.GetAttrStep:
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(s.Name)
		case cty.IndexStep:
			switch {
			case s.Key.Type().Equals(cty.String):
				fmt.Fprintf(&sb, "[%q]", s.Key.AsString())
			case s.Key.Type().Equals(cty.Number):
				fmt.Fprintf(&sb, "[%s]", s.Key.AsBigFloat().Text('f', -1))
			default:
				sb.WriteString("[?]")
			}
		}
	}
	return sb.String()
}
