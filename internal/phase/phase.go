// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package phase defines the closed set of lifecycle phases a pipeline is
// driven through. The set and its order are fixed: every compiled plan carries
// exactly these phases, in exactly this order.
package phase

import "fmt"

// Phase is a named stage of a module's operational lifecycle.
type Phase int

const (
	Init Phase = iota
	Conf
	Start
	Pause
	Resume
	Stop
	Scrap
)

// Count is the number of lifecycle phases.
const Count = int(Scrap) + 1

var names = [Count]string{
	Init:   "init",
	Conf:   "conf",
	Start:  "start",
	Pause:  "pause",
	Resume: "resume",
	Stop:   "stop",
	Scrap:  "scrap",
}

// All returns every phase in lifecycle order. The returned slice is a fresh
// copy and may be modified by the caller.
func All() []Phase {
	return []Phase{Init, Conf, Start, Pause, Resume, Stop, Scrap}
}

// Addressable returns the phases whose commands target individual modules,
// i.e. every phase except Init.
func Addressable() []Phase {
	return All()[1:]
}

// Valid reports whether p is one of the declared phases.
func (p Phase) Valid() bool {
	return p >= Init && p <= Scrap
}

// String returns the wire name of the phase (e.g. "conf").
func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return names[p]
}

// Parse converts a wire name into a Phase.
func Parse(name string) (Phase, error) {
	for i, n := range names {
		if n == name {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q: must be one of %v", name, names)
}
