// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package topology

import "fmt"

// QueueKind identifies a supported queue implementation.
type QueueKind string

const (
	FollySPSCQueue QueueKind = "FollySPSCQueue"
	FollyMPMCQueue QueueKind = "FollyMPMCQueue"
	StdDeQueue     QueueKind = "StdDeQueue"
)

var queueKinds = []QueueKind{FollySPSCQueue, FollyMPMCQueue, StdDeQueue}

// ParseQueueKind validates a queue kind name.
func ParseQueueKind(s string) (QueueKind, error) {
	for _, k := range queueKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unsupported queue kind %q: must be one of %v", s, queueKinds)
}

// Direction is the side of a queue a module is bound to.
type Direction string

const (
	Input  Direction = "input"
	Output Direction = "output"
)

// ParseDirection validates a binding direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Input, Output:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q: must be %q or %q", s, Input, Output)
}

// QueueDecl is an unvalidated queue declaration.
type QueueDecl struct {
	Name     string
	Kind     string
	Capacity int
}

// BindingDecl is an unvalidated queue binding of a module.
type BindingDecl struct {
	Name      string
	Queue     string
	Direction string
}

// ModuleDecl is an unvalidated module declaration.
type ModuleDecl struct {
	Name     string
	Plugin   string
	Bindings []BindingDecl
}

// Queue is a validated bounded queue.
type Queue struct {
	Name     string
	Kind     QueueKind
	Capacity int
}

// Binding connects a module-local queue name to a declared queue instance.
type Binding struct {
	Name      string
	Queue     string
	Direction Direction
}

// Module is a validated processing module.
type Module struct {
	Name     string
	Plugin   string
	Bindings []Binding
}
