// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package topology

import "fmt"

// DuplicateNameError reports a queue or module name declared more than once.
type DuplicateNameError struct {
	Kind string // "queue" or "module"
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate %s name %q", e.Kind, e.Name)
}

// UnknownQueueError reports a binding that refers to an undeclared queue.
type UnknownQueueError struct {
	Module  string
	Binding string
	Queue   string
}

func (e *UnknownQueueError) Error() string {
	return fmt.Sprintf("module %q binding %q references unknown queue %q", e.Module, e.Binding, e.Queue)
}

// InvalidDeclarationError reports a malformed queue, module or binding field.
type InvalidDeclarationError struct {
	Kind   string // "queue", "module" or "binding"
	Name   string
	Reason string
}

func (e *InvalidDeclarationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Name, e.Reason)
}
