// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package compiler

import (
	"fmt"

	"github.com/specialistvlad/queueplan/internal/phase"
)

// UnknownTargetError reports an ordering hint naming an undeclared module.
type UnknownTargetError struct {
	Phase  phase.Phase
	Target string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("phase %q orders unknown module %q", e.Phase, e.Target)
}
