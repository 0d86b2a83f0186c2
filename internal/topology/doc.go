// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package topology holds the validated, immutable description of a pipeline:
// the bounded queues it declares and the modules bound to them.
//
// Declarations arrive as plain records (QueueDecl, ModuleDecl) from whatever
// front-end produced them. Build checks them once and returns a Topology that
// later stages only read. The checks are:
//
//   - queue names and module names are unique;
//   - every binding refers to a declared queue;
//   - queue kinds, capacities and binding directions are well formed.
//
// Declaration order is significant and preserved: the compiler addresses
// modules in the order they were declared.
package topology
