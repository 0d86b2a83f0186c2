// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package compiler turns a validated topology and a parameter table into a
// command plan.
//
// Compilation walks the fixed phase sequence. The init phase is a single
// broadcast carrying the whole topology; every later phase asks the binder for
// each module's payload, in declaration order (or the phase's ordering hint),
// and hands the collected pairs to the addresser.
//
// Compilation is all-or-nothing and pure. Any error aborts the whole call and
// no partial plan is returned. Inputs are never modified, so concurrent calls
// over shared inputs need no coordination.
package compiler
