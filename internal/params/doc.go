// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package params holds the per-module, per-phase parameter table consumed by
// the compiler.
//
// Payloads are stored as cty values. A payload may embed symbolic endpoint
// references (see NewEndpointRef) that stay unresolved until compile time,
// when the binder swaps them for concrete addresses from the caller's lookup
// table. This keeps configuration free of deployment-specific addresses.
//
// A table distinguishes three outcomes for a (module, phase) pair:
//
//   - no entry: the module is not addressed in that phase;
//   - a null value: the module is addressed with an explicit null payload;
//   - any other value: the module is addressed with that payload.
package params
