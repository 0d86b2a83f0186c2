// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package endpoint provides the lookup table that maps symbolic endpoint names
// to concrete network addresses. The table is owned by the caller (typically
// sourced from deployment configuration) and handed to the compiler read-only.
package endpoint

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Lookup resolves a symbolic endpoint key to an address.
type Lookup interface {
	Resolve(key string) (string, bool)
}

// Table is a static Lookup backed by a map.
type Table map[string]string

// Resolve implements Lookup.
func (t Table) Resolve(key string) (string, bool) {
	addr, ok := t[key]
	return addr, ok
}

// Keys returns the table keys in sorted order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge overlays the given tables in order; later tables win on conflicts.
func Merge(tables ...Table) Table {
	out := make(Table)
	for _, t := range tables {
		for k, v := range t {
			out[k] = v
		}
	}
	return out
}

// fileConfig is the on-disk layout of an endpoint table:
//
//	[endpoints]
//	fake_data = "tcp://host:1234"
type fileConfig struct {
	Endpoints map[string]string `toml:"endpoints"`
}

// LoadFile reads an endpoint table from a TOML file.
func LoadFile(path string) (Table, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load endpoint table %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load endpoint table %s: unexpected key %q", path, undecoded[0].String())
	}

	t := make(Table, len(raw.Endpoints))
	for k, v := range raw.Endpoints {
		addr := strings.TrimSpace(v)
		if addr == "" {
			return nil, fmt.Errorf("load endpoint table %s: endpoint %q has an empty address", path, k)
		}
		t[k] = addr
	}
	return t, nil
}

// FromEnv collects endpoints from environment variables named PREFIX_KEY.
// Keys are lowercased, so QP_ENDPOINT_FAKE_DATA becomes "fake_data".
func FromEnv(prefix string, environ []string) Table {
	t := make(Table)
	if prefix == "" {
		return t
	}
	if !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	for _, e := range environ {
		name, value, ok := strings.Cut(e, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		if key == "" || value == "" {
			continue
		}
		t[key] = value
	}
	return t
}

// FromProcessEnv is FromEnv over the current process environment.
func FromProcessEnv(prefix string) Table {
	return FromEnv(prefix, os.Environ())
}

// ParseAssignments parses "key=address" pairs, as given on the command line.
func ParseAssignments(pairs []string) (Table, error) {
	t := make(Table, len(pairs))
	for _, pair := range pairs {
		key, addr, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		addr = strings.TrimSpace(addr)
		if !ok || key == "" || addr == "" {
			return nil, fmt.Errorf("invalid endpoint assignment %q: expected key=address", pair)
		}
		t[key] = addr
	}
	return t, nil
}
