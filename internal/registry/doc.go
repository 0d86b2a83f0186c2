// Package registry provides the catalog of known plugin kinds.
//
// Plugin packages under modules/ describe themselves with a Plugin value and
// add it to a Registry through the Module interface. The Registry then lints a
// validated topology and its parameter table against the catalog: unknown
// plugin kinds, mismatched bindings, phases a plugin does not accept and
// malformed conf payloads are reported as findings. Findings never change the
// compiled plan; the caller decides whether they are warnings or errors.
package registry
