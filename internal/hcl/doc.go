// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file parsing, evaluation of locals and
// phase data expressions, and translation of queue, module and sequence
// blocks into the format-agnostic model.
package hcl
