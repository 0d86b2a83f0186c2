// Package config defines the format-agnostic input model of the compiler and
// the Loader interface that front-ends implement to produce it.
//
// A Model carries unvalidated queue and module declarations plus the
// parameter table. The topology package validates the declarations; nothing
// in this package interprets them.
package config
