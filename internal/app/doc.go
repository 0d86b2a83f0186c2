// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the compile pipeline (load, validate,
// resolve endpoints, lint, compile, deliver), decoupled from any specific
// entrypoint like a CLI.
package app
