// Package sink delivers a compiled plan to its destination: a file or writer
// in a serialized format, or a run-control server over socket.io. Sinks only
// forward commands; nothing here executes them.
package sink
