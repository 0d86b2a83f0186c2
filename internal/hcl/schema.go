package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Locals    []*localsBlock   `hcl:"locals,block"`
	Queues    []*queueBlock    `hcl:"queue,block"`
	Modules   []*moduleBlock   `hcl:"module,block"`
	Sequences []*sequenceBlock `hcl:"sequence,block"`
}

// localsBlock holds free-form attributes, evaluated before anything else.
type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// queueBlock maps to `queue "<name>" { ... }`.
type queueBlock struct {
	Name     string `hcl:"name,label"`
	Kind     string `hcl:"kind"`
	Capacity int    `hcl:"capacity"`
}

// moduleBlock maps to `module "<name>" { ... }`.
type moduleBlock struct {
	Name     string          `hcl:"name,label"`
	Plugin   string          `hcl:"plugin"`
	Bindings []*bindingBlock `hcl:"binding,block"`
	Commands []*commandBlock `hcl:"on,block"`
}

// bindingBlock maps to `binding "<local name>" { ... }` inside a module.
type bindingBlock struct {
	Name      string `hcl:"name,label"`
	Queue     string `hcl:"queue"`
	Direction string `hcl:"direction"`
}

// commandBlock maps to `on "<phase>" { data = ... }` inside a module. Data is
// kept as an expression so it can be evaluated once all locals are known.
type commandBlock struct {
	Phase string         `hcl:"phase,label"`
	Data  hcl.Expression `hcl:"data,optional"`
}

// sequenceBlock maps to `sequence "<phase>" { modules = [...] }`.
type sequenceBlock struct {
	Phase   string   `hcl:"phase,label"`
	Modules []string `hcl:"modules"`
}
