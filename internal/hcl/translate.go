package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/queueplan/internal/config"
	"github.com/specialistvlad/queueplan/internal/params"
	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/topology"
)

// translator accumulates decoded blocks from all files into one model.
type translator struct {
	model   *config.Model
	modules map[string]struct{}
}

func (t *translator) translateFile(ctx context.Context, evalCtx *hcl.EvalContext, root *fileRoot) error {
	for _, q := range root.Queues {
		t.model.Queues = append(t.model.Queues, topology.QueueDecl{
			Name:     q.Name,
			Kind:     q.Kind,
			Capacity: q.Capacity,
		})
	}
	for _, m := range root.Modules {
		if err := t.translateModule(ctx, evalCtx, m); err != nil {
			return err
		}
	}
	for _, s := range root.Sequences {
		if err := t.translateSequence(s); err != nil {
			return err
		}
	}
	return nil
}

// translateModule records the module declaration and its per-phase data.
// Module names are checked here because parameters are keyed by name.
func (t *translator) translateModule(ctx context.Context, evalCtx *hcl.EvalContext, m *moduleBlock) error {
	if _, dup := t.modules[m.Name]; dup {
		return &topology.DuplicateNameError{Kind: "module", Name: m.Name}
	}
	t.modules[m.Name] = struct{}{}

	decl := topology.ModuleDecl{Name: m.Name, Plugin: m.Plugin}
	for _, b := range m.Bindings {
		decl.Bindings = append(decl.Bindings, topology.BindingDecl{
			Name:      b.Name,
			Queue:     b.Queue,
			Direction: b.Direction,
		})
	}
	t.model.Modules = append(t.model.Modules, decl)

	for _, cmd := range m.Commands {
		p, err := phase.Parse(cmd.Phase)
		if err != nil {
			return fmt.Errorf("module %q: %w", m.Name, err)
		}
		if p == phase.Init {
			return fmt.Errorf("module %q: on %q is not allowed, the init command is generated from the topology", m.Name, cmd.Phase)
		}
		if _, exists := t.model.Params.Lookup(m.Name, p); exists {
			return fmt.Errorf("module %q: duplicate on %q block", m.Name, cmd.Phase)
		}

		data := params.Null()
		if isExprDefined(ctx, cmd.Data, "data") {
			data, err = valueOf(cmd.Data, evalCtx)
			if err != nil {
				return fmt.Errorf("module %q phase %q: %w", m.Name, p, err)
			}
		}
		if err := t.model.Params.Set(m.Name, p, data); err != nil {
			return err
		}
	}
	return nil
}

func (t *translator) translateSequence(s *sequenceBlock) error {
	p, err := phase.Parse(s.Phase)
	if err != nil {
		return fmt.Errorf("sequence: %w", err)
	}
	if err := t.model.Params.SetOrder(p, s.Modules); err != nil {
		return fmt.Errorf("sequence %q: %w", s.Phase, err)
	}
	return nil
}
