package hcl

import (
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/queueplan/internal/params"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions returns the functions available to locals and phase data.
func functions() map[string]function.Function {
	return map[string]function.Function{
		"endpoint": params.EndpointFunc,
		"format":   stdlib.FormatFunc,
		"upper":    stdlib.UpperFunc,
		"lower":    stdlib.LowerFunc,
		"concat":   stdlib.ConcatFunc,
		"merge":    stdlib.MergeFunc,
	}
}

// evalLocals evaluates every attribute of every locals block. Locals see the
// functions but not each other, so their evaluation order does not matter.
func evalLocals(blocks []*localsBlock) (map[string]cty.Value, error) {
	evalCtx := &hcl.EvalContext{Functions: functions()}
	locals := make(map[string]cty.Value)
	defined := make(map[string]hcl.Range)

	for _, block := range blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid locals block: %w", diags)
		}
		for _, name := range sortedAttrNames(attrs) {
			attr := attrs[name]
			if prev, ok := defined[name]; ok {
				return nil, fmt.Errorf("%s: duplicate local %q, first defined at %s", attr.NameRange, name, prev)
			}
			val, diags := attr.Expr.Value(evalCtx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to evaluate local %q: %w", name, diags)
			}
			locals[name] = val
			defined[name] = attr.NameRange
		}
	}
	return locals, nil
}

// newEvalContext builds the context used for phase data expressions.
func newEvalContext(locals map[string]cty.Value) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"local": cty.ObjectVal(locals),
		},
		Functions: functions(),
	}
}

// sortedAttrNames orders attributes by source position so duplicate
// detection reports the later occurrence.
func sortedAttrNames(attrs hcl.Attributes) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return attrs[a].Range.Start.Byte - attrs[b].Range.Start.Byte
	})
	return names
}
