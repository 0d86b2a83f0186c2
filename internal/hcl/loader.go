package hcl

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/queueplan/internal/config"
	"github.com/specialistvlad/queueplan/internal/ctxlog"
	"github.com/specialistvlad/queueplan/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// ErrNoFiles is returned when none of the given paths contain an .hcl file.
var ErrNoFiles = errors.New("no .hcl files found")

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// localsSchema picks the locals blocks out of a file before full decoding.
var localsSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "locals"}},
}

type parsedFile struct {
	path string
	body hcl.Body
}

// Load reads every .hcl file under the given paths and translates queue,
// module and sequence blocks into the model. Files are processed in the order
// fsutil.FindFiles returns them, which fixes cross-file declaration order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoFiles, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	parsed := make([]parsedFile, 0, len(files))
	var localBlocks []*localsBlock

	// First pass: parse everything and collect locals.
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		content, _, diags := hclFile.Body.PartialContent(localsSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to read locals in %s: %w", file, diags)
		}
		for _, block := range content.Blocks {
			localBlocks = append(localBlocks, &localsBlock{Body: block.Body})
		}
		parsed = append(parsed, parsedFile{path: file, body: hclFile.Body})
	}

	locals, err := evalLocals(localBlocks)
	if err != nil {
		return nil, err
	}
	logger.Debug("Evaluated locals.", "count", len(locals))
	evalCtx := newEvalContext(locals)

	// Second pass: decode and translate in file order.
	model := config.NewModel()
	t := &translator{model: model, modules: make(map[string]struct{})}
	for _, pf := range parsed {
		var root fileRoot
		diags := gohcl.DecodeBody(pf.body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", pf.path, diags)
		}
		if err := t.translateFile(ctx, evalCtx, &root); err != nil {
			return nil, fmt.Errorf("%s: %w", pf.path, err)
		}
	}

	logger.Debug("HCL loading complete.",
		"queues", len(model.Queues),
		"modules", len(model.Modules),
		"parameterized_modules", model.Params.Modules(),
	)
	return model, nil
}

// valueOf evaluates an expression, folding diagnostics into an error.
func valueOf(expr hcl.Expression, evalCtx *hcl.EvalContext) (cty.Value, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}
