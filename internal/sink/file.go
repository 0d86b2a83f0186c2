package sink

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/queueplan/internal/ctxlog"
	"github.com/specialistvlad/queueplan/internal/plan"
)

// File writes the serialized plan to a path or to a writer.
type File struct {
	path   string
	w      io.Writer
	format Format
}

// NewFile returns a sink that (re)creates the file at path on every Write.
func NewFile(path string, format Format) *File {
	return &File{path: path, format: format}
}

// NewWriter returns a sink that writes to w.
func NewWriter(w io.Writer, format Format) *File {
	return &File{w: w, format: format}
}

// Write implements Sink.
func (f *File) Write(ctx context.Context, p *plan.Plan) error {
	logger := ctxlog.FromContext(ctx)

	data, err := Encode(p, f.format)
	if err != nil {
		return err
	}

	if f.path != "" {
		if err := os.WriteFile(f.path, data, 0644); err != nil {
			return fmt.Errorf("failed to write plan to %s: %w", f.path, err)
		}
		logger.Info("Plan written.", "path", f.path, "format", f.format, "bytes", len(data))
		return nil
	}

	if _, err := f.w.Write(data); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	logger.Debug("Plan written.", "format", f.format, "bytes", len(data))
	return nil
}
