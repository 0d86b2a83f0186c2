package sink

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/queueplan/internal/plan"
)

// Sink receives a compiled plan.
type Sink interface {
	Write(ctx context.Context, p *plan.Plan) error
}

// Format is a plan serialization format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, YAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q: must be %q or %q", s, JSON, YAML)
}

// Encode serializes the plan in the given format.
func Encode(p *plan.Plan, format Format) ([]byte, error) {
	switch format {
	case JSON:
		return plan.EncodeJSON(p)
	case YAML:
		return plan.EncodeYAML(p)
	}
	return nil, fmt.Errorf("invalid format %q", format)
}
