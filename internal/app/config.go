package app

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/specialistvlad/queueplan/internal/sink"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GridPaths []string // hcl files or directories

	EndpointsFile     string   // TOML file with an [endpoints] table
	EndpointEnvPrefix string   // e.g. QUEUEPLAN_ENDPOINT reads QUEUEPLAN_ENDPOINT_<KEY>
	Endpoints         []string // key=address overrides

	Format     sink.Format
	OutputPath string    // empty writes to PlanWriter
	PlanWriter io.Writer // defaults to os.Stdout

	SubmitURL       string
	SubmitNamespace string
	SubmitTimeout   time.Duration

	// Strict turns plugin catalog findings into errors.
	Strict bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.GridPaths) == 0 {
		return nil, errors.New("GridPaths is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = sink.JSON
	}
	format, err := sink.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}
	cfg.Format = format
	if cfg.PlanWriter == nil {
		cfg.PlanWriter = os.Stdout
	}
	return &cfg, nil
}
