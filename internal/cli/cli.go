package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/queueplan/internal/app"
	"github.com/specialistvlad/queueplan/internal/sink"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// DefaultEndpointEnvPrefix is the environment prefix read when no other is given.
const DefaultEndpointEnvPrefix = "QUEUEPLAN_ENDPOINT"

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("queueplan", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
queueplan - Compiles a queue-connected module pipeline into lifecycle command sequences.

Usage:
  queueplan [options] [GRID_PATH...]

Arguments:
  GRID_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	var endpoints stringList
	gridFlag := flagSet.String("grid", "", "Path to the grid file or directory.")
	gFlag := flagSet.String("g", "", "Path to the grid file or directory (shorthand).")
	endpointsFileFlag := flagSet.String("endpoints", "", "Path to a TOML file with an [endpoints] table.")
	flagSet.Var(&endpoints, "endpoint", "Endpoint assignment key=address. May be repeated; overrides file and environment.")
	envPrefixFlag := flagSet.String("endpoint-env-prefix", DefaultEndpointEnvPrefix, "Environment prefix for endpoints (PREFIX_KEY=address). Empty disables.")
	formatFlag := flagSet.String("format", "json", "Plan output format. Options: 'json' or 'yaml'.")
	outputFlag := flagSet.String("o", "", "Write the plan to this file instead of stdout.")
	submitFlag := flagSet.String("submit", "", "Forward the plan to a run-control socket.io server at this URL.")
	submitNamespaceFlag := flagSet.String("submit-namespace", "/", "socket.io namespace used with -submit.")
	submitTimeoutFlag := flagSet.Duration("submit-timeout", 15*time.Second, "Connection timeout used with -submit.")
	strictFlag := flagSet.Bool("strict", false, "Fail on plugin catalog findings instead of logging them.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	if *gridFlag != "" {
		paths = append(paths, *gridFlag)
	}
	if *gFlag != "" {
		paths = append(paths, *gFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Grid paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No grid path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	format, err := sink.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid format: must be 'json' or 'yaml'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GridPaths:         paths,
		EndpointsFile:     *endpointsFileFlag,
		EndpointEnvPrefix: *envPrefixFlag,
		Endpoints:         endpoints,
		Format:            format,
		OutputPath:        *outputFlag,
		SubmitURL:         *submitFlag,
		SubmitNamespace:   *submitNamespaceFlag,
		SubmitTimeout:     *submitTimeoutFlag,
		Strict:            *strictFlag,
		LogFormat:         logFormat,
		LogLevel:          logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "paths", config.GridPaths)
	return config, false, nil
}
