package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/queueplan/internal/ctxlog"
	"github.com/specialistvlad/queueplan/internal/endpoint"
)

// endpoints assembles the endpoint lookup. Later sources win: the TOML file,
// then the environment, then explicit key=address assignments.
func (a *App) endpoints(ctx context.Context) (endpoint.Table, error) {
	logger := ctxlog.FromContext(ctx)

	var fromFile endpoint.Table
	if a.config.EndpointsFile != "" {
		var err error
		fromFile, err = endpoint.LoadFile(a.config.EndpointsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load endpoints file: %w", err)
		}
		logger.Debug("Loaded endpoints file.", "path", a.config.EndpointsFile, "count", len(fromFile))
	}

	var fromEnv endpoint.Table
	if a.config.EndpointEnvPrefix != "" {
		fromEnv = endpoint.FromProcessEnv(a.config.EndpointEnvPrefix)
		logger.Debug("Read endpoints from environment.", "prefix", a.config.EndpointEnvPrefix, "count", len(fromEnv))
	}

	fromFlags, err := endpoint.ParseAssignments(a.config.Endpoints)
	if err != nil {
		return nil, err
	}

	merged := endpoint.Merge(fromFile, fromEnv, fromFlags)
	logger.Debug("Endpoint lookup assembled.", "keys", merged.Keys())
	return merged, nil
}
