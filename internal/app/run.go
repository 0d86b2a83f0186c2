package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/queueplan/internal/compiler"
	"github.com/specialistvlad/queueplan/internal/ctxlog"
	"github.com/specialistvlad/queueplan/internal/plan"
	"github.com/specialistvlad/queueplan/internal/registry"
	"github.com/specialistvlad/queueplan/internal/sink"
	"github.com/specialistvlad/queueplan/internal/topology"
)

// Run executes the compile pipeline and delivers the plan to every
// configured sink. It returns the compiled plan.
func (a *App) Run(ctx context.Context) (*plan.Plan, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "paths", a.config.GridPaths)

	model, err := a.loader.Load(ctx, a.config.GridPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded and translated into unified model.")

	topo, err := topology.Build(model.Queues, model.Modules)
	if err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}
	a.logger.Info("Topology validated.", "queues", len(topo.Queues()), "modules", len(topo.Modules()))

	lookup, err := a.endpoints(ctx)
	if err != nil {
		return nil, err
	}

	findings := a.registry.Check(ctx, topo, model.Params)
	for _, f := range findings {
		a.logger.Warn("Plugin catalog finding.", "finding", f)
	}
	if a.config.Strict && len(findings) > 0 {
		return nil, &registry.CheckError{Findings: findings}
	}

	p, err := compiler.Compile(ctx, topo, model.Params, lookup)
	if err != nil {
		return nil, fmt.Errorf("compilation failed: %w", err)
	}
	a.logger.Info("Plan compiled.", "commands", p.Len())

	for _, s := range a.sinks() {
		if err := s.Write(ctx, p); err != nil {
			return nil, err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return p, nil
}

func (a *App) sinks() []sink.Sink {
	var sinks []sink.Sink
	if a.config.OutputPath != "" {
		sinks = append(sinks, sink.NewFile(a.config.OutputPath, a.config.Format))
	} else {
		sinks = append(sinks, sink.NewWriter(a.config.PlanWriter, a.config.Format))
	}
	if a.config.SubmitURL != "" {
		sinks = append(sinks, sink.NewSocketIO(sink.SocketIOConfig{
			URL:            a.config.SubmitURL,
			Namespace:      a.config.SubmitNamespace,
			ConnectTimeout: a.config.SubmitTimeout,
		}))
	}
	return sinks
}
