// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/queueplan/internal/app"
	"github.com/specialistvlad/queueplan/internal/hcl"
	"github.com/specialistvlad/queueplan/internal/plan"
	"github.com/specialistvlad/queueplan/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Bytes returns a copy of the buffered data.
func (b *SafeBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.b.Bytes()...)
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput  string
	PlanOutput []byte
	Plan       *plan.Plan
	Err        error
	App        *app.App
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg, modules...)
}

// RunIntegrationTestWithContext writes the given files into a temporary grid
// directory, runs the full application against it and captures logs and the
// plan. cfg.GridPaths defaults to that directory; relative paths in cfg are
// resolved against it. Endpoints are not read from the environment.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	if len(cfg.GridPaths) == 0 {
		cfg.GridPaths = []string{tmpDir}
	} else {
		paths := make([]string, len(cfg.GridPaths))
		for i, p := range cfg.GridPaths {
			paths[i] = p
			if !filepath.IsAbs(p) {
				paths[i] = filepath.Join(tmpDir, p)
			}
		}
		cfg.GridPaths = paths
	}
	if cfg.EndpointsFile != "" && !filepath.IsAbs(cfg.EndpointsFile) {
		cfg.EndpointsFile = filepath.Join(tmpDir, cfg.EndpointsFile)
	}
	if cfg.OutputPath != "" && !filepath.IsAbs(cfg.OutputPath) {
		cfg.OutputPath = filepath.Join(tmpDir, cfg.OutputPath)
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	planBuffer := &SafeBuffer{}
	cfg.PlanWriter = planBuffer
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, appConfig, hcl.NewLoader(), modules...)
	p, runErr := testApp.Run(ctx)

	if os.Getenv("QUEUEPLAN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput:  logBuffer.String(),
		PlanOutput: planBuffer.Bytes(),
		Plan:       p,
		Err:        runErr,
		App:        testApp,
	}
}
