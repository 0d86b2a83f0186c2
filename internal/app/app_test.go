package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/queueplan/internal/binder"
	"github.com/specialistvlad/queueplan/internal/hcl"
	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/registry"
	"github.com/specialistvlad/queueplan/internal/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gridHCL = `
queue "hose" {
  kind     = "FollySPSCQueue"
  capacity = 10000
}

module "fdc" {
  plugin = "FakeDataConsumer"
  binding "input" {
    queue     = "hose"
    direction = "input"
  }
  on "conf" {
    data = { nIntsPerVector = 10, starting_int = -4, ending_int = 14000000, queue_timeout_ms = 100 }
  }
  on "stop" {}
}

module "ntoq" {
  plugin = "NetworkToQueue"
  binding "output" {
    queue     = "hose"
    direction = "output"
  }
  on "conf" {
    data = {
      msg_type        = "dunedaq::nwqueueadapters::fsd::FakeData"
      msg_module_name = "FakeData"
      receiver_config = { address = endpoint("fake_data") }
    }
  }
  on "pause" {}
}
`

func writeGrid(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grid.hcl"), []byte(content), 0644))
	return dir
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	planOut := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	cfg.PlanWriter = planOut
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)
	return NewApp(logs, appConfig, hcl.NewLoader()), planOut, logs
}

func addressOf(t *testing.T, planJSON []byte) string {
	t.Helper()
	var decoded map[string][]struct {
		Target  *string        `json:"target"`
		Payload map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(planJSON, &decoded))
	for _, rec := range decoded["conf"] {
		if rec.Target != nil && *rec.Target == "ntoq" {
			return rec.Payload["receiver_config"].(map[string]any)["address"].(string)
		}
	}
	t.Fatal("no conf command for ntoq")
	return ""
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.Error(t, err)

	cfg, err := NewConfig(Config{GridPaths: []string{"grid"}})
	require.NoError(t, err)
	assert.Equal(t, sink.JSON, cfg.Format)
	assert.Equal(t, os.Stdout, cfg.PlanWriter)

	_, err = NewConfig(Config{GridPaths: []string{"grid"}, Format: "toml"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestRun_CompilesAndWritesPlan(t *testing.T) {
	a, planOut, logs := newTestApp(t, Config{
		GridPaths: []string{writeGrid(t, gridHCL)},
		Endpoints: []string{"fake_data=tcp://localhost:5555"},
	})

	p, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"fdc", "ntoq"}, p.Get(phase.Conf).Targets())
	assert.Equal(t, "tcp://localhost:5555", addressOf(t, planOut.Bytes()))
	// NetworkToQueue has no pause handler; that is a warning, not an error.
	assert.Contains(t, logs.String(), "does not accept 'pause' commands")
}

func TestRun_StrictTurnsFindingsIntoErrors(t *testing.T) {
	a, planOut, _ := newTestApp(t, Config{
		GridPaths: []string{writeGrid(t, gridHCL)},
		Endpoints: []string{"fake_data=tcp://localhost:5555"},
		Strict:    true,
	})

	_, err := a.Run(context.Background())
	var checkErr *registry.CheckError
	require.True(t, errors.As(err, &checkErr))
	assert.Len(t, checkErr.Findings, 1)
	assert.Empty(t, planOut.String())
}

func TestRun_UnresolvedEndpoint(t *testing.T) {
	a, planOut, _ := newTestApp(t, Config{GridPaths: []string{writeGrid(t, gridHCL)}})

	_, err := a.Run(context.Background())
	var unresolved *binder.UnresolvedEndpointError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "fake_data", unresolved.Key)
	assert.Equal(t, "ntoq", unresolved.Module)
	assert.Empty(t, planOut.String(), "nothing is written when compilation fails")
}

func TestRun_EndpointPrecedence(t *testing.T) {
	endpointsFile := filepath.Join(t.TempDir(), "endpoints.toml")
	require.NoError(t, os.WriteFile(endpointsFile, []byte("[endpoints]\nfake_data = \"tcp://file:1\"\n"), 0644))
	grid := writeGrid(t, gridHCL)

	run := func(cfg Config) string {
		cfg.GridPaths = []string{grid}
		a, planOut, _ := newTestApp(t, cfg)
		_, err := a.Run(context.Background())
		require.NoError(t, err)
		return addressOf(t, planOut.Bytes())
	}

	assert.Equal(t, "tcp://file:1", run(Config{EndpointsFile: endpointsFile}))

	t.Setenv("QPTEST_ENDPOINT_FAKE_DATA", "tcp://env:2")
	assert.Equal(t, "tcp://env:2", run(Config{EndpointsFile: endpointsFile, EndpointEnvPrefix: "QPTEST_ENDPOINT"}))

	assert.Equal(t, "tcp://flag:3", run(Config{
		EndpointsFile:     endpointsFile,
		EndpointEnvPrefix: "QPTEST_ENDPOINT",
		Endpoints:         []string{"fake_data=tcp://flag:3"},
	}))
}

func TestRun_WritesYAMLFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plan.yaml")
	a, planOut, _ := newTestApp(t, Config{
		GridPaths:  []string{writeGrid(t, gridHCL)},
		Endpoints:  []string{"fake_data=tcp://localhost:5555"},
		Format:     sink.YAML,
		OutputPath: out,
	})

	_, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, planOut.String())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "address: tcp://localhost:5555")
}

func TestRun_LoadError(t *testing.T) {
	a, _, _ := newTestApp(t, Config{GridPaths: []string{filepath.Join(t.TempDir(), "missing")}})
	_, err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
