package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/queueplan/internal/command"
	"github.com/specialistvlad/queueplan/internal/params"
	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	sio "github.com/zishang520/socket.io/v2/socket"
	"gopkg.in/yaml.v3"
)

func samplePlan(t *testing.T) *plan.Plan {
	t.Helper()
	conf, err := command.Address([]command.Target{
		{Name: "fdc", Data: cty.ObjectVal(map[string]cty.Value{"starting_int": cty.NumberIntVal(-4)})},
	})
	require.NoError(t, err)
	stop, err := command.Address([]command.Target{{Name: "fdc", Data: params.Null()}})
	require.NoError(t, err)

	p, err := plan.New(map[phase.Phase]command.Set{
		phase.Init: command.Broadcast(cty.ObjectVal(map[string]cty.Value{"queues": cty.EmptyTupleVal})),
		phase.Conf: conf,
		phase.Stop: stop,
	})
	require.NoError(t, err)
	return p
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, JSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, JSON).Write(context.Background(), samplePlan(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, phase.Count)
	assert.Equal(t, []any{map[string]any{"target": "fdc", "payload": nil}}, decoded["stop"])
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, NewFile(path, YAML).Write(context.Background(), samplePlan(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	assert.Equal(t, "fdc", decoded["conf"][0]["target"])
	assert.Equal(t, map[string]any{"starting_int": -4}, decoded["conf"][0]["payload"])
	assert.Nil(t, decoded["init"][0]["target"])
	assert.Empty(t, decoded["pause"])
}

func TestFile_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "plan.json")
	err := NewFile(path, JSON).Write(context.Background(), samplePlan(t))
	assert.Error(t, err)
}

func TestEvents(t *testing.T) {
	events, err := Events(samplePlan(t))
	require.NoError(t, err)
	require.Len(t, events, phase.Count)

	var phases []string
	for _, ev := range events {
		phases = append(phases, ev["phase"].(string))
	}
	assert.Equal(t, []string{"init", "conf", "start", "pause", "resume", "stop", "scrap"}, phases)

	expectedConf := map[string]any{
		"phase": "conf",
		"commands": []any{
			map[string]any{"target": "fdc", "payload": map[string]any{"starting_int": int64(-4)}},
		},
	}
	if diff := cmp.Diff(expectedConf, events[1]); diff != "" {
		t.Errorf("conf event mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, events[0]["commands"].([]any)[0].(map[string]any)["target"])
	assert.Empty(t, events[2]["commands"])
}

func TestSocketIO_InvalidURL(t *testing.T) {
	err := NewSocketIO(SocketIOConfig{URL: "not a url"}).Write(context.Background(), samplePlan(t))
	assert.Error(t, err)
}

func TestSocketIO_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSocketIO(SocketIOConfig{URL: "http://127.0.0.1:1", ConnectTimeout: time.Second})
	err := s.Write(ctx, samplePlan(t))
	assert.Error(t, err)
}

// runControlServer starts a socket.io server that records every CommandEvent
// payload. When ack is false the server never acknowledges.
func runControlServer(t *testing.T, ack bool) (string, func() []any) {
	t.Helper()

	var (
		mu       sync.Mutex
		received []any
	)
	server := sio.NewServer(nil, nil)
	server.On("connection", func(clients ...any) {
		client := clients[0].(*sio.Socket)
		client.On(CommandEvent, func(args ...any) {
			if len(args) == 0 {
				return
			}
			mu.Lock()
			received = append(received, args[0])
			mu.Unlock()
			if respond, ok := args[len(args)-1].(sio.Ack); ok && ack {
				respond([]any{"ok"}, nil)
			}
		})
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server.ServeHandler(nil))
	ts := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close(nil)
		ts.Close()
	})

	return ts.URL, func() []any {
		mu.Lock()
		defer mu.Unlock()
		return append([]any(nil), received...)
	}
}

func TestSocketIO_ForwardsEveryPhaseInOrder(t *testing.T) {
	url, received := runControlServer(t, true)
	p := samplePlan(t)

	s := NewSocketIO(SocketIOConfig{URL: url, ConnectTimeout: 5 * time.Second, AckTimeout: 5 * time.Second})
	require.NoError(t, s.Write(context.Background(), p))

	events, err := Events(p)
	require.NoError(t, err)
	raw, err := json.Marshal(events)
	require.NoError(t, err)
	var expected []any
	require.NoError(t, json.Unmarshal(raw, &expected))

	got := received()
	require.Len(t, got, phase.Count)
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("forwarded events mismatch (-want +got):\n%s", diff)
	}

	var phases []string
	for _, ev := range got {
		phases = append(phases, ev.(map[string]any)["phase"].(string))
	}
	assert.Equal(t, []string{"init", "conf", "start", "pause", "resume", "stop", "scrap"}, phases)
}

func TestSocketIO_UnacknowledgedEventFails(t *testing.T) {
	url, received := runControlServer(t, false)

	s := NewSocketIO(SocketIOConfig{URL: url, ConnectTimeout: 5 * time.Second, AckTimeout: 200 * time.Millisecond})
	err := s.Write(context.Background(), samplePlan(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not acknowledge")
	assert.Eventually(t, func() bool { return len(received()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestNewSocketIO_Defaults(t *testing.T) {
	s := NewSocketIO(SocketIOConfig{URL: "http://localhost:3000"})
	assert.Equal(t, DefaultNamespace, s.cfg.Namespace)
	assert.Equal(t, defaultConnectTimeout, s.cfg.ConnectTimeout)
	assert.Equal(t, defaultAckTimeout, s.cfg.AckTimeout)
}
