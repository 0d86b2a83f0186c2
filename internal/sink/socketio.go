package sink

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/queueplan/internal/ctxlog"
	"github.com/specialistvlad/queueplan/internal/plan"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// CommandEvent is the socket.io event emitted once per phase.
const CommandEvent = "command"

// DefaultNamespace is the socket.io namespace used when none is configured.
const DefaultNamespace = "/"

const (
	defaultConnectTimeout = 15 * time.Second
	defaultAckTimeout     = 10 * time.Second
)

// SocketIOConfig configures the run-control connection.
type SocketIOConfig struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	// ConnectTimeout bounds the wait for the connection. Zero means 15s.
	ConnectTimeout time.Duration
	// AckTimeout bounds the wait for the server to acknowledge each event.
	// Zero means 10s.
	AckTimeout time.Duration
}

// SocketIO forwards a plan to a run-control server, one CommandEvent per
// phase, in phase order.
type SocketIO struct {
	cfg SocketIOConfig
}

// NewSocketIO creates a socket.io sink.
func NewSocketIO(cfg SocketIOConfig) *SocketIO {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.AckTimeout <= 0 {
		cfg.AckTimeout = defaultAckTimeout
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	return &SocketIO{cfg: cfg}
}

// Write implements Sink. Each event is acknowledged by the server before the
// next one is sent, so a nil error means every phase was delivered in order.
func (s *SocketIO) Write(ctx context.Context, p *plan.Plan) error {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", s.cfg.URL)

	events, err := Events(p)
	if err != nil {
		return err
	}

	io, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer io.Disconnect()

	for _, ev := range events {
		logger.Debug("Emitting event", "event", CommandEvent, "phase", ev["phase"])
		if err := s.emit(ctx, io, ev); err != nil {
			return err
		}
	}
	logger.Info("Plan forwarded.", "events", len(events))
	return nil
}

func (s *SocketIO) emit(ctx context.Context, io *socket.Socket, ev map[string]any) error {
	acked := make(chan error, 1)
	io.Timeout(s.cfg.AckTimeout).EmitWithAck(CommandEvent, ev)(func(_ []any, err error) {
		select {
		case acked <- err:
		default:
		}
	})

	select {
	case err := <-acked:
		if err != nil {
			return fmt.Errorf("socket.io server did not acknowledge %q event for phase %v: %w", CommandEvent, ev["phase"], err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while forwarding phase %v: %w", ev["phase"], ctx.Err())
	}
}

// Events builds the CommandEvent payloads: {"phase": name, "commands": [...]}
// where each command is {"target": name or nil, "payload": value}.
func Events(p *plan.Plan) ([]map[string]any, error) {
	events := make([]map[string]any, 0, len(p.Phases()))
	for _, ph := range p.Phases() {
		records, err := p.Records(ph)
		if err != nil {
			return nil, err
		}
		commands := make([]any, 0, len(records))
		for _, r := range records {
			var target any
			if r.Target != nil {
				target = *r.Target
			}
			commands = append(commands, map[string]any{"target": target, "payload": r.Payload})
		}
		events = append(events, map[string]any{"phase": ph.String(), "commands": commands})
	}
	return events, nil
}

func (s *SocketIO) connect(ctx context.Context) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", s.cfg.URL)

	parsedURL, err := url.Parse(s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid socket.io URL %q: scheme and host are required", s.cfg.URL)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if s.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(s.cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", errs[0])
			}
		}
		select {
		case connectChan <- err:
		default:
		}
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(s.cfg.ConnectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", s.cfg.ConnectTimeout)
	}
}
