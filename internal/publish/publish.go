// Package publish streams frames to a socket.io server so a remote viewer can
// follow a run.
package publish

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/specialistvlad/weasel/internal/ctxlog"
	"github.com/specialistvlad/weasel/internal/evolve"
)

// DefaultConnectTimeout bounds the wait for the initial connection.
const DefaultConnectTimeout = 10 * time.Second

// ErrInvalidURL is returned for endpoints the client cannot dial.
var ErrInvalidURL = errors.New("invalid publish URL")

// Options configures a Publisher.
type Options struct {
	URL                string
	Namespace          string
	Event              string
	ConnectTimeout     time.Duration
	InsecureSkipVerify bool
}

// Publisher is an evolve.Observer that emits every frame as a socket.io event.
type Publisher struct {
	event string
	emit  func(event string, payload map[string]any)
	close func()

	closeOnce sync.Once
}

// endpoint splits a publish URL into the manager base URL and the engine.io
// path. ws and wss are accepted as aliases for http and https.
func endpoint(raw string) (base, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "http", "https":
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	default:
		return "", "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("%w: missing host in %q", ErrInvalidURL, raw)
	}
	path = u.Path
	if path == "" || path == "/" {
		path = "/socket.io/"
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), path, nil
}

// Dial connects to the server and returns a Publisher once the connection is
// established. It fails if the connection errors, ctx ends, or the connect
// timeout passes first.
func Dial(ctx context.Context, opts Options) (*Publisher, error) {
	if opts.Event == "" {
		return nil, errors.New("publish event name is required")
	}
	base, path, err := endpoint(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.Namespace == "" {
		opts.Namespace = "/"
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}

	logger := ctxlog.FromContext(ctx).With("component", "publisher", "url", opts.URL, "namespace", opts.Namespace)

	sopts := socket.DefaultOptions()
	sopts.SetPath(path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(base, sopts)
	io := manager.Socket(opts.Namespace, sopts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Publisher connected.", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connected <- err
	})

	logger.Debug("Connecting publisher.")
	io.Connect()

	timer := time.NewTimer(opts.ConnectTimeout)
	defer timer.Stop()
	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-timer.C:
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", opts.ConnectTimeout)
	}

	return newPublisher(opts.Event,
		func(event string, payload map[string]any) { io.Emit(event, payload) },
		func() {
			logger.Debug("Disconnecting publisher.")
			io.Disconnect()
		},
	), nil
}

func newPublisher(event string, emit func(string, map[string]any), closeFn func()) *Publisher {
	return &Publisher{event: event, emit: emit, close: closeFn}
}

// Payload converts a frame into the event body.
func Payload(f evolve.Frame) map[string]any {
	words := make([]string, len(f.Matches))
	for i, m := range f.Matches {
		words[i] = m.Word
	}
	locked := make([]bool, len(f.Sequence))
	copy(locked, f.Locks.Locked)
	return map[string]any{
		"generation": f.Generation,
		"sequence":   f.Sequence.String(),
		"locked":     locked,
		"words":      words,
		"converged":  f.Converged,
	}
}

// ObserveFrame implements evolve.Observer. Emission does not wait for an
// acknowledgement.
func (p *Publisher) ObserveFrame(_ context.Context, f evolve.Frame) error {
	p.emit(p.event, Payload(f))
	return nil
}

// Close disconnects from the server. It is safe to call more than once.
func (p *Publisher) Close() error {
	p.closeOnce.Do(p.close)
	return nil
}
