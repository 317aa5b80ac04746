package subsonic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionConfig controls the keepalive of a Session.
type SessionConfig struct {
	// Keepalive is the ping interval.
	Keepalive time.Duration
	// MaxFailures consecutive failed pings make the session fatal.
	MaxFailures int
}

// Session is a verified connection to a server. A background goroutine
// pings it; once MaxFailures pings in a row fail the session is dead and
// Done is closed.
type Session struct {
	client *Client
	cfg    SessionConfig
	logger *zap.Logger

	done   chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu  sync.Mutex
	err error
}

// Dial pings the server once and starts the keepalive.
func Dial(ctx context.Context, client *Client, cfg SessionConfig) (*Session, error) {
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", client.baseURL, err)
	}
	if cfg.Keepalive <= 0 {
		cfg.Keepalive = 30 * time.Second
	}
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 3
	}

	kctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &Session{
		client: client,
		cfg:    cfg,
		logger: client.logger,
		done:   make(chan struct{}),
		cancel: cancel,
	}
	s.wg.Go(func() { s.keepalive(kctx) })
	return s, nil
}

// Client returns the API client of the session.
func (s *Session) Client() *Client {
	return s.client
}

func (s *Session) Username() string      { return s.client.Username() }
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops the keepalive. It does not close Done.
func (s *Session) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}

func (s *Session) keepalive(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Keepalive)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		err := s.client.Ping(ctx)
		if err == nil {
			failures = 0
			continue
		}
		if ctx.Err() != nil {
			return
		}
		failures++
		s.logger.Warn("keepalive ping failed", zap.Int("failures", failures), zap.Error(err))
		if failures >= s.cfg.MaxFailures {
			s.fail(fmt.Errorf("server unreachable after %d pings: %w", failures, err))
			return
		}
	}
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.done)
}
