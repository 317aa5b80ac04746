// internal/playback/mock.go
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/llehouerou/ripple/internal/credentials"
)

// MockEngine is a test double for Engine. Sessions and players it creates
// are kept so tests can drive them.
type MockEngine struct {
	mu         sync.Mutex
	connectErr error
	gate       chan struct{}
	sessions   []*MockSession
	players    []*MockPlayer
	creds      []credentials.Credentials
}

// NewMockEngine creates an engine whose sessions always connect.
func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

func (e *MockEngine) Connect(ctx context.Context, creds credentials.Credentials) (Session, error) {
	e.mu.Lock()
	gate := e.gate
	e.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.creds = append(e.creds, creds)
	if e.connectErr != nil {
		return nil, e.connectErr
	}
	s := &MockSession{username: creds.Username, done: make(chan struct{})}
	e.sessions = append(e.sessions, s)
	return s, nil
}

func (e *MockEngine) NewPlayer(_ Session, volume uint16) (Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := &MockPlayer{volume: volume, events: make(chan PlayerEvent, 64)}
	e.players = append(e.players, p)
	return p, nil
}

// Test helpers

// SetConnectError makes subsequent connections fail with err (nil restores).
func (e *MockEngine) SetConnectError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.connectErr = err
}

// Hold makes Connect block until Release is called.
func (e *MockEngine) Hold() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gate = make(chan struct{})
}

// Release unblocks connections held by Hold.
func (e *MockEngine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gate != nil {
		close(e.gate)
		e.gate = nil
	}
}

// Connects returns the number of connection attempts.
func (e *MockEngine) Connects() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.creds)
}

// Sessions returns the sessions created so far.
func (e *MockEngine) Sessions() []*MockSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*MockSession(nil), e.sessions...)
}

// Players returns the players created so far.
func (e *MockEngine) Players() []*MockPlayer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*MockPlayer(nil), e.players...)
}

// LastPlayer returns the most recent player, or nil.
func (e *MockEngine) LastPlayer() *MockPlayer {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.players) == 0 {
		return nil
	}
	return e.players[len(e.players)-1]
}

// MockSession is a test double for Session.
type MockSession struct {
	mu       sync.Mutex
	username string
	done     chan struct{}
	err      error
	closed   bool
}

func (s *MockSession) Username() string      { return s.username }
func (s *MockSession) Done() <-chan struct{} { return s.done }

func (s *MockSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *MockSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Fail simulates a fatal session fault.
func (s *MockSession) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	s.err = err
	close(s.done)
}

// Closed reports whether Close was called.
func (s *MockSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// MockPlayer is a test double for Player. It records every instruction and
// emits the events a real player would for Load, Play, Pause and Stop.
type MockPlayer struct {
	mu       sync.Mutex
	calls    []WorkerCommand
	volume   uint16
	position time.Duration
	since    time.Time
	playing  bool
	events   chan PlayerEvent
	closed   bool
}

func (p *MockPlayer) Load(track Track, autoplay bool, startMillis uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Load{Track: track, Autoplay: autoplay, StartMillis: startMillis})
	p.position = time.Duration(startMillis) * time.Millisecond
	p.playing = false
	if autoplay {
		p.startLocked()
	} else {
		p.emitLocked(Paused{Elapsed: p.position})
	}
	return nil
}

func (p *MockPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Play{})
	if !p.playing {
		p.startLocked()
	}
}

func (p *MockPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Pause{})
	if p.playing {
		p.position += time.Since(p.since)
		p.playing = false
		p.emitLocked(Paused{Elapsed: p.position})
	}
}

func (p *MockPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Stop{})
	p.playing = false
	p.position = 0
	p.emitLocked(Stopped{})
}

func (p *MockPlayer) Seek(millis uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Seek{Millis: millis})
	p.position = time.Duration(millis) * time.Millisecond
	if p.playing {
		p.startLocked()
	} else {
		p.emitLocked(Paused{Elapsed: p.position})
	}
	return nil
}

func (p *MockPlayer) SetVolume(v uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, SetVolume{Volume: v})
	p.volume = v
}

func (p *MockPlayer) Preload(track Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Preload{Track: track})
}

func (p *MockPlayer) Events() <-chan PlayerEvent { return p.events }

func (p *MockPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.events)
	}
	return nil
}

func (p *MockPlayer) startLocked() {
	p.since = time.Now().Add(-p.position)
	p.playing = true
	p.emitLocked(Playing{Since: p.since})
}

func (p *MockPlayer) emitLocked(e PlayerEvent) {
	if p.closed {
		return
	}
	select {
	case p.events <- e:
	default:
	}
}

// Test helpers

// Calls returns the instructions executed so far, in order.
func (p *MockPlayer) Calls() []WorkerCommand {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]WorkerCommand(nil), p.calls...)
}

// Volume returns the last volume applied.
func (p *MockPlayer) Volume() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Finish simulates the end of the loaded track.
func (p *MockPlayer) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	p.position = 0
	p.emitLocked(FinishedTrack{})
}

// Crash closes the event stream as a player whose backend failed would.
func (p *MockPlayer) Crash() {
	_ = p.Close()
}

// Closed reports whether Close was called.
func (p *MockPlayer) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Verify mocks implement the engine interfaces at compile time.
var (
	_ Engine  = (*MockEngine)(nil)
	_ Session = (*MockSession)(nil)
	_ Player  = (*MockPlayer)(nil)
)
