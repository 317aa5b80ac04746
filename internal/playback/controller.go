// internal/playback/controller.go
package playback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/credentials"
)

const (
	inletSize             = 256
	defaultReconnectDelay = time.Second
)

// Identity is the outcome of a worker's connection attempt.
type Identity struct {
	Username string
	Err      error
}

// Config holds the collaborators of a Controller.
type Config struct {
	Engine      Engine
	Sink        Sink
	Credentials credentials.Credentials
	Logger      *zap.Logger
	// Volume is the initial volume; nil means full volume.
	Volume *uint16
	// ReconnectDelay paces restarts after a failed connection.
	ReconnectDelay time.Duration
}

// Controller is the facade over the background worker. Its methods never
// block on the worker: instructions are queued on the current inlet and
// dropped when no worker is alive.
//
// Status and position bookkeeping live behind mu, the inlet behind inletMu,
// and the volume in an atomic since it needs no cross-field consistency.
type Controller struct {
	ctx            context.Context
	engine         Engine
	sink           Sink
	creds          credentials.Credentials
	logger         *zap.Logger
	reconnectDelay time.Duration

	mu      sync.RWMutex
	status  PlayerEvent
	elapsed *time.Duration // set only when paused
	since   *time.Time     // set only when playing
	user    string

	inletMu sync.RWMutex
	inlet   chan WorkerCommand

	// workerDone is closed by the most recently spawned worker on exit.
	workerMu   sync.Mutex
	workerDone chan struct{}

	volume atomic.Uint32
}

// NewController spawns the first worker and waits until its session is
// connected. A failed connection is returned as is; no worker is left behind.
func NewController(ctx context.Context, cfg Config) (*Controller, error) {
	if cfg.Engine == nil || cfg.Sink == nil {
		return nil, errors.New("playback: engine and sink are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	delay := cfg.ReconnectDelay
	if delay <= 0 {
		delay = defaultReconnectDelay
	}
	c := &Controller{
		ctx:            ctx,
		engine:         cfg.Engine,
		sink:           cfg.Sink,
		creds:          cfg.Credentials,
		logger:         logger.Named("playback"),
		reconnectDelay: delay,
		status:         Stopped{},
	}
	vol := uint32(math.MaxUint16)
	if cfg.Volume != nil {
		vol = uint32(*cfg.Volume)
	}
	c.volume.Store(vol)

	identity := make(chan Identity, 1)
	c.StartWorker(identity)
	select {
	case id := <-identity:
		if id.Err != nil {
			return nil, fmt.Errorf("connect: %w", id.Err)
		}
		c.mu.Lock()
		c.user = id.Username
		c.mu.Unlock()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return c, nil
}

// User returns the name of the authenticated user.
func (c *Controller) User() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Status returns the last playback phase reported by the engine.
func (c *Controller) Status() PlayerEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Progress returns the playback position of the loaded track.
func (c *Controller) Progress() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var p time.Duration
	if c.elapsed != nil {
		p += *c.elapsed
	}
	if c.since != nil {
		p += time.Since(*c.since)
	}
	return p
}

// UpdateStatus records an engine event. elapsed and since are kept
// mutually exclusive.
func (c *Controller) UpdateStatus(e PlayerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch e := e.(type) {
	case Paused:
		elapsed := e.Elapsed
		c.elapsed, c.since = &elapsed, nil
	case Playing:
		since := e.Since
		c.elapsed, c.since = nil, &since
	case Stopped, FinishedTrack:
		c.elapsed, c.since = nil, nil
	}
	c.status = e
}

// UpdateTrack resets the position when a different track gets loaded.
func (c *Controller) UpdateTrack() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elapsed, c.since = nil, nil
}

// Load asks the worker to load track, optionally starting playback, at
// startMillis.
func (c *Controller) Load(track Track, autoplay bool, startMillis uint32) {
	c.logger.Info("loading track", zap.String("id", track.ID), zap.String("title", track.Title))
	c.send(Load{Track: track, Autoplay: autoplay, StartMillis: startMillis})
}

func (c *Controller) Play()  { c.send(Play{}) }
func (c *Controller) Pause() { c.send(Pause{}) }
func (c *Controller) Stop()  { c.send(Stop{}) }

// TogglePlayback pauses when playing and resumes when paused.
func (c *Controller) TogglePlayback() {
	switch c.Status().(type) {
	case Playing:
		c.Pause()
	case Paused:
		c.Play()
	}
}

// Seek moves to an absolute position.
func (c *Controller) Seek(millis uint32) {
	c.send(Seek{Millis: millis})
}

// SeekRelative moves by delta from the current position, clamped at zero.
func (c *Controller) SeekRelative(delta int32) {
	target := max(c.Progress().Milliseconds()+int64(delta), 0)
	c.Seek(uint32(min(target, math.MaxUint32)))
}

// Volume returns the current volume. The controller is the source of
// truth; the engine's value is never read back.
func (c *Controller) Volume() uint16 {
	return uint16(c.volume.Load())
}

// SetVolume stores v and forwards it to the worker.
func (c *Controller) SetVolume(v uint16) {
	c.volume.Store(uint32(v))
	c.send(SetVolume{Volume: v})
}

// Preload hints the worker about the next track.
func (c *Controller) Preload(track Track) {
	c.send(Preload{Track: track})
}

// Shutdown asks the current worker to terminate.
func (c *Controller) Shutdown() {
	c.send(Shutdown{})
}

// Live reports whether a worker inlet is installed.
func (c *Controller) Live() bool {
	c.inletMu.RLock()
	defer c.inletMu.RUnlock()
	return c.inlet != nil
}

func (c *Controller) send(cmd WorkerCommand) {
	c.inletMu.RLock()
	inlet := c.inlet
	c.inletMu.RUnlock()

	if inlet == nil {
		c.logger.Warn("no worker available, dropping command", zap.Stringer("command", cmd))
		return
	}
	select {
	case inlet <- cmd:
		c.logger.Debug("sent command to worker", zap.Stringer("command", cmd))
	default:
		c.logger.Warn("worker inlet full, dropping command", zap.Stringer("command", cmd))
	}
}

func (c *Controller) setInlet(inlet chan WorkerCommand) {
	c.inletMu.Lock()
	c.inlet = inlet
	c.inletMu.Unlock()
}

// clearInlet removes inlet unless a newer worker already replaced it.
func (c *Controller) clearInlet(inlet chan WorkerCommand) {
	c.inletMu.Lock()
	if c.inlet == inlet {
		c.inlet = nil
	}
	c.inletMu.Unlock()
}
