// Package player plays tracks streamed from the server through the local
// audio device.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/playback"
)

const eventBuffer = 64

// Fetcher downloads the audio of a track.
type Fetcher interface {
	Fetch(ctx context.Context, id string) ([]byte, error)
}

// Player is a playback.Player on top of the beep speaker.
//
// Lock order is p.mu then the speaker lock. The end-of-track callback runs
// under the speaker lock, so it only touches atomics and the event channel.
type Player struct {
	fetcher Fetcher
	logger  *zap.Logger
	events  chan playback.PlayerEvent
	cache   preloadCache

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	current *stream // nil when stopped
	volume  uint16

	// generation identifies the stream end-of-track callbacks belong to.
	generation atomic.Uint64
}

type stream struct {
	track  playback.Track
	source beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl
	gain   *effects.Volume
}

var _ playback.Player = (*Player)(nil)

// New creates a player. The audio device is opened on the first Load.
func New(fetcher Fetcher, volume uint16, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		fetcher: fetcher,
		logger:  logger.Named("player"),
		events:  make(chan playback.PlayerEvent, eventBuffer),
		ctx:     ctx,
		cancel:  cancel,
		volume:  volume,
	}
}

// Events returns the channel phase changes are reported on.
func (p *Player) Events() <-chan playback.PlayerEvent {
	return p.events
}

// Load replaces the current track. The audio comes from the preload cache
// when the track was preloaded.
func (p *Player) Load(track playback.Track, autoplay bool, startMillis uint32) error {
	if err := initSpeaker(); err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}

	data, ok := p.cache.take(track.ID)
	if !ok {
		var err error
		if data, err = p.fetcher.Fetch(p.ctx, track.ID); err != nil {
			return fmt.Errorf("fetch %s: %w", track.ID, err)
		}
	}
	source, format, err := decode(track.Suffix, data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", track.ID, err)
	}
	if startMillis > 0 {
		if err := source.Seek(sampleAt(format, source.Len(), startMillis)); err != nil {
			source.Close()
			return fmt.Errorf("seek %s: %w", track.ID, err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	var s beep.Streamer = source
	if format.SampleRate != speakerRate {
		s = beep.Resample(resampleQuality, format.SampleRate, speakerRate, source)
	}
	ctrl := &beep.Ctrl{Streamer: s, Paused: !autoplay}
	gain := &effects.Volume{Streamer: ctrl, Base: 2}
	gain.Volume, gain.Silent = levelToVolume(p.volume)

	gen := p.generation.Add(1)
	p.current = &stream{track: track, source: source, format: format, ctrl: ctrl, gain: gain}
	speaker.Play(beep.Seq(gain, beep.Callback(func() { p.finished(gen) })))

	p.logger.Debug("loaded track",
		zap.String("id", track.ID),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Bool("autoplay", autoplay))
	p.emitPhaseLocked()
	return nil
}

func (p *Player) Play() {
	p.setPaused(false)
}

func (p *Player) Pause() {
	p.setPaused(true)
}

func (p *Player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return
	}
	speaker.Lock()
	p.current.ctrl.Paused = paused
	speaker.Unlock()
	p.emitPhaseLocked()
}

// Stop unloads the current track.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.emit(playback.Stopped{})
}

// Seek moves to millis, clamped to the track length.
func (p *Player) Seek(millis uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return errors.New("seek: no track loaded")
	}
	s := p.current
	speaker.Lock()
	err := s.source.Seek(sampleAt(s.format, s.source.Len(), millis))
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	p.emitPhaseLocked()
	return nil
}

// SetVolume applies v, where math.MaxUint16 is full volume.
func (p *Player) SetVolume(v uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
	if p.current == nil {
		return
	}
	speaker.Lock()
	p.current.gain.Volume, p.current.gain.Silent = levelToVolume(v)
	speaker.Unlock()
}

// Preload fetches track in the background so a later Load starts at once.
// Only the most recent preload is kept.
func (p *Player) Preload(track playback.Track) {
	if !p.cache.claim(track.ID) {
		return
	}
	p.wg.Go(func() {
		data, err := p.fetcher.Fetch(p.ctx, track.ID)
		if err != nil {
			p.cache.abandon(track.ID)
			if p.ctx.Err() == nil {
				p.logger.Warn("preload failed", zap.String("id", track.ID), zap.Error(err))
			}
			return
		}
		p.cache.store(track.ID, data)
	})
}

// Close stops playback and waits for pending preloads.
func (p *Player) Close() error {
	p.cancel()
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

func (p *Player) stopLocked() {
	if p.current == nil {
		return
	}
	p.generation.Add(1)
	speaker.Clear()
	if err := p.current.source.Close(); err != nil {
		p.logger.Debug("close stream", zap.Error(err))
	}
	p.current = nil
}

// emitPhaseLocked reports Playing or Paused for the current position.
func (p *Player) emitPhaseLocked() {
	s := p.current
	speaker.Lock()
	paused := s.ctrl.Paused
	pos := s.format.SampleRate.D(s.source.Position())
	speaker.Unlock()
	if paused {
		p.emit(playback.Paused{Elapsed: pos})
		return
	}
	p.emit(playback.Playing{Since: time.Now().Add(-pos)})
}

// finished runs on the speaker goroutine when a stream drains.
func (p *Player) finished(gen uint64) {
	if p.generation.Load() != gen {
		return
	}
	p.emit(playback.FinishedTrack{})
}

func (p *Player) emit(e playback.PlayerEvent) {
	select {
	case p.events <- e:
	default:
		p.logger.Warn("player event dropped", zap.String("event", playback.EventName(e)))
	}
}

func sampleAt(format beep.Format, length int, millis uint32) int {
	n := format.SampleRate.N(time.Duration(millis) * time.Millisecond)
	return min(max(n, 0), max(length-1, 0))
}
