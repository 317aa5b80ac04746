package playback

import (
	"context"
	"errors"

	"github.com/llehouerou/ripple/internal/credentials"
)

// ErrSessionUnavailable is returned by engines when the remote service
// cannot be reached.
var ErrSessionUnavailable = errors.New("session unavailable")

// Engine establishes sessions and builds players on top of them.
// It is only ever called from a worker goroutine.
type Engine interface {
	Connect(ctx context.Context, creds credentials.Credentials) (Session, error)
	NewPlayer(s Session, volume uint16) (Player, error)
}

// Session is a live connection to the remote service.
type Session interface {
	Username() string
	// Done is closed when the session hit a fatal fault.
	Done() <-chan struct{}
	// Err returns the fault that closed Done, or nil.
	Err() error
	Close() error
}

// Player executes playback instructions. Methods may block on network I/O.
// A player that can no longer play closes Events; the worker then exits.
type Player interface {
	Load(track Track, autoplay bool, startMillis uint32) error
	Play()
	Pause()
	Stop()
	Seek(millis uint32) error
	SetVolume(volume uint16)
	Preload(track Track)
	Events() <-chan PlayerEvent
	Close() error
}
