package playback

import "time"

// Event is anything the playback subsystem reports to the application loop.
// The set is closed: PlayerEvent variants and SessionDied.
type Event interface {
	isEvent()
}

// PlayerEvent is the playback phase as last reported by the engine.
type PlayerEvent interface {
	Event
	isPlayerEvent()
}

// Playing is emitted when audio starts or resumes. Since is the wall-clock
// instant the track would have started at had it never been paused, so the
// position is time.Since(Since).
type Playing struct {
	Since time.Time
}

// Paused is emitted when playback is suspended at Elapsed.
type Paused struct {
	Elapsed time.Duration
}

// Stopped is emitted when playback is stopped and nothing is loaded.
type Stopped struct{}

// FinishedTrack is emitted when the loaded track reached its end.
type FinishedTrack struct{}

// SessionDied is emitted by a worker when it terminates, whatever the cause.
type SessionDied struct{}

func (Playing) isEvent()       {}
func (Paused) isEvent()        {}
func (Stopped) isEvent()       {}
func (FinishedTrack) isEvent() {}
func (SessionDied) isEvent()   {}

func (Playing) isPlayerEvent()       {}
func (Paused) isPlayerEvent()        {}
func (Stopped) isPlayerEvent()       {}
func (FinishedTrack) isPlayerEvent() {}

// Sink receives events from workers. Send must not block.
type Sink interface {
	Send(Event)
}

// EventName returns a short lowercase name for logging.
func EventName(e Event) string {
	switch e.(type) {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	case FinishedTrack:
		return "finished"
	case SessionDied:
		return "session_died"
	default:
		return "unknown"
	}
}
