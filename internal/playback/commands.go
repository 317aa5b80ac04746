package playback

import "fmt"

// WorkerCommand is an instruction for the background worker. The set is
// closed; see the variants below.
type WorkerCommand interface {
	isWorkerCommand()
	fmt.Stringer
}

// Load loads Track and seeks to StartMillis, starting playback when
// Autoplay is set.
type Load struct {
	Track       Track
	Autoplay    bool
	StartMillis uint32
}

type (
	Play     struct{}
	Pause    struct{}
	Stop     struct{}
	Shutdown struct{}
)

// Seek moves the playhead to an absolute position.
type Seek struct {
	Millis uint32
}

// SetVolume applies a new volume on the player.
type SetVolume struct {
	Volume uint16
}

// Preload fetches Track ahead of time so a later Load starts immediately.
type Preload struct {
	Track Track
}

func (Load) isWorkerCommand()      {}
func (Play) isWorkerCommand()      {}
func (Pause) isWorkerCommand()     {}
func (Stop) isWorkerCommand()      {}
func (Seek) isWorkerCommand()      {}
func (SetVolume) isWorkerCommand() {}
func (Preload) isWorkerCommand()   {}
func (Shutdown) isWorkerCommand()  {}

func (c Load) String() string {
	return fmt.Sprintf("load(%s, autoplay=%t, at=%dms)", c.Track.ID, c.Autoplay, c.StartMillis)
}
func (Play) String() string        { return "play" }
func (Pause) String() string       { return "pause" }
func (Stop) String() string        { return "stop" }
func (c Seek) String() string      { return fmt.Sprintf("seek(%dms)", c.Millis) }
func (c SetVolume) String() string { return fmt.Sprintf("setvolume(%d)", c.Volume) }
func (c Preload) String() string   { return fmt.Sprintf("preload(%s)", c.Track.ID) }
func (Shutdown) String() string    { return "shutdown" }
