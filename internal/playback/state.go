// internal/playback/state.go
package playback

// RepeatMode defines the repeat behavior of the playing queue.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatPlaylist
	RepeatTrack
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatNone:
		return "none"
	case RepeatPlaylist:
		return "playlist"
	case RepeatTrack:
		return "track"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m when cycling:
// none -> playlist -> track -> none.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatNone:
		return RepeatPlaylist
	case RepeatPlaylist:
		return RepeatTrack
	default:
		return RepeatNone
	}
}
