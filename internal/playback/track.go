package playback

import "time"

// Track is a remote track as the catalog client reports it.
type Track struct {
	ID       string
	Title    string
	Artist   string
	Album    string
	AlbumID  string
	Duration time.Duration
	// Suffix is the container format the server will stream ("mp3", "flac").
	Suffix string
	Added  time.Time
}

// DisplayTitle returns "Artist - Title", or just the title when the artist
// is unknown.
func (t Track) DisplayTitle() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " - " + t.Title
}
