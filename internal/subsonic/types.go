package subsonic

import (
	"fmt"
	"time"

	"github.com/llehouerou/ripple/internal/playback"
)

// Error is a failure reported by the server in the response envelope.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("subsonic error %d: %s", e.Code, e.Message)
}

// Well-known Subsonic error codes.
const (
	CodeWrongCredentials = 40
	CodeNotFound         = 70
)

// Song is a song entry as returned by search3, getStarred2 and similar.
type Song struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Album    string    `json:"album"`
	Artist   string    `json:"artist"`
	AlbumID  string    `json:"albumId"`
	ArtistID string    `json:"artistId"`
	Duration int       `json:"duration"` // seconds
	Number   int       `json:"track"`
	Suffix   string    `json:"suffix"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
}

// Track converts s to the playback representation.
func (s Song) Track() playback.Track {
	return playback.Track{
		ID:       s.ID,
		Title:    s.Title,
		Artist:   s.Artist,
		Album:    s.Album,
		AlbumID:  s.AlbumID,
		Duration: time.Duration(s.Duration) * time.Second,
		Suffix:   s.Suffix,
		Added:    s.Created,
	}
}

// Tracks converts songs in order.
func Tracks(songs []Song) []playback.Track {
	out := make([]playback.Track, len(songs))
	for i, s := range songs {
		out[i] = s.Track()
	}
	return out
}

// envelope is the common "subsonic-response" wrapper. Only the payloads
// this client requests are listed.
type envelope struct {
	Response struct {
		Status        string `json:"status"`
		Version       string `json:"version"`
		Type          string `json:"type"`
		ServerVersion string `json:"serverVersion"`
		Error         *Error `json:"error,omitempty"`
		SearchResult3 struct {
			Songs []Song `json:"song"`
		} `json:"searchResult3"`
		SimilarSongs2 struct {
			Songs []Song `json:"song"`
		} `json:"similarSongs2"`
		Starred2 struct {
			Songs []Song `json:"song"`
		} `json:"starred2"`
		Album struct {
			Songs []Song `json:"song"`
		} `json:"album"`
		TopSongs struct {
			Songs []Song `json:"song"`
		} `json:"topSongs"`
	} `json:"subsonic-response"`
}
