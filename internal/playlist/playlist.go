// Package playlist holds the playing queue.
package playlist

import (
	"slices"

	"github.com/llehouerou/ripple/internal/playback"
)

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []playback.Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]playback.Track, 0),
	}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...playback.Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Insert inserts tracks before index. An out of range index appends.
func (p *Playlist) Insert(index int, tracks ...playback.Track) {
	if index < 0 || index > len(p.tracks) {
		index = len(p.tracks)
	}
	p.tracks = slices.Insert(p.tracks, index, tracks...)
}

// Remove removes the track at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	p.tracks = slices.Delete(p.tracks, index, index+1)
	return true
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []playback.Track {
	return slices.Clone(p.tracks)
}

// Track returns the track at the given index, or false if out of bounds.
func (p *Playlist) Track(index int) (playback.Track, bool) {
	if index < 0 || index >= len(p.tracks) {
		return playback.Track{}, false
	}
	return p.tracks[index], true
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Move moves the track at fromIndex to toIndex.
// Returns false if either index is out of bounds.
func (p *Playlist) Move(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(p.tracks) {
		return false
	}
	if toIndex < 0 || toIndex >= len(p.tracks) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}
	track := p.tracks[fromIndex]
	p.tracks = slices.Delete(p.tracks, fromIndex, fromIndex+1)
	p.tracks = slices.Insert(p.tracks, toIndex, track)
	return true
}

// SortStable sorts tracks with cmp and returns, for each new position, the
// index the track had before sorting.
func (p *Playlist) SortStable(cmp func(a, b playback.Track) int) []int {
	perm := make([]int, len(p.tracks))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		return cmp(p.tracks[a], p.tracks[b])
	})
	sorted := make([]playback.Track, len(p.tracks))
	for i, from := range perm {
		sorted[i] = p.tracks[from]
	}
	p.tracks = sorted
	return perm
}
