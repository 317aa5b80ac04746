package playlist

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/llehouerou/ripple/internal/playback"
)

// Player is what the queue needs from the playback controller.
type Player interface {
	Load(track playback.Track, autoplay bool, startMillis uint32)
	Stop()
	TogglePlayback()
	Status() playback.PlayerEvent
	Preload(track playback.Track)
	UpdateTrack()
}

// PlayingQueue is the list of tracks to play, with repeat and shuffle.
// It is safe for concurrent use.
//
// order holds playlist indices in play order; it is the identity unless
// shuffle is on.
type PlayingQueue struct {
	mu           sync.RWMutex
	playlist     *Playlist
	order        []int
	currentIndex int // -1 if nothing playing
	repeat       playback.RepeatMode
	shuffle      bool
	player       Player
	shuffleFn    func([]int)
}

// NewQueue creates a new empty playing queue driving player.
func NewQueue(player Player) *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
		player:       player,
		shuffleFn: func(s []int) {
			rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		},
	}
}

// Current returns the current track, or false if none.
func (q *PlayingQueue) Current() (playback.Track, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the current track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.currentIndex
}

// Tracks returns all tracks in the queue.
func (q *PlayingQueue) Tracks() []playback.Track {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.playlist.Len()
}

// Order returns the play order as queue indices.
func (q *PlayingQueue) Order() []int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return slices.Clone(q.order)
}

// Append adds tracks at the end and returns the index of the first one.
func (q *PlayingQueue) Append(tracks ...playback.Track) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	first := q.playlist.Len()
	q.playlist.Add(tracks...)
	for i := range tracks {
		q.order = append(q.order, first+i)
	}
	return first
}

// InsertNext inserts tracks right after the current one, or appends them
// when nothing is playing. Returns the index of the first inserted track.
func (q *PlayingQueue) InsertNext(tracks ...playback.Track) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.currentIndex < 0 {
		first := q.playlist.Len()
		q.playlist.Add(tracks...)
		for i := range tracks {
			q.order = append(q.order, first+i)
		}
		return first
	}

	at := q.currentIndex + 1
	q.playlist.Insert(at, tracks...)
	for i, idx := range q.order {
		if idx >= at {
			q.order[i] = idx + len(tracks)
		}
	}
	pos := slices.Index(q.order, q.currentIndex) + 1
	inserted := make([]int, len(tracks))
	for i := range tracks {
		inserted[i] = at + i
	}
	q.order = slices.Insert(q.order, pos, inserted...)
	return at
}

// Remove deletes the track at index. Removing the current track stops
// playback.
func (q *PlayingQueue) Remove(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.playlist.Remove(index) {
		return false
	}
	q.order = slices.DeleteFunc(q.order, func(i int) bool { return i == index })
	for i, idx := range q.order {
		if idx > index {
			q.order[i] = idx - 1
		}
	}
	switch {
	case q.currentIndex == index:
		q.currentIndex = -1
		q.player.Stop()
	case q.currentIndex > index:
		q.currentIndex--
	}
	return true
}

// Shift moves the track at index by delta positions and returns its new
// index. The move is clamped to the queue bounds.
func (q *PlayingQueue) Shift(index, delta int) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := q.playlist.Len()
	if index < 0 || index >= n {
		return index
	}
	to := min(max(index+delta, 0), n-1)
	if to == index {
		return index
	}
	q.playlist.Move(index, to)

	remap := func(i int) int {
		switch {
		case i == index:
			return to
		case index < to && i > index && i <= to:
			return i - 1
		case to < index && i >= to && i < index:
			return i + 1
		default:
			return i
		}
	}
	if q.currentIndex >= 0 {
		q.currentIndex = remap(q.currentIndex)
	}
	for i, idx := range q.order {
		q.order[i] = remap(idx)
	}
	if !q.shuffle {
		q.resetOrderLocked()
	}
	return to
}

// Sort reorders the queue with cmp, keeping the current track current.
func (q *PlayingQueue) Sort(cmp func(a, b playback.Track) int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	perm := q.playlist.SortStable(cmp)
	if q.currentIndex >= 0 {
		q.currentIndex = slices.Index(perm, q.currentIndex)
	}
	if q.shuffle {
		q.reshuffleLocked()
	} else {
		q.resetOrderLocked()
	}
}

// Clear stops playback and removes every track.
func (q *PlayingQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.currentIndex = -1
	q.playlist.Clear()
	q.order = nil
	q.player.Stop()
}

// Play starts the track at index.
func (q *PlayingQueue) Play(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.playLocked(index, true, 0)
}

// Restore makes index current and loads it paused at startMillis, without
// starting playback.
func (q *PlayingQueue) Restore(index int, startMillis uint32) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.playLocked(index, false, startMillis)
}

// Next advances in play order. When the track ended by itself and repeat is
// set to track, it is replayed instead.
func (q *PlayingQueue) Next(userInitiated bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.repeat == playback.RepeatTrack && !userInitiated && q.currentIndex >= 0 {
		q.playLocked(q.currentIndex, true, 0)
		return
	}
	if next := q.nextIndexLocked(); next >= 0 {
		q.playLocked(next, true, 0)
		return
	}
	q.player.Stop()
}

// Previous steps back in play order. At the start it wraps when repeating
// the playlist and restarts the first track otherwise.
func (q *PlayingQueue) Previous() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.order) == 0 {
		return
	}
	pos := slices.Index(q.order, q.currentIndex)
	switch {
	case pos > 0:
		q.playLocked(q.order[pos-1], true, 0)
	case q.repeat == playback.RepeatPlaylist:
		q.playLocked(q.order[len(q.order)-1], true, 0)
	default:
		q.playLocked(q.order[0], true, 0)
	}
}

// Stop stops playback and forgets the current track.
func (q *PlayingQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.currentIndex = -1
	q.player.Stop()
}

// TogglePlayback pauses or resumes, or replays the current track when
// playback has stopped.
func (q *PlayingQueue) TogglePlayback() {
	switch q.player.Status().(type) {
	case playback.Playing, playback.Paused:
		q.player.TogglePlayback()
	default:
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.currentIndex >= 0 {
			q.playLocked(q.currentIndex, true, 0)
		}
	}
}

// Repeat returns the repeat mode.
func (q *PlayingQueue) Repeat() playback.RepeatMode {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.repeat
}

// SetRepeat changes the repeat mode and refreshes the preloaded track.
func (q *PlayingQueue) SetRepeat(mode playback.RepeatMode) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.repeat = mode
	q.preloadLocked()
}

// Shuffle reports whether shuffle is on.
func (q *PlayingQueue) Shuffle() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.shuffle
}

// SetShuffle turns shuffle on or off. Turning it on draws a new random order
// that starts with the current track.
func (q *PlayingQueue) SetShuffle(on bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.shuffle = on
	if on {
		q.reshuffleLocked()
	} else {
		q.resetOrderLocked()
	}
	q.preloadLocked()
}

func (q *PlayingQueue) playLocked(index int, autoplay bool, startMillis uint32) bool {
	track, ok := q.playlist.Track(index)
	if !ok {
		return false
	}
	q.currentIndex = index
	q.player.UpdateTrack()
	q.player.Load(track, autoplay, startMillis)
	q.preloadLocked()
	return true
}

// nextIndexLocked returns the queue index after the current one in play
// order, wrapping when repeating the playlist, or -1.
func (q *PlayingQueue) nextIndexLocked() int {
	if len(q.order) == 0 {
		return -1
	}
	pos := slices.Index(q.order, q.currentIndex)
	if pos+1 < len(q.order) {
		return q.order[pos+1]
	}
	if q.repeat == playback.RepeatPlaylist {
		return q.order[0]
	}
	return -1
}

func (q *PlayingQueue) preloadLocked() {
	if q.currentIndex < 0 || q.repeat == playback.RepeatTrack {
		return
	}
	next := q.nextIndexLocked()
	if next < 0 || next == q.currentIndex {
		return
	}
	if track, ok := q.playlist.Track(next); ok {
		q.player.Preload(track)
	}
}

func (q *PlayingQueue) resetOrderLocked() {
	q.order = make([]int, q.playlist.Len())
	for i := range q.order {
		q.order[i] = i
	}
}

func (q *PlayingQueue) reshuffleLocked() {
	q.resetOrderLocked()
	if q.currentIndex >= 0 {
		q.order = slices.DeleteFunc(q.order, func(i int) bool { return i == q.currentIndex })
		q.shuffleFn(q.order)
		q.order = slices.Insert(q.order, 0, q.currentIndex)
		return
	}
	q.shuffleFn(q.order)
}
