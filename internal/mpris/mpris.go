//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/playback"
)

// Adapter exposes the player on the session bus as
// org.mpris.MediaPlayer2.ripple.
type Adapter struct {
	server *server.Server
	logger *zap.Logger
}

// New creates and starts a new MPRIS adapter.
func New(player Player, queue Queue, dispatch Dispatch, logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{logger: logger.Named("mpris")}

	root := &rootAdapter{dispatch: dispatch}
	pa := &playerAdapter{player: player, queue: queue, dispatch: dispatch}
	a.server = server.NewServer("ripple", root, pa)

	go func() {
		if err := a.server.Listen(); err != nil {
			a.logger.Warn("mpris server stopped", zap.Error(err))
		}
	}()
	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	dispatch Dispatch
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	r.dispatch(command.Quit{})
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return true, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "ripple", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return nil, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return nil, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the loop
// status and shuffle extensions. Reads go to the controller and queue;
// every change is dispatched as a command so it runs on the UI loop.
type playerAdapter struct {
	player   Player
	queue    Queue
	dispatch Dispatch
}

func (p *playerAdapter) Next() error {
	p.dispatch(command.Next{})
	return nil
}

func (p *playerAdapter) Previous() error {
	p.dispatch(command.Previous{})
	return nil
}

func (p *playerAdapter) Pause() error {
	if _, playing := p.player.Status().(playback.Playing); playing {
		p.dispatch(command.TogglePlay{})
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.dispatch(command.TogglePlay{})
	return nil
}

func (p *playerAdapter) Stop() error {
	p.dispatch(command.Stop{})
	return nil
}

func (p *playerAdapter) Play() error {
	if _, playing := p.player.Status().(playback.Playing); !playing {
		p.dispatch(command.TogglePlay{})
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	ms := time.Duration(offset) * time.Microsecond / time.Millisecond
	p.dispatch(command.Seek{Direction: command.SeekRelative{Millis: int32(max(min(ms, math.MaxInt32), math.MinInt32))}})
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	ms := max(time.Duration(position)*time.Microsecond/time.Millisecond, 0)
	p.dispatch(command.Seek{Direction: command.SeekAbsolute{Millis: uint32(min(ms, math.MaxUint32))}})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.player.Status()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track, ok := p.queue.Current()
	if !ok {
		return types.Metadata{}, nil
	}
	return metadata(track), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return float64(p.player.Volume()) / math.MaxUint16, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	if cmd := volumeCommand(p.player.Volume(), v); cmd != nil {
		p.dispatch(cmd)
	}
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.player.Progress().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.queue.Len() > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.queue.Len() > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.queue.Len() > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	return loopStatus(p.queue.Repeat()), nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	mode := repeatMode(status)
	p.dispatch(command.Repeat{Mode: &mode})
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.queue.Shuffle(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.dispatch(command.Shuffle{On: &shuffle})
	return nil
}

func metadata(track playback.Track) types.Metadata {
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(track.Duration.Microseconds()),
		Title:   track.Title,
		Album:   track.Album,
	}
	if track.Artist != "" {
		meta.Artist = []string{track.Artist}
	}
	return meta
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
