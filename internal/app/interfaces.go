// internal/app/interfaces.go
package app

import (
	"context"
	"time"

	"github.com/llehouerou/ripple/internal/credentials"
	"github.com/llehouerou/ripple/internal/playback"
	"github.com/llehouerou/ripple/internal/playlist"
	"github.com/llehouerou/ripple/internal/subsonic"
)

// Compile-time assertions that the concrete collaborators fit.
var (
	_ Controller        = (*playback.Controller)(nil)
	_ Catalog           = (*subsonic.Client)(nil)
	_ CredentialRemover = (*credentials.Store)(nil)
)

// Controller is the playback facade the dispatcher drives. The queue
// drives it too, through playlist.Player.
type Controller interface {
	playlist.Player

	User() string
	Live() bool
	Progress() time.Duration
	UpdateStatus(e playback.PlayerEvent)
	Seek(millis uint32)
	SeekRelative(delta int32)
	Volume() uint16
	SetVolume(v uint16)
	Shutdown()
	StartWorker(identity chan<- playback.Identity)
}

// Catalog is the remote library the screens browse.
type Catalog interface {
	Search(ctx context.Context, query string) ([]subsonic.Song, error)
	Similar(ctx context.Context, id string) ([]subsonic.Song, error)
	Starred(ctx context.Context) ([]subsonic.Song, error)
	Album(ctx context.Context, id string) ([]subsonic.Song, error)
	TopSongs(ctx context.Context, artist string) ([]subsonic.Song, error)
}

// CredentialRemover forgets the stored login on logout.
type CredentialRemover interface {
	Remove() error
}
