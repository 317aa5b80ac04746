// internal/app/library.go
package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/errmsg"
	"github.com/llehouerou/ripple/internal/playback"
	"github.com/llehouerou/ripple/internal/subsonic"
)

var errNoCatalog = errors.New("not connected")

type fetchFunc func(ctx context.Context) ([]subsonic.Song, error)

// loadTracks runs fetch off the update loop and reports a TracksLoadedMsg.
func (m Model) loadTracks(target listTarget, title string, op errmsg.Op, fetch fetchFunc) tea.Cmd {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	catalog := m.Catalog
	return func() tea.Msg {
		msg := TracksLoadedMsg{target: target, Title: title, Op: op}
		if catalog == nil {
			msg.Err = errNoCatalog
			return msg
		}
		songs, err := fetch(ctx)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Tracks = subsonic.Tracks(songs)
		return msg
	}
}

func (m Model) loadLibrary() tea.Cmd {
	return m.loadTracks(targetLibrary, "Library", errmsg.OpLibrary, func(ctx context.Context) ([]subsonic.Song, error) {
		return m.Catalog.Starred(ctx)
	})
}

func (m Model) runSearch(query string) tea.Cmd {
	return m.loadTracks(targetSearch, searchTitle(query), errmsg.OpSearch, func(ctx context.Context) ([]subsonic.Song, error) {
		return m.Catalog.Search(ctx, query)
	})
}

func (m *Model) openAlbum(t playback.Track) tea.Cmd {
	if t.AlbumID == "" {
		m.setError("No album for " + t.DisplayTitle())
		return nil
	}
	m.setMessage("Loading " + t.Album + "…")
	return m.loadTracks(targetLayer, "Album: "+t.Album, errmsg.OpAlbumLoad, func(ctx context.Context) ([]subsonic.Song, error) {
		return m.Catalog.Album(ctx, t.AlbumID)
	})
}

func (m *Model) openArtist(t playback.Track) tea.Cmd {
	if t.Artist == "" {
		m.setError("No artist for " + t.Title)
		return nil
	}
	m.setMessage("Loading " + t.Artist + "…")
	return m.loadTracks(targetLayer, "Artist: "+t.Artist, errmsg.OpArtist, func(ctx context.Context) ([]subsonic.Song, error) {
		return m.Catalog.TopSongs(ctx, t.Artist)
	})
}

func (m *Model) openSimilar(t playback.Track) tea.Cmd {
	m.setMessage("Looking for songs like " + t.Title + "…")
	return m.loadTracks(targetLayer, "Similar to "+t.DisplayTitle(), errmsg.OpSimilar, func(ctx context.Context) ([]subsonic.Song, error) {
		return m.Catalog.Similar(ctx, t.ID)
	})
}

func (m Model) handleLoadingMessage(msg LoadingMessage) (Model, tea.Cmd) {
	loaded, ok := msg.(TracksLoadedMsg)
	if !ok {
		return m, nil
	}
	if loaded.Err != nil {
		m.Logger.Warn("catalog request failed", zap.String("op", string(loaded.Op)), zap.Error(loaded.Err))
		m.setError(errmsg.Format(loaded.Op, loaded.Err))
		return m, nil
	}
	m.Logger.Debug("tracks loaded", zap.String("title", loaded.Title), zap.Int("count", len(loaded.Tracks)))

	switch loaded.target {
	case targetSearch:
		// A newer search superseded this one.
		if loaded.Title != searchTitle(m.SearchQuery) {
			return m, nil
		}
		m.SearchList.SetTitle(loaded.Title)
		m.SearchList.Reset(loaded.Tracks)
		m.clearMessage()
	case targetLibrary:
		m.LibraryList.Reset(loaded.Tracks)
	case targetLayer:
		m.pushTracks(loaded.Title, loaded.Tracks)
		m.clearMessage()
	}
	m.syncLists()
	return m, nil
}
