// internal/app/persistence.go
package app

import (
	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/errmsg"
	"github.com/llehouerou/ripple/internal/state"
)

// restoreQueue reloads the saved queue. The current track is loaded paused
// at its saved position so playpause resumes where the last run stopped.
func (m *Model) restoreQueue() {
	saved, err := m.StateMgr.GetQueue()
	if err != nil {
		m.Logger.Warn("load queue", zap.Error(err))
		m.setError(errmsg.Format(errmsg.OpQueueLoad, err))
		return
	}
	if saved == nil || len(saved.Tracks) == 0 {
		return
	}
	m.Queue.Append(saved.Tracks...)
	m.Queue.SetRepeat(saved.Repeat)
	if saved.CurrentIndex >= 0 && saved.CurrentIndex < len(saved.Tracks) {
		m.Queue.Restore(saved.CurrentIndex, saved.ProgressMillis)
	}
	// After Restore, so a new shuffle order starts with the current track.
	m.Queue.SetShuffle(saved.Shuffle)
	m.Logger.Info("queue restored",
		zap.Int("tracks", len(saved.Tracks)),
		zap.Int("current", saved.CurrentIndex))
}

func (m *Model) restoreNavigation() {
	nav, err := m.StateMgr.GetNavigation()
	if err != nil || nav == nil {
		return
	}
	switch nav.Screen {
	case config.ScreenQueue, config.ScreenSearch, config.ScreenLibrary:
		m.Screen = nav.Screen
	}
	if nav.SearchQuery != "" {
		m.SearchQuery = nav.SearchQuery
		m.SearchList.SetTitle(searchTitle(nav.SearchQuery))
	}
}

// SaveNavigationState persists the current screen and search.
func (m *Model) SaveNavigationState() {
	m.StateMgr.SaveNavigation(state.NavigationState{
		Screen:      m.Screen,
		SearchQuery: m.SearchQuery,
	})
}

// SaveQueueState persists the queue, its modes and the playback position.
func (m *Model) SaveQueueState() {
	progress := m.Controller.Progress().Milliseconds()
	if m.Queue.CurrentIndex() < 0 {
		progress = 0
	}
	err := m.StateMgr.SaveQueue(state.QueueState{
		CurrentIndex:   m.Queue.CurrentIndex(),
		ProgressMillis: uint32(max(progress, 0)), //nolint:gosec // a track position fits
		Repeat:         m.Queue.Repeat(),
		Shuffle:        m.Queue.Shuffle(),
		Tracks:         m.Queue.Tracks(),
	})
	if err != nil {
		m.Logger.Warn("save queue", zap.Error(err))
		m.setError(errmsg.Format(errmsg.OpQueueSave, err))
	}
}

// SaveVolume persists the controller volume.
func (m *Model) SaveVolume() {
	if err := m.StateMgr.SaveVolume(m.Controller.Volume()); err != nil {
		m.Logger.Warn("save volume", zap.Error(err))
		m.setError(errmsg.Format(errmsg.OpVolumeSave, err))
	}
}

// saveState persists everything restored on the next start.
func (m *Model) saveState() {
	m.SaveNavigationState()
	m.SaveQueueState()
	m.SaveVolume()
}
