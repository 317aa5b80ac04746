// Package engine connects the playback controller to a Subsonic server and
// the local audio device.
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/credentials"
	"github.com/llehouerou/ripple/internal/playback"
	"github.com/llehouerou/ripple/internal/player"
	"github.com/llehouerou/ripple/internal/subsonic"
)

// Config holds the settings applied to every session.
type Config struct {
	Client  subsonic.Options
	Session subsonic.SessionConfig
	Logger  *zap.Logger
}

// Engine implements playback.Engine.
type Engine struct {
	cfg Config
}

var _ playback.Engine = (*Engine)(nil)

func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Client.Logger == nil {
		cfg.Client.Logger = cfg.Logger
	}
	return &Engine{cfg: cfg}
}

// Connect dials the server named in creds. Network failures wrap
// playback.ErrSessionUnavailable; rejected credentials are returned as the
// server's *subsonic.Error.
func (e *Engine) Connect(ctx context.Context, creds credentials.Credentials) (playback.Session, error) {
	if !creds.Valid() {
		return nil, credentials.ErrNotFound
	}
	client := subsonic.New(creds, e.cfg.Client)
	s, err := subsonic.Dial(ctx, client, e.cfg.Session)
	if err != nil {
		var apiErr *subsonic.Error
		if errors.As(err, &apiErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", playback.ErrSessionUnavailable, err)
	}
	return s, nil
}

// NewPlayer builds an audio player streaming through the session's client.
func (e *Engine) NewPlayer(s playback.Session, volume uint16) (playback.Player, error) {
	ss, ok := s.(*subsonic.Session)
	if !ok {
		return nil, fmt.Errorf("engine: unexpected session type %T", s)
	}
	return player.New(ss.Client(), volume, e.cfg.Logger), nil
}
