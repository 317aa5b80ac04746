package engine

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/ripple/internal/credentials"
	"github.com/llehouerou/ripple/internal/playback"
	"github.com/llehouerou/ripple/internal/subsonic"
)

func creds(server string) credentials.Credentials {
	token, salt := subsonic.NewToken("pw")
	return credentials.Credentials{Server: server, Username: "ana", Token: token, Salt: salt}
}

func TestConnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"subsonic-response":{"status":"ok"}}`))
	}))
	defer srv.Close()

	e := New(Config{})
	s, err := e.Connect(t.Context(), creds(srv.URL))
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "ana", s.Username())

	p, err := e.NewPlayer(s, 1000)
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestConnect_WrongCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"subsonic-response":{"status":"failed","error":{"code":40,"message":"Wrong username or password"}}}`))
	}))
	defer srv.Close()

	_, err := New(Config{}).Connect(t.Context(), creds(srv.URL))
	var apiErr *subsonic.Error
	require.ErrorAs(t, err, &apiErr)
	assert.NotErrorIs(t, err, playback.ErrSessionUnavailable)
}

func TestConnect_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(Config{}).Connect(t.Context(), creds(srv.URL))
	assert.ErrorIs(t, err, playback.ErrSessionUnavailable)
}

func TestConnect_MissingCredentials(t *testing.T) {
	_, err := New(Config{}).Connect(t.Context(), credentials.Credentials{})
	assert.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestNewPlayer_ForeignSession(t *testing.T) {
	foreign, err := playback.NewMockEngine().Connect(t.Context(), credentials.Credentials{Username: "x"})
	require.NoError(t, err)

	_, err = New(Config{}).NewPlayer(foreign, 0)
	assert.Error(t, err)
}
