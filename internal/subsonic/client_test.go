package subsonic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/ripple/internal/credentials"
)

const okPing = `{"subsonic-response":{"status":"ok","version":"1.16.1"}}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	token, salt := NewToken("secret")
	c := New(credentials.Credentials{
		Server:   srv.URL + "/",
		Username: "ana",
		Token:    token,
		Salt:     salt,
	}, Options{Format: "mp3", MaxBitRate: 320})
	return srv, c
}

func TestTokenFor(t *testing.T) {
	// Example from the Subsonic API documentation.
	assert.Equal(t, "26719a1196d2a940705a59634eb18eab", TokenFor("sesame", "c19b2d"))

	token, salt := NewToken("sesame")
	assert.Len(t, salt, 16)
	assert.Equal(t, TokenFor("sesame", salt), token)
}

func TestClient_AuthParams(t *testing.T) {
	var got map[string]string
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/ping", r.URL.Path)
		q := r.URL.Query()
		got = map[string]string{}
		for _, k := range []string{"u", "t", "s", "v", "c", "f"} {
			got[k] = q.Get(k)
		}
		_, _ = w.Write([]byte(okPing))
	})

	require.NoError(t, c.Ping(t.Context()))

	assert.Equal(t, "ana", got["u"])
	assert.Equal(t, TokenFor("secret", got["s"]), got["t"])
	assert.Equal(t, apiVersion, got["v"])
	assert.Equal(t, "ripple", got["c"])
	assert.Equal(t, "json", got["f"])
}

func TestClient_ErrorEnvelope(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"subsonic-response":{"status":"failed","error":{"code":40,"message":"Wrong username or password"}}}`))
	})

	err := c.Ping(t.Context())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeWrongCredentials, apiErr.Code)
	assert.Equal(t, "subsonic error 40: Wrong username or password", apiErr.Error())
}

func TestClient_HTTPError(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.Ping(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_Search(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/search3", r.URL.Path)
		assert.Equal(t, "daft punk", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"subsonic-response":{"status":"ok","searchResult3":{"song":[
			{"id":"s1","title":"One More Time","artist":"Daft Punk","album":"Discovery","duration":320,"suffix":"mp3","created":"2024-01-02T03:04:05Z"},
			{"id":"s2","title":"Aerodynamic","artist":"Daft Punk","album":"Discovery","duration":207,"suffix":"flac"}
		]}}}`))
	})

	songs, err := c.Search(t.Context(), "daft punk")
	require.NoError(t, err)
	require.Len(t, songs, 2)

	tracks := Tracks(songs)
	assert.Equal(t, "s1", tracks[0].ID)
	assert.Equal(t, 320*time.Second, tracks[0].Duration)
	assert.Equal(t, "Daft Punk - One More Time", tracks[0].DisplayTitle())
	assert.Equal(t, 2024, tracks[0].Added.Year())
	assert.Equal(t, "flac", tracks[1].Suffix)
}

func TestClient_StarredAndSimilar(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/getStarred2":
			_, _ = w.Write([]byte(`{"subsonic-response":{"status":"ok","starred2":{"song":[{"id":"a"}]}}}`))
		case "/rest/getSimilarSongs2":
			assert.Equal(t, "ar-1", r.URL.Query().Get("id"))
			_, _ = w.Write([]byte(`{"subsonic-response":{"status":"ok","similarSongs2":{"song":[{"id":"b"},{"id":"c"}]}}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	starred, err := c.Starred(t.Context())
	require.NoError(t, err)
	assert.Len(t, starred, 1)

	similar, err := c.Similar(t.Context(), "ar-1")
	require.NoError(t, err)
	assert.Len(t, similar, 2)
}

func TestClient_Fetch(t *testing.T) {
	audio := []byte("ID3fake-audio")
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/rest/stream", r.URL.Path)
		assert.Equal(t, "tr", q.Get("id"))
		assert.Equal(t, "mp3", q.Get("format"))
		assert.Equal(t, "320", q.Get("maxBitRate"))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	})

	data, err := c.Fetch(t.Context(), "tr")
	require.NoError(t, err)
	assert.Equal(t, audio, data)
}

func TestClient_FetchErrorEnvelope(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"subsonic-response":{"status":"failed","error":{"code":70,"message":"not found"}}}`))
	})

	_, err := c.Fetch(t.Context(), "missing")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeNotFound, apiErr.Code)
}

func TestSession_DiesAfterFailedPings(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	var pings atomic.Int32
	_, c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		pings.Add(1)
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(okPing))
	})

	s, err := Dial(t.Context(), c, SessionConfig{Keepalive: 5 * time.Millisecond, MaxFailures: 3})
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "ana", s.Username())

	healthy.Store(false)
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session did not die")
	}
	require.Error(t, s.Err())
	assert.Contains(t, s.Err().Error(), "after 3 pings")
	assert.GreaterOrEqual(t, pings.Load(), int32(4))
}

func TestSession_DialFails(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := Dial(context.Background(), c, SessionConfig{})
	require.Error(t, err)
}

func TestSession_CloseStopsKeepalive(t *testing.T) {
	var pings atomic.Int32
	_, c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		pings.Add(1)
		_, _ = w.Write([]byte(okPing))
	})

	s, err := Dial(t.Context(), c, SessionConfig{Keepalive: time.Millisecond})
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, s.Close())

	after := pings.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, pings.Load())
	assert.NoError(t, s.Err())
}
