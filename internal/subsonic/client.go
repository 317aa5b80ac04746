// Package subsonic is a client for Subsonic-compatible music servers
// (Navidrome, Airsonic, Gonic).
package subsonic

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/credentials"
)

const (
	apiVersion       = "1.16.1"
	defaultClientID  = "ripple"
	defaultTimeout   = 15 * time.Second
	defaultSongCount = 50
)

// Options tune a Client. Zero values select defaults.
type Options struct {
	ClientID string
	// Timeout bounds API calls. Streams are bounded by their context only.
	Timeout time.Duration
	// Format and MaxBitRate are passed to stream; empty/zero let the server
	// pick.
	Format     string
	MaxBitRate int
	Logger     *zap.Logger
}

// Client is a Subsonic API client authenticated with a salted token.
type Client struct {
	baseURL    string
	creds      credentials.Credentials
	clientID   string
	format     string
	maxBitRate int
	api        *http.Client
	stream     *http.Client
	logger     *zap.Logger
}

// New creates a client for the server named in creds.
func New(creds credentials.Credentials, opts Options) *Client {
	if opts.ClientID == "" {
		opts.ClientID = defaultClientID
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(creds.Server, "/"),
		creds:      creds,
		clientID:   opts.ClientID,
		format:     opts.Format,
		maxBitRate: opts.MaxBitRate,
		api:        &http.Client{Timeout: opts.Timeout},
		stream:     &http.Client{},
		logger:     opts.Logger.Named("subsonic"),
	}
}

// NewToken derives the token sent instead of the password, with a fresh
// random salt.
func NewToken(password string) (token, salt string) {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	salt = hex.EncodeToString(b)
	return TokenFor(password, salt), salt
}

// TokenFor returns md5(password + salt) in hex.
func TokenFor(password, salt string) string {
	sum := md5.Sum([]byte(password + salt)) //nolint:gosec // mandated by the Subsonic API
	return hex.EncodeToString(sum[:])
}

// Username returns the authenticated user.
func (c *Client) Username() string {
	return c.creds.Username
}

func (c *Client) params(extra url.Values) url.Values {
	params := url.Values{}
	params.Set("u", c.creds.Username)
	params.Set("t", c.creds.Token)
	params.Set("s", c.creds.Salt)
	params.Set("v", apiVersion)
	params.Set("c", c.clientID)
	params.Set("f", "json")
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	return params
}

func (c *Client) endpoint(method string, extra url.Values) string {
	return fmt.Sprintf("%s/rest/%s?%s", c.baseURL, method, c.params(extra).Encode())
}

func (c *Client) call(ctx context.Context, method string, extra url.Values) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(method, extra), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.api.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", method, resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", method, err)
	}
	c.logger.Debug("api call",
		zap.String("method", method),
		zap.Duration("took", time.Since(start)),
		zap.String("status", env.Response.Status))

	if env.Response.Status != "ok" {
		if env.Response.Error != nil {
			return nil, env.Response.Error
		}
		return nil, fmt.Errorf("%s: status %q", method, env.Response.Status)
	}
	return &env, nil
}

// Ping checks connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.call(ctx, "ping", nil)
	return err
}

// Search returns songs matching query, in server order.
func (c *Client) Search(ctx context.Context, query string) ([]Song, error) {
	env, err := c.call(ctx, "search3", url.Values{
		"query":       {query},
		"songCount":   {strconv.Itoa(defaultSongCount)},
		"albumCount":  {"0"},
		"artistCount": {"0"},
	})
	if err != nil {
		return nil, err
	}
	return env.Response.SearchResult3.Songs, nil
}

// Similar returns songs similar to the song, album or artist with id.
func (c *Client) Similar(ctx context.Context, id string) ([]Song, error) {
	env, err := c.call(ctx, "getSimilarSongs2", url.Values{
		"id":    {id},
		"count": {strconv.Itoa(defaultSongCount)},
	})
	if err != nil {
		return nil, err
	}
	return env.Response.SimilarSongs2.Songs, nil
}

// Starred returns the user's starred songs.
func (c *Client) Starred(ctx context.Context) ([]Song, error) {
	env, err := c.call(ctx, "getStarred2", nil)
	if err != nil {
		return nil, err
	}
	return env.Response.Starred2.Songs, nil
}

// Album returns the songs of an album.
func (c *Client) Album(ctx context.Context, id string) ([]Song, error) {
	env, err := c.call(ctx, "getAlbum", url.Values{"id": {id}})
	if err != nil {
		return nil, err
	}
	return env.Response.Album.Songs, nil
}

// TopSongs returns the most played songs of an artist.
func (c *Client) TopSongs(ctx context.Context, artist string) ([]Song, error) {
	env, err := c.call(ctx, "getTopSongs", url.Values{
		"artist": {artist},
		"count":  {strconv.Itoa(defaultSongCount)},
	})
	if err != nil {
		return nil, err
	}
	return env.Response.TopSongs.Songs, nil
}

// StreamURL returns the URL audio for id is streamed from.
func (c *Client) StreamURL(id string) string {
	extra := url.Values{"id": {id}}
	if c.format != "" {
		extra.Set("format", c.format)
	}
	if c.maxBitRate > 0 {
		extra.Set("maxBitRate", strconv.Itoa(c.maxBitRate))
	}
	return c.endpoint("stream", extra)
}

// Fetch downloads the whole stream for id.
func (c *Client) Fetch(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.StreamURL(id), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stream: unexpected status: %s", resp.Status)
	}
	// Errors come back as a JSON envelope instead of audio.
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return nil, fmt.Errorf("stream: decode error: %w", err)
		}
		if env.Response.Error != nil {
			return nil, env.Response.Error
		}
		return nil, errors.New("stream: unexpected json response")
	}

	start := time.Now()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stream: read: %w", err)
	}
	c.logger.Debug("fetched stream",
		zap.String("id", id),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.Duration("took", time.Since(start)))
	return data, nil
}
