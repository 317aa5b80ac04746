package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/events"
	"github.com/llehouerou/ripple/internal/keymap"
	"github.com/llehouerou/ripple/internal/playback"
	"github.com/llehouerou/ripple/internal/playlist"
	"github.com/llehouerou/ripple/internal/state"
	"github.com/llehouerou/ripple/internal/subsonic"
	"github.com/llehouerou/ripple/internal/ui/cmdline"
	"github.com/llehouerou/ripple/internal/ui/testutil"
)

type loadCall struct {
	Track       playback.Track
	Autoplay    bool
	StartMillis uint32
}

// fakeController records what the app asks of the playback controller.
type fakeController struct {
	mu           sync.Mutex
	status       playback.PlayerEvent
	progress     time.Duration
	volume       uint16
	live         bool
	loads        []loadCall
	seeks        []uint32
	relSeeks     []int32
	shutdowns    int
	startWorkers int
	stops        int
	toggles      int
}

func newFakeController() *fakeController {
	return &fakeController{status: playback.Stopped{}, volume: 1000, live: true}
}

func (c *fakeController) Load(track playback.Track, autoplay bool, startMillis uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads = append(c.loads, loadCall{track, autoplay, startMillis})
}

func (c *fakeController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stops++
}

func (c *fakeController) TogglePlayback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toggles++
}

func (c *fakeController) Status() playback.PlayerEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *fakeController) Preload(playback.Track) {}
func (c *fakeController) UpdateTrack()           {}
func (c *fakeController) User() string           { return "alice" }

func (c *fakeController) Live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

func (c *fakeController) Progress() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

func (c *fakeController) UpdateStatus(e playback.PlayerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = e
}

func (c *fakeController) Seek(millis uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seeks = append(c.seeks, millis)
}

func (c *fakeController) SeekRelative(delta int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.relSeeks = append(c.relSeeks, delta)
}

func (c *fakeController) Volume() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

func (c *fakeController) SetVolume(v uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = v
}

func (c *fakeController) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdowns++
}

func (c *fakeController) StartWorker(chan<- playback.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startWorkers++
}

func (c *fakeController) lastLoad(t *testing.T) loadCall {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.loads, "no track loaded")
	return c.loads[len(c.loads)-1]
}

type fakeCatalog struct {
	mu      sync.Mutex
	songs   []subsonic.Song
	err     error
	queries []string
}

func (f *fakeCatalog) record(q string) ([]subsonic.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.songs, f.err
}

func (f *fakeCatalog) Search(_ context.Context, query string) ([]subsonic.Song, error) {
	return f.record("search:" + query)
}

func (f *fakeCatalog) Similar(_ context.Context, id string) ([]subsonic.Song, error) {
	return f.record("similar:" + id)
}

func (f *fakeCatalog) Starred(context.Context) ([]subsonic.Song, error) {
	return f.record("starred")
}

func (f *fakeCatalog) Album(_ context.Context, id string) ([]subsonic.Song, error) {
	return f.record("album:" + id)
}

func (f *fakeCatalog) TopSongs(_ context.Context, artist string) ([]subsonic.Song, error) {
	return f.record("top:" + artist)
}

type fakeCredentials struct {
	removed bool
	err     error
}

func (f *fakeCredentials) Remove() error {
	f.removed = true
	return f.err
}

type testEnv struct {
	m       Model
	ctrl    *fakeController
	catalog *fakeCatalog
	state   *state.Mock
	creds   *fakeCredentials
}

func newTestEnv(t *testing.T, st *state.Mock) *testEnv {
	t.Helper()
	if st == nil {
		st = state.NewMock()
	}
	keys, errs := keymap.NewResolver(keymap.Defaults, nil)
	require.Empty(t, errs)

	env := &testEnv{
		ctrl:    newFakeController(),
		catalog: &fakeCatalog{songs: testSongs()},
		state:   st,
		creds:   &fakeCredentials{},
	}
	env.m = New(context.Background(), Options{
		Controller:  env.ctrl,
		Queue:       playlist.NewQueue(env.ctrl),
		Catalog:     env.catalog,
		State:       st,
		Keys:        keys,
		Credentials: env.creds,
		Events:      events.NewQueue[playback.Event](),
	})
	env.m.resize(100, 30)
	return env
}

func testSongs() []subsonic.Song {
	return []subsonic.Song{
		{ID: "s1", Title: "Airbag", Artist: "Radiohead", Album: "OK Computer", AlbumID: "al-1", Duration: 284},
		{ID: "s2", Title: "Paranoid Android", Artist: "Radiohead", Album: "OK Computer", AlbumID: "al-1", Duration: 383},
		{ID: "s3", Title: "Teardrop", Artist: "Massive Attack", Album: "Mezzanine", AlbumID: "al-2", Duration: 330},
	}
}

func testTracks() []playback.Track {
	return subsonic.Tracks(testSongs())
}

// run executes command text the way the command line does.
func (e *testEnv) run(t *testing.T, text string) tea.Cmd {
	t.Helper()
	cmds, err := command.Parse(text)
	require.NoError(t, err)
	var cmd tea.Cmd
	e.m, cmd = e.m.execute(cmds)
	return cmd
}

func (e *testEnv) update(msg tea.Msg) tea.Cmd {
	model, cmd := e.m.Update(msg)
	e.m = model.(Model)
	return cmd
}

// msgsOf runs cmd and the commands of any batch it returns. Only use it on
// commands that do not block.
func msgsOf(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, msgsOf(c)...)
	}
	return out
}

// runCatalog executes the catalog request in cmd and feeds its result back.
func (e *testEnv) runCatalog(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	msgs := msgsOf(cmd)
	require.Len(t, msgs, 1)
	loaded, ok := msgs[0].(TracksLoadedMsg)
	require.True(t, ok, "expected TracksLoadedMsg, got %T", msgs[0])
	e.update(loaded)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_RestoresSavedSession(t *testing.T) {
	st := state.NewMock()
	require.NoError(t, st.SaveQueue(state.QueueState{
		CurrentIndex:   1,
		ProgressMillis: 30000,
		Repeat:         playback.RepeatPlaylist,
		Tracks:         testTracks(),
	}))
	st.SaveNavigation(state.NavigationState{Screen: config.ScreenSearch, SearchQuery: "radiohead"})

	env := newTestEnv(t, st)

	assert.Equal(t, 3, env.m.Queue.Len())
	assert.Equal(t, 1, env.m.Queue.CurrentIndex())
	assert.Equal(t, playback.RepeatPlaylist, env.m.Queue.Repeat())
	load := env.ctrl.lastLoad(t)
	assert.Equal(t, "s2", load.Track.ID)
	assert.False(t, load.Autoplay, "restored track must stay paused")
	assert.Equal(t, uint32(30000), load.StartMillis)

	assert.Equal(t, config.ScreenSearch, env.m.Screen)
	assert.Equal(t, "radiohead", env.m.SearchQuery)
	assert.Equal(t, 3, env.m.QueueList.Len(), "queue rows synced")
}

func TestKeyMsg_ResolvesBindings(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.m.focus(config.ScreenLibrary))
	env.runCatalog(t, env.m.loadLibrary())
	require.Equal(t, 3, env.m.LibraryList.Len())

	env.update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, 1, env.m.Queue.Len())
	assert.Equal(t, 1, env.m.LibraryList.SelectedIndex(), "queue;move down moves the cursor")
	assert.Equal(t, "Queued: Radiohead - Airbag", env.m.Message)
}

func TestKeyMsg_CommandLine(t *testing.T) {
	env := newTestEnv(t, nil)

	env.update(runes(":"))
	require.True(t, env.m.CmdLine.Active())

	env.update(cmdline.ActionMsg(cmdline.Submit{Text: "bogus"}))
	assert.Equal(t, `No such command "bogus"`, env.m.Message)
	assert.True(t, env.m.MessageErr)
}

func TestKeyMsg_SlashPrefillsJump(t *testing.T) {
	env := newTestEnv(t, nil)

	env.update(runes("/"))

	require.True(t, env.m.CmdLine.Active())
	assert.Equal(t, "jump ", env.m.CmdLine.Value())
}

func TestView_RendersChrome(t *testing.T) {
	env := newTestEnv(t, nil)
	env.m.Queue.Append(testTracks()...)
	env.m.syncLists()

	view := testutil.StripANSI(env.m.View())

	assert.True(t, testutil.ContainsLine(view, "Queue (1/3)"))
	assert.True(t, testutil.ContainsLine(view, "Airbag"))
	assert.True(t, testutil.ContainsLine(view, "Nothing playing"))
	assert.True(t, testutil.ContainsLine(view, "f2 Search"))
	assert.Len(t, strings.Split(view, "\n"), 30)
}

func TestView_ConfirmOverlay(t *testing.T) {
	env := newTestEnv(t, nil)
	env.m.Queue.Append(testTracks()...)

	env.run(t, "clear")

	view := testutil.StripANSI(env.m.View())
	assert.True(t, testutil.ContainsLine(view, "Remove all 3 tracks from the queue?"))
}
