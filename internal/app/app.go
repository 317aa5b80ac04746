// internal/app/app.go
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/events"
	"github.com/llehouerou/ripple/internal/keymap"
	"github.com/llehouerou/ripple/internal/playback"
	"github.com/llehouerou/ripple/internal/playlist"
	"github.com/llehouerou/ripple/internal/state"
	"github.com/llehouerou/ripple/internal/ui"
	"github.com/llehouerou/ripple/internal/ui/cmdline"
	"github.com/llehouerou/ripple/internal/ui/confirm"
	"github.com/llehouerou/ripple/internal/ui/helpbindings"
	"github.com/llehouerou/ripple/internal/ui/tracklist"
)

// maxEventsPerBatch bounds how many playback events one loop iteration
// applies, so a burst cannot starve key handling.
const maxEventsPerBatch = 64

// Options holds the collaborators of the application model.
type Options struct {
	Controller  Controller
	Queue       *playlist.PlayingQueue
	Catalog     Catalog
	State       state.Interface
	Keys        *keymap.Resolver
	Credentials CredentialRemover
	Events      *events.Queue[playback.Event]
	Logger      *zap.Logger

	CommandKey    string
	InitialScreen string
}

// layer is a view pushed over the current screen: the help view or a track
// list (album, artist, similar songs).
type layer struct {
	help   *helpbindings.Model
	tracks *tracklist.Model
}

// Model is the root application model containing all state.
type Model struct {
	Controller  Controller
	Queue       *playlist.PlayingQueue
	Catalog     Catalog
	StateMgr    state.Interface
	Keys        *keymap.Resolver
	Credentials CredentialRemover
	Events      *events.Queue[playback.Event]
	Logger      *zap.Logger

	Screen      string
	QueueList   tracklist.Model
	SearchList  tracklist.Model
	LibraryList tracklist.Model
	SearchQuery string
	Stack       []layer

	CmdLine    cmdline.Model
	Confirm    confirm.Model
	CommandKey string

	Message    string
	MessageErr bool
	Ticking    bool
	Quitting   bool
	Width      int
	Height     int

	ctx context.Context
}

// New creates the application model and restores the saved session: the
// queue with its modes, the current track paused at its saved position, and
// the last screen.
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	commandKey := opts.CommandKey
	if commandKey == "" {
		commandKey = ":"
	}
	screen := opts.InitialScreen
	if screen == "" {
		screen = config.ScreenQueue
	}

	m := Model{
		Controller:  opts.Controller,
		Queue:       opts.Queue,
		Catalog:     opts.Catalog,
		StateMgr:    opts.State,
		Keys:        opts.Keys,
		Credentials: opts.Credentials,
		Events:      opts.Events,
		Logger:      logger.Named("app"),
		Screen:      screen,
		QueueList:   tracklist.New("Queue", "The queue is empty"),
		SearchList:  tracklist.New("Search", "Nothing searched yet"),
		LibraryList: tracklist.New("Library", "No starred songs"),
		CmdLine:     cmdline.New(commandKey),
		Confirm:     confirm.New(),
		CommandKey:  commandKey,
		ctx:         ctx,
	}
	m.restoreQueue()
	m.restoreNavigation()
	m.syncLists()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForEvents(), m.loadLibrary()}
	if m.SearchQuery != "" {
		cmds = append(cmds, m.runSearch(m.SearchQuery))
	}
	return tea.Batch(cmds...)
}

// resize distributes the window to the lists and layers.
func (m *Model) resize(width, height int) {
	m.Width, m.Height = width, height
	listHeight := max(height-ui.ChromeHeight, 0)
	m.QueueList.SetSize(width, listHeight)
	m.SearchList.SetSize(width, listHeight)
	m.LibraryList.SetSize(width, listHeight)
	for _, l := range m.Stack {
		l.setSize(width, listHeight)
	}
	m.CmdLine.SetWidth(width)
}

func (l layer) setSize(width, height int) {
	switch {
	case l.help != nil:
		l.help.SetSize(width, height)
	case l.tracks != nil:
		l.tracks.SetSize(width, height)
	}
}

func (m *Model) setMessage(text string) {
	m.Message, m.MessageErr = text, false
}

func (m *Model) setError(text string) {
	m.Message, m.MessageErr = text, true
	m.Logger.Debug("status error", zap.String("message", text))
}

func (m *Model) clearMessage() {
	m.Message, m.MessageErr = "", false
}
