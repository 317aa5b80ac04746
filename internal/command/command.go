// Package command defines the commands a user can type or bind to keys, and
// the parser turning command text into them.
package command

import (
	"github.com/llehouerou/ripple/internal/playback"
)

// Command is one parsed user command. The set of implementations is closed;
// consumers switch on the concrete type.
type Command interface {
	// Name is the stable lowercase name used in help and error messages.
	Name() string
	// String renders the command back to text Parse accepts.
	String() string
	isCommand()
}

// TargetMode selects what open and similar act on.
type TargetMode int

const (
	TargetSelected TargetMode = iota
	TargetCurrent
)

// GotoMode selects where goto navigates.
type GotoMode int

const (
	GotoAlbum GotoMode = iota
	GotoArtist
)

// MoveMode is the direction of a cursor move.
type MoveMode int

const (
	MoveUp MoveMode = iota
	MoveDown
	MoveLeft
	MoveRight
	MovePlaying
)

// MoveAmountKind tells how a MoveAmount is interpreted.
type MoveAmountKind int

const (
	// AmountInteger moves by Integer rows.
	AmountInteger MoveAmountKind = iota
	// AmountPages moves by a fraction of the visible page.
	AmountPages
	// AmountExtreme moves to the first or last row.
	AmountExtreme
)

// MoveAmount is how far a move goes.
type MoveAmount struct {
	Kind    MoveAmountKind
	Integer int32
	Pages   float32
}

// DefaultMoveAmount is one row.
var DefaultMoveAmount = MoveAmount{Kind: AmountInteger, Integer: 1}

// ShiftMode is the direction a queue entry is shifted.
type ShiftMode int

const (
	ShiftUp ShiftMode = iota
	ShiftDown
)

// SortKey is a track attribute to sort on.
type SortKey int

const (
	SortTitle SortKey = iota
	SortDuration
	SortArtist
	SortAlbum
	SortAdded
)

// SortDirection orders a sort.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// JumpKind distinguishes a new jump query from stepping through matches.
type JumpKind int

const (
	JumpQuery JumpKind = iota
	JumpNext
	JumpPrevious
)

// SeekDirection is either SeekRelative or SeekAbsolute.
type SeekDirection interface {
	isSeekDirection()
}

// SeekRelative moves the playhead by Millis from the current position.
type SeekRelative struct {
	Millis int32
}

// SeekAbsolute moves the playhead to Millis.
type SeekAbsolute struct {
	Millis uint32
}

func (SeekRelative) isSeekDirection() {}
func (SeekAbsolute) isSeekDirection() {}

type (
	Quit          struct{}
	TogglePlay    struct{}
	Stop          struct{}
	Previous      struct{}
	Next          struct{}
	Clear         struct{}
	Queue         struct{}
	PlayNext      struct{}
	Play          struct{}
	UpdateLibrary struct{}
	Back          struct{}
	Help          struct{}
	Noop          struct{}
	Logout        struct{}
	Redraw        struct{}
	Reconnect     struct{}

	Focus struct {
		Target string
	}
	Seek struct {
		Direction SeekDirection
	}
	VolumeUp struct {
		Amount uint16
	}
	VolumeDown struct {
		Amount uint16
	}
	// Repeat sets the repeat mode; a nil Mode cycles to the next one.
	Repeat struct {
		Mode *playback.RepeatMode
	}
	// Shuffle sets shuffling; a nil On toggles it.
	Shuffle struct {
		On *bool
	}
	Open struct {
		Target TargetMode
	}
	Goto struct {
		Mode GotoMode
	}
	Move struct {
		Mode   MoveMode
		Amount MoveAmount
	}
	// Shift moves the selected entry; a nil Amount means one row.
	Shift struct {
		Mode   ShiftMode
		Amount *int32
	}
	Search struct {
		Query string
	}
	Jump struct {
		Kind  JumpKind
		Query string
	}
	Sort struct {
		Key       SortKey
		Direction SortDirection
	}
	ShowRecommendations struct {
		Target TargetMode
	}
	Execute struct {
		Cmdline string
	}
)

func (Quit) Name() string                { return "quit" }
func (TogglePlay) Name() string          { return "playpause" }
func (Stop) Name() string                { return "stop" }
func (Previous) Name() string            { return "previous" }
func (Next) Name() string                { return "next" }
func (Clear) Name() string               { return "clear" }
func (Queue) Name() string               { return "queue" }
func (PlayNext) Name() string            { return "playnext" }
func (Play) Name() string                { return "play" }
func (UpdateLibrary) Name() string       { return "update" }
func (Focus) Name() string               { return "focus" }
func (Seek) Name() string                { return "seek" }
func (VolumeUp) Name() string            { return "volup" }
func (VolumeDown) Name() string          { return "voldown" }
func (Repeat) Name() string              { return "repeat" }
func (Shuffle) Name() string             { return "shuffle" }
func (Back) Name() string                { return "back" }
func (Open) Name() string                { return "open" }
func (Goto) Name() string                { return "goto" }
func (Move) Name() string                { return "move" }
func (Shift) Name() string               { return "shift" }
func (Search) Name() string              { return "search" }
func (Help) Name() string                { return "help" }
func (Noop) Name() string                { return "noop" }
func (Sort) Name() string                { return "sort" }
func (Logout) Name() string              { return "logout" }
func (ShowRecommendations) Name() string { return "similar" }
func (Redraw) Name() string              { return "redraw" }
func (Execute) Name() string             { return "exec" }
func (Reconnect) Name() string           { return "reconnect" }

func (j Jump) Name() string {
	switch j.Kind {
	case JumpNext:
		return "jumpnext"
	case JumpPrevious:
		return "jumpprevious"
	default:
		return "jump"
	}
}

func (Quit) isCommand()                {}
func (TogglePlay) isCommand()          {}
func (Stop) isCommand()                {}
func (Previous) isCommand()            {}
func (Next) isCommand()                {}
func (Clear) isCommand()               {}
func (Queue) isCommand()               {}
func (PlayNext) isCommand()            {}
func (Play) isCommand()                {}
func (UpdateLibrary) isCommand()       {}
func (Focus) isCommand()               {}
func (Seek) isCommand()                {}
func (VolumeUp) isCommand()            {}
func (VolumeDown) isCommand()          {}
func (Repeat) isCommand()              {}
func (Shuffle) isCommand()             {}
func (Back) isCommand()                {}
func (Open) isCommand()                {}
func (Goto) isCommand()                {}
func (Move) isCommand()                {}
func (Shift) isCommand()               {}
func (Search) isCommand()              {}
func (Jump) isCommand()                {}
func (Help) isCommand()                {}
func (Noop) isCommand()                {}
func (Sort) isCommand()                {}
func (Logout) isCommand()              {}
func (ShowRecommendations) isCommand() {}
func (Redraw) isCommand()              {}
func (Execute) isCommand()             {}
func (Reconnect) isCommand()           {}
