package command

import (
	"strconv"
	"strings"
)

func (c Quit) String() string          { return c.Name() }
func (c TogglePlay) String() string    { return c.Name() }
func (c Stop) String() string          { return c.Name() }
func (c Previous) String() string      { return c.Name() }
func (c Next) String() string          { return c.Name() }
func (c Clear) String() string         { return c.Name() }
func (c Queue) String() string         { return c.Name() }
func (c PlayNext) String() string      { return c.Name() }
func (c Play) String() string          { return c.Name() }
func (c UpdateLibrary) String() string { return c.Name() }
func (c Back) String() string          { return c.Name() }
func (c Help) String() string          { return c.Name() }
func (c Noop) String() string          { return c.Name() }
func (c Logout) String() string        { return c.Name() }
func (c Redraw) String() string        { return c.Name() }
func (c Reconnect) String() string     { return c.Name() }

func (c Focus) String() string   { return join(c.Name(), c.Target) }
func (c Search) String() string  { return join(c.Name(), c.Query) }
func (c Execute) String() string { return join(c.Name(), c.Cmdline) }

func (c Jump) String() string {
	if c.Kind == JumpQuery {
		return join(c.Name(), c.Query)
	}
	return c.Name()
}

func (c Seek) String() string {
	switch d := c.Direction.(type) {
	case SeekRelative:
		if d.Millis >= 0 {
			return join(c.Name(), "+"+strconv.Itoa(int(d.Millis)))
		}
		return join(c.Name(), strconv.Itoa(int(d.Millis)))
	case SeekAbsolute:
		return join(c.Name(), strconv.FormatUint(uint64(d.Millis), 10))
	default:
		return c.Name()
	}
}

func (c VolumeUp) String() string {
	return join(c.Name(), strconv.FormatUint(uint64(c.Amount), 10))
}

func (c VolumeDown) String() string {
	return join(c.Name(), strconv.FormatUint(uint64(c.Amount), 10))
}

func (c Repeat) String() string {
	if c.Mode == nil {
		return c.Name()
	}
	return join(c.Name(), c.Mode.String())
}

func (c Shuffle) String() string {
	switch {
	case c.On == nil:
		return c.Name()
	case *c.On:
		return join(c.Name(), "on")
	default:
		return join(c.Name(), "off")
	}
}

func (c Open) String() string { return join(c.Name(), c.Target.String()) }

func (c ShowRecommendations) String() string { return join(c.Name(), c.Target.String()) }

func (c Goto) String() string {
	if c.Mode == GotoArtist {
		return join(c.Name(), "artist")
	}
	return join(c.Name(), "album")
}

func (c Move) String() string {
	dir := [...]string{MoveUp: "up", MoveDown: "down", MoveLeft: "left", MoveRight: "right", MovePlaying: "playing"}[c.Mode]
	switch c.Amount.Kind {
	case AmountExtreme:
		extreme := [...]string{MoveUp: "top", MoveDown: "bottom", MoveLeft: "leftmost", MoveRight: "rightmost", MovePlaying: "playing"}
		return join(c.Name(), extreme[c.Mode])
	case AmountPages:
		return join(c.Name(), "page"+dir, strconv.FormatFloat(float64(c.Amount.Pages), 'g', -1, 32))
	default:
		if c.Mode == MovePlaying {
			return join(c.Name(), dir)
		}
		return join(c.Name(), dir, strconv.Itoa(int(c.Amount.Integer)))
	}
}

func (c Shift) String() string {
	dir := "up"
	if c.Mode == ShiftDown {
		dir = "down"
	}
	if c.Amount == nil {
		return join(c.Name(), dir)
	}
	return join(c.Name(), dir, strconv.Itoa(int(*c.Amount)))
}

func (c Sort) String() string {
	key := [...]string{SortTitle: "title", SortDuration: "duration", SortArtist: "artist", SortAlbum: "album", SortAdded: "added"}[c.Key]
	dir := "ascending"
	if c.Direction == Descending {
		dir = "descending"
	}
	return join(c.Name(), key, dir)
}

func (m TargetMode) String() string {
	if m == TargetCurrent {
		return "current"
	}
	return "selected"
}

// join renders a command name and its arguments; a literal separator in an
// argument is escaped.
func join(name string, args ...string) string {
	var b strings.Builder
	b.WriteString(name)
	for _, a := range args {
		if a == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(strings.ReplaceAll(a, string(Separator), string(Separator)+string(Separator)))
	}
	return b.String()
}

// Join renders cmds as one line Parse turns back into the same commands.
func Join(cmds []Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = c.String()
	}
	return strings.Join(parts, string(Separator)+" ")
}
