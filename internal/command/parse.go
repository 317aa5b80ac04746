package command

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/ripple/internal/playback"
)

// Separator splits several commands on one line. Doubling it escapes it.
const Separator = ';'

var errTooLarge = errors.New("duration value too large")

type choice[T any] struct {
	names []string
	value T
}

// choices is an ordered enum table; the order is the order accepted values
// are listed in error messages.
type choices[T any] []choice[T]

func (c choices[T]) lookup(arg string) (T, bool) {
	for _, ch := range c {
		for _, n := range ch.names {
			if n == arg {
				return ch.value, true
			}
		}
	}
	var zero T
	return zero, false
}

func (c choices[T]) accept() []string {
	var out []string
	for _, ch := range c {
		out = append(out, ch.names...)
	}
	return out
}

// parse resolves arg against c, building the BadEnumArg error on a miss.
func (c choices[T]) parse(arg string, optional bool) (T, error) {
	v, ok := c.lookup(arg)
	if !ok {
		return v, errBadEnum(arg, optional, c.accept()...)
	}
	return v, nil
}

var (
	repeatChoices = choices[playback.RepeatMode]{
		{[]string{"list", "playlist", "queue"}, playback.RepeatPlaylist},
		{[]string{"track", "once", "single"}, playback.RepeatTrack},
		{[]string{"none", "off"}, playback.RepeatNone},
	}
	shuffleChoices = choices[bool]{
		{[]string{"on"}, true},
		{[]string{"off"}, false},
	}
	targetChoices = choices[TargetMode]{
		{[]string{"selected"}, TargetSelected},
		{[]string{"current"}, TargetCurrent},
	}
	gotoChoices = choices[GotoMode]{
		{[]string{"album"}, GotoAlbum},
		{[]string{"artist"}, GotoArtist},
	}
	shiftChoices = choices[ShiftMode]{
		{[]string{"up"}, ShiftUp},
		{[]string{"down"}, ShiftDown},
	}
	sortKeyChoices = choices[SortKey]{
		{[]string{"title"}, SortTitle},
		{[]string{"duration"}, SortDuration},
		{[]string{"album"}, SortAlbum},
		{[]string{"added"}, SortAdded},
		{[]string{"artist"}, SortArtist},
	}
	sortDirectionChoices = choices[SortDirection]{
		{[]string{"a", "asc", "ascending"}, Ascending},
		{[]string{"d", "desc", "descending"}, Descending},
	}
)

type moveDirection struct {
	mode MoveMode
	kind MoveAmountKind
	// fixed is set for directions that take no amount argument.
	fixed bool
}

var moveChoices = choices[moveDirection]{
	{[]string{"playing"}, moveDirection{MovePlaying, AmountInteger, true}},
	{[]string{"top"}, moveDirection{MoveUp, AmountExtreme, true}},
	{[]string{"bottom"}, moveDirection{MoveDown, AmountExtreme, true}},
	{[]string{"leftmost"}, moveDirection{MoveLeft, AmountExtreme, true}},
	{[]string{"rightmost"}, moveDirection{MoveRight, AmountExtreme, true}},
	{[]string{"pageup"}, moveDirection{MoveUp, AmountPages, false}},
	{[]string{"pagedown"}, moveDirection{MoveDown, AmountPages, false}},
	{[]string{"pageleft"}, moveDirection{MoveLeft, AmountPages, false}},
	{[]string{"pageright"}, moveDirection{MoveRight, AmountPages, false}},
	{[]string{"up"}, moveDirection{MoveUp, AmountInteger, false}},
	{[]string{"down"}, moveDirection{MoveDown, AmountInteger, false}},
	{[]string{"left"}, moveDirection{MoveLeft, AmountInteger, false}},
	{[]string{"right"}, moveDirection{MoveRight, AmountInteger, false}},
}

// Parse turns a line of command text into commands, in source order. Any
// invalid command fails the whole line; the error is a *ParseError.
func Parse(input string) ([]Command, error) {
	var cmds []Command
	for _, part := range splitCommands(input) {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseOne(fields[0], fields[1:])
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// MustParse is like Parse but panics on error. Meant for built-in bindings.
func MustParse(input string) []Command {
	cmds, err := Parse(input)
	if err != nil {
		panic("command: " + input + ": " + err.Error())
	}
	return cmds
}

// splitCommands splits on Separator, turning a doubled separator into a
// literal one.
func splitCommands(input string) []string {
	var (
		parts   []string
		current strings.Builder
		pending bool
	)
	for _, r := range input {
		if pending {
			pending = false
			if r == Separator {
				current.WriteRune(r)
				continue
			}
			parts = append(parts, current.String())
			current.Reset()
		}
		if r == Separator {
			pending = true
			continue
		}
		current.WriteRune(r)
	}
	return append(parts, current.String())
}

//nolint:gocyclo // one case per command
func parseOne(name string, args []string) (Command, error) {
	switch name {
	case "quit", "q", "x":
		return Quit{}, nil
	case "playpause", "pause", "toggleplay", "toggleplayback":
		return TogglePlay{}, nil
	case "stop":
		return Stop{}, nil
	case "previous":
		return Previous{}, nil
	case "next":
		return Next{}, nil
	case "clear":
		return Clear{}, nil
	case "queue":
		return Queue{}, nil
	case "playnext":
		return PlayNext{}, nil
	case "play":
		return Play{}, nil
	case "update":
		return UpdateLibrary{}, nil
	case "back":
		return Back{}, nil
	case "help":
		return Help{}, nil
	case "noop":
		return Noop{}, nil
	case "logout":
		return Logout{}, nil
	case "redraw":
		return Redraw{}, nil
	case "reconnect":
		return Reconnect{}, nil
	case "jumpnext":
		return Jump{Kind: JumpNext}, nil
	case "jumpprevious":
		return Jump{Kind: JumpPrevious}, nil
	case "search":
		return Search{Query: strings.Join(args, " ")}, nil
	case "jump":
		return Jump{Kind: JumpQuery, Query: strings.Join(args, " ")}, nil
	case "exec":
		return Execute{Cmdline: strings.Join(args, " ")}, nil
	case "focus":
		if len(args) == 0 {
			return nil, errInsufficientArgs(name, "queue|search|library")
		}
		return Focus{Target: args[0]}, nil
	case "seek":
		return parseSeek(name, args)
	case "volup":
		n, err := optionalUint16(args)
		if err != nil {
			return nil, err
		}
		return VolumeUp{Amount: n}, nil
	case "voldown":
		n, err := optionalUint16(args)
		if err != nil {
			return nil, err
		}
		return VolumeDown{Amount: n}, nil
	case "repeat", "loop":
		if len(args) == 0 {
			return Repeat{}, nil
		}
		mode, err := repeatChoices.parse(args[0], true)
		if err != nil {
			return nil, err
		}
		return Repeat{Mode: &mode}, nil
	case "shuffle":
		if len(args) == 0 {
			return Shuffle{}, nil
		}
		on, err := shuffleChoices.parse(args[0], true)
		if err != nil {
			return nil, err
		}
		return Shuffle{On: &on}, nil
	case "open", "similar":
		if len(args) == 0 {
			return nil, errInsufficientArgs(name, "selected|current")
		}
		target, err := targetChoices.parse(args[0], false)
		if err != nil {
			return nil, err
		}
		if name == "open" {
			return Open{Target: target}, nil
		}
		return ShowRecommendations{Target: target}, nil
	case "goto":
		if len(args) == 0 {
			return nil, errInsufficientArgs(name, "album|artist")
		}
		mode, err := gotoChoices.parse(args[0], false)
		if err != nil {
			return nil, err
		}
		return Goto{Mode: mode}, nil
	case "move":
		return parseMove(name, args)
	case "shift":
		return parseShift(name, args)
	case "sort":
		return parseSort(name, args)
	default:
		return nil, errNoSuchCommand(name)
	}
}

func optionalUint16(args []string) (uint16, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(args[0], "+"), 10, 16)
	if err != nil {
		return 0, errArgParse(args[0], err)
	}
	return uint16(n), nil
}

// parseSeek accepts raw milliseconds, fractional or oversized seconds, or a
// duration such as "1m30s". A leading sign makes the seek relative; only
// then is the rest trimmed, so "+ 1000" and "+1000" mean the same.
func parseSeek(name string, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, errInsufficientArgs(name, "a duration")
	}
	arg := strings.Join(args, " ")
	sign := arg[0]
	raw := arg
	if sign == '+' || sign == '-' {
		raw = strings.TrimSpace(arg[1:])
	}
	millis, err := parseMillis(raw)
	if err != nil {
		return nil, err
	}
	switch sign {
	case '+', '-':
		if millis > math.MaxInt32 {
			return nil, errArgParse(raw, errTooLarge)
		}
		delta := int32(millis)
		if sign == '-' {
			delta = -delta
		}
		return Seek{Direction: SeekRelative{Millis: delta}}, nil
	default:
		return Seek{Direction: SeekAbsolute{Millis: millis}}, nil
	}
}

func parseMillis(raw string) (uint32, error) {
	if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return uint32(n), nil
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return secondsToMillis(raw, secs)
	}
	d, err := time.ParseDuration(strings.ReplaceAll(raw, " ", ""))
	if err != nil {
		return 0, errArgParse(raw, err)
	}
	if d < 0 {
		return 0, errArgParse(raw, errors.New("negative duration"))
	}
	if d.Milliseconds() > math.MaxUint32 {
		return 0, errArgParse(raw, errTooLarge)
	}
	return uint32(d.Milliseconds()), nil
}

func parseMove(name string, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, errInsufficientArgs(name, "a direction")
	}
	dir, err := moveChoices.parse(args[0], false)
	if err != nil {
		return nil, err
	}
	amount := DefaultMoveAmount
	switch {
	case dir.kind == AmountExtreme:
		amount = MoveAmount{Kind: AmountExtreme}
	case dir.fixed || len(args) < 2:
	case dir.kind == AmountPages:
		f, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return nil, errArgParse(args[1], err)
		}
		amount = MoveAmount{Kind: AmountPages, Pages: float32(f)}
	default:
		n, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return nil, errArgParse(args[1], err)
		}
		amount = MoveAmount{Kind: AmountInteger, Integer: int32(n)}
	}
	return Move{Mode: dir.mode, Amount: amount}, nil
}

func parseShift(name string, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, errInsufficientArgs(name, "up|down")
	}
	mode, err := shiftChoices.parse(args[0], false)
	if err != nil {
		return nil, err
	}
	cmd := Shift{Mode: mode}
	if len(args) > 1 {
		n, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return nil, errArgParse(args[1], err)
		}
		amount := int32(n)
		cmd.Amount = &amount
	}
	return cmd, nil
}

func parseSort(name string, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, errInsufficientArgs(name, "a sort key")
	}
	key, err := sortKeyChoices.parse(args[0], false)
	if err != nil {
		return nil, err
	}
	cmd := Sort{Key: key, Direction: Ascending}
	if len(args) > 1 {
		if cmd.Direction, err = sortDirectionChoices.parse(args[1], true); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

// secondsToMillis handles a bare number too large or too fractional to be
// milliseconds, which counts as seconds.
func secondsToMillis(raw string, secs float64) (uint32, error) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, errArgParse(raw, errors.New("invalid duration"))
	}
	if secs < 0 {
		return 0, errArgParse(raw, errors.New("negative duration"))
	}
	millis := math.Round(secs * 1000)
	if millis > math.MaxUint32 {
		return 0, errArgParse(raw, errTooLarge)
	}
	return uint32(millis), nil
}
