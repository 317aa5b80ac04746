// Package keymap maps keys to command text.
package keymap

// Binding binds keys to command text.
type Binding struct {
	Keys        []string
	Command     string
	Description string
}

// Defaults are the built-in bindings. Key names are bubbletea's, except
// "space" which is accepted for " ".
var Defaults = []Binding{
	// Application
	{[]string{"q"}, "quit", "Quit"},
	{[]string{"ctrl+l"}, "redraw", "Redraw the screen"},
	{[]string{"?"}, "help", "Show help"},
	{[]string{"backspace"}, "back", "Close the current view"},
	{[]string{"f1"}, "focus queue", "Queue"},
	{[]string{"f2"}, "focus search", "Search"},
	{[]string{"f3"}, "focus library", "Starred songs"},
	{[]string{"U"}, "update", "Refresh starred songs"},

	// Playback
	{[]string{"P"}, "playpause", "Play/pause"},
	{[]string{"S"}, "stop", "Stop"},
	{[]string{"<"}, "previous", "Previous track"},
	{[]string{">"}, "next", "Next track"},
	{[]string{"f"}, "seek +1000", "Seek +1s"},
	{[]string{"b"}, "seek -1000", "Seek -1s"},
	{[]string{"F"}, "seek +10000", "Seek +10s"},
	{[]string{"B"}, "seek -10000", "Seek -10s"},
	{[]string{"+"}, "volup 1", "Volume +1%"},
	{[]string{"]"}, "volup 5", "Volume +5%"},
	{[]string{"-"}, "voldown 1", "Volume -1%"},
	{[]string{"["}, "voldown 5", "Volume -5%"},
	{[]string{"r"}, "repeat", "Cycle repeat mode"},
	{[]string{"z"}, "shuffle", "Toggle shuffle"},

	// Lists
	{[]string{"space"}, "queue;move down", "Queue selected"},
	{[]string{"."}, "playnext;move down", "Play selected next"},
	{[]string{"enter"}, "play", "Play selected"},
	{[]string{"c"}, "clear", "Clear queue"},
	{[]string{"n"}, "jumpnext", "Next match"},
	{[]string{"N"}, "jumpprevious", "Previous match"},
	{[]string{"o"}, "open selected", "Open selected album"},
	{[]string{"O"}, "open current", "Open playing album"},
	{[]string{"a"}, "goto album", "Go to album"},
	{[]string{"A"}, "goto artist", "Go to artist"},
	{[]string{"m"}, "similar selected", "Songs similar to selected"},
	{[]string{"M"}, "similar current", "Songs similar to playing"},
	{[]string{"up", "k"}, "move up", "Move up"},
	{[]string{"down", "j"}, "move down", "Move down"},
	{[]string{"left", "h"}, "move left", "Move left"},
	{[]string{"right", "l"}, "move right", "Move right"},
	{[]string{"p"}, "move playing", "Select playing track"},
	{[]string{"pgup"}, "move up 5", "Move up 5"},
	{[]string{"pgdown"}, "move down 5", "Move down 5"},
	{[]string{"home"}, "move top", "First item"},
	{[]string{"end"}, "move bottom", "Last item"},
	{[]string{"shift+up"}, "shift up", "Shift entry up"},
	{[]string{"shift+down"}, "shift down", "Shift entry down"},
}

// normalizeKey maps configuration spellings to bubbletea key names.
func normalizeKey(key string) string {
	if key == "space" {
		return " "
	}
	return key
}

// displayKey is the inverse of normalizeKey.
func displayKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

// Description returns the description of a default binding's command text,
// or "" for commands only bound by the user.
func Description(text string) string {
	for _, b := range Defaults {
		if b.Command == text {
			return b.Description
		}
	}
	return ""
}
