// Package errmsg turns errors into the one-line messages shown in the
// status line.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operations shown in the status line.
const (
	// Catalog
	OpSearch    Op = "search"
	OpSimilar   Op = "find similar songs"
	OpLibrary   Op = "load starred songs"
	OpAlbumLoad Op = "load album"
	OpArtist    Op = "load artist"

	// Queue and state
	OpQueueLoad  Op = "load queue"
	OpQueueSave  Op = "save queue"
	OpVolumeSave Op = "save volume"

	// Session
	OpLogout  Op = "log out"
	OpExecute Op = "run command"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
