package errmsg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		op   Op
		err  error
		want string
	}{
		{OpSearch, nil, ""},
		{OpSearch, errors.New("timeout"), "Failed to search: timeout"},
		{OpLibrary, errors.New("status 503"), "Failed to load starred songs: status 503"},
		{OpQueueSave, errors.New("disk full"), "Failed to save queue: disk full"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.op, tt.err), "%s: %v", tt.op, tt.err)
	}
}

func TestFormatWith(t *testing.T) {
	assert.Empty(t, FormatWith(OpExecute, "ls", nil))
	assert.Equal(t,
		"Failed to run command 'mpc next': exit status 1",
		FormatWith(OpExecute, "mpc next", errors.New("exit status 1")))
	assert.Equal(t,
		"Failed to find similar songs: not found",
		FormatWith(OpSimilar, "", errors.New("not found")),
		"empty context falls back to Format")
}
