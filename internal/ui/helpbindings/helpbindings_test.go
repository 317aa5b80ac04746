package helpbindings

import (
	"strings"
	"testing"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/keymap"
	"github.com/llehouerou/ripple/internal/ui/testutil"
)

func newHelp(t *testing.T, height int) Model {
	t.Helper()
	r, errs := keymap.NewResolver(keymap.Defaults, map[string]string{"X": "exec notify-send hi"})
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	m := New(r.All())
	m.SetSize(100, height)
	return m
}

func TestNew_MergesKeys(t *testing.T) {
	m := newHelp(t, 20)
	var found bool
	for _, r := range m.rows {
		if r.command == "move down" {
			found = true
			if r.keys != "down, j" {
				t.Errorf("keys = %q", r.keys)
			}
			if r.description != "Move down" {
				t.Errorf("description = %q", r.description)
			}
		}
	}
	if !found {
		t.Fatal("move down not listed")
	}
}

func TestView_ShowsUserBindings(t *testing.T) {
	m := newHelp(t, 200)
	line := testutil.FindLine(m.View(), "exec notify-send hi")
	if !strings.HasPrefix(line, "X") {
		t.Errorf("user binding line = %q", line)
	}
}

func TestMove_Scrolls(t *testing.T) {
	m := newHelp(t, 10)
	first := testutil.Lines(m.View())[1]

	m.Move(command.Move{Mode: command.MoveDown, Amount: command.MoveAmount{Kind: command.AmountExtreme}})
	lines := testutil.Lines(m.View())
	if lines[1] == first {
		t.Error("view did not scroll")
	}
	if len(lines) != 10 {
		t.Errorf("got %d lines, want 10", len(lines))
	}

	m.Move(command.Move{Mode: command.MoveUp, Amount: command.MoveAmount{Kind: command.AmountExtreme}})
	if testutil.Lines(m.View())[1] != first {
		t.Error("top did not scroll back")
	}
}

func TestView_ZeroSize(t *testing.T) {
	if New(nil).View() != "" {
		t.Error("expected empty view")
	}
}
