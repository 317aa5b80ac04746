package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/ui/action"
	"github.com/llehouerou/ripple/internal/ui/testutil"
)

const testContext = "ctx"

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func result(t *testing.T, cmd tea.Cmd) Result {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	msg, ok := cmd().(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", cmd())
	}
	if msg.Source != "confirm" {
		t.Errorf("Source = %q", msg.Source)
	}
	r, ok := msg.Action.(Result)
	if !ok {
		t.Fatalf("expected Result, got %T", msg.Action)
	}
	return r
}

func TestAnswers(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"enter", true},
		{"y", true},
		{"Y", true},
		{"esc", false},
		{"n", false},
		{"N", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := New()
			m.Show("Clear?", "Remove every track?", testContext)
			m, cmd := m.Update(key(tt.key))
			r := result(t, cmd)
			if r.Confirmed != tt.want {
				t.Errorf("Confirmed = %v, want %v", r.Confirmed, tt.want)
			}
			if r.Context != testContext {
				t.Errorf("Context = %v", r.Context)
			}
			if m.Active() {
				t.Error("dialog still active after answer")
			}
		})
	}
}

func TestOtherKeysAreSwallowed(t *testing.T) {
	m := New()
	m.Show("Clear?", "Remove every track?", nil)
	m, cmd := m.Update(key("x"))
	if cmd != nil {
		t.Error("unexpected command")
	}
	if !m.Active() {
		t.Error("dialog closed on unrelated key")
	}
}

func TestInactive(t *testing.T) {
	m := New()
	if _, cmd := m.Update(key("y")); cmd != nil {
		t.Error("inactive dialog answered")
	}
	if m.View(80, 24) != "" {
		t.Error("inactive dialog rendered")
	}
}

func TestView(t *testing.T) {
	m := New()
	m.Show("Clear queue", "Remove 3 tracks?", nil)
	view := m.View(80, 24)
	for _, want := range []string{"Clear queue", "Remove 3 tracks?", "Esc/N: cancel"} {
		if !testutil.ContainsLine(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
