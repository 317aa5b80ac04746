package cmdline

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/ui/action"
	"github.com/llehouerou/ripple/internal/ui/testutil"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func actionOf(t *testing.T, cmd tea.Cmd) action.Action {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", cmd())
	}
	return msg.Action
}

func TestSubmit(t *testing.T) {
	m := New(":")
	m.Open("")
	m, cmd := send(m, runes("seek"), runes(" "), runes("+10s"), tea.KeyMsg{Type: tea.KeyEnter})

	submit, ok := actionOf(t, cmd).(Submit)
	if !ok {
		t.Fatalf("expected Submit")
	}
	if submit.Text != "seek +10s" {
		t.Errorf("Text = %q", submit.Text)
	}
	if m.Active() {
		t.Error("prompt still open after submit")
	}
}

func TestOpenWithPrefill(t *testing.T) {
	m := New(":")
	m.Open("jump ")
	m, cmd := send(m, runes("abc"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := actionOf(t, cmd).(Submit).Text; got != "jump abc" {
		t.Errorf("Text = %q", got)
	}
	_ = m
}

func TestCancel(t *testing.T) {
	for name, msg := range map[string]tea.KeyMsg{
		"esc":             {Type: tea.KeyEsc},
		"empty backspace": {Type: tea.KeyBackspace},
	} {
		t.Run(name, func(t *testing.T) {
			m := New(":")
			m.Open("")
			m, cmd := m.Update(msg)
			if _, ok := actionOf(t, cmd).(Cancel); !ok {
				t.Error("expected Cancel")
			}
			if m.Active() {
				t.Error("prompt still open")
			}
		})
	}
}

func TestBackspaceEditsText(t *testing.T) {
	m := New(":")
	m.Open("ab")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if !m.Active() || m.Value() != "a" {
		t.Errorf("active=%v value=%q", m.Active(), m.Value())
	}
}

func TestHistory(t *testing.T) {
	m := New(":")
	for _, line := range []string{"next", "stop", "stop"} {
		m.Open(line)
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	if len(m.history) != 2 {
		t.Fatalf("history = %q, duplicates should collapse", m.history)
	}

	m.Open("dra")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Value() != "stop" {
		t.Errorf("first up = %q", m.Value())
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if m.Value() != "next" {
		t.Errorf("oldest = %q", m.Value())
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if m.Value() != "dra" {
		t.Errorf("draft not restored: %q", m.Value())
	}
}

func TestClosedIgnoresInput(t *testing.T) {
	m := New(":")
	m, cmd := m.Update(runes("x"))
	if cmd != nil || m.Value() != "" || m.View() != "" {
		t.Error("closed prompt reacted to input")
	}
}

func TestView(t *testing.T) {
	m := New(":")
	m.SetWidth(40)
	m.Open("help")
	if !testutil.ContainsLine(m.View(), ":help") {
		t.Errorf("view = %q", testutil.StripANSI(m.View()))
	}
}
