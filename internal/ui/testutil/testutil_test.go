package testutil

import (
	"testing"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ansi codes", "hello world", "hello world"},
		{"with color codes", "\x1b[31mred\x1b[0m text", "red text"},
		{"with multiple codes", "\x1b[1;32mbold green\x1b[0m", "bold green"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLines(t *testing.T) {
	got := Lines("\x1b[1mtitle\x1b[0m\nrow\n\n  \n")
	if len(got) != 2 || got[0] != "title" || got[1] != "row" {
		t.Errorf("Lines() = %q", got)
	}
}

func TestFindLine(t *testing.T) {
	view := "first\n\x1b[31msecond match\x1b[0m\nthird match"
	if got := FindLine(view, "match"); got != "second match" {
		t.Errorf("FindLine() = %q", got)
	}
	if FindLine(view, "missing") != "" {
		t.Error("FindLine() should return empty for no match")
	}
	if !ContainsLine(view, "third") {
		t.Error("ContainsLine() = false, want true")
	}
}
