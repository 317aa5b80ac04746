// Package action carries requests from UI components up to the app.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is something a component asks the app to do. ActionType names it
// in debug logs.
type Action interface {
	ActionType() string
}

// Msg is the tea.Msg a component returns to hand an Action to the app.
type Msg struct {
	Source string // component name: "confirm", "cmdline"
	Action Action
}

var _ tea.Msg = Msg{}
