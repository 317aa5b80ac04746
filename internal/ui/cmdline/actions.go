package cmdline

import (
	"github.com/llehouerou/ripple/internal/ui/action"
)

// Submit carries the entered command text.
type Submit struct {
	Text string
}

// Cancel is sent when the prompt is dismissed without submitting.
type Cancel struct{}

// ActionType implements action.Action.
func (Submit) ActionType() string { return "cmdline.submit" }

// ActionType implements action.Action.
func (Cancel) ActionType() string { return "cmdline.cancel" }

// ActionMsg creates an action.Msg for a command line action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "cmdline", Action: a}
}
