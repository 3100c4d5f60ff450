package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/pokedex/internal/browser"
)

// StateMsg carries a controller state into the Bubble Tea program.
type StateMsg struct {
	State browser.ViewState
}

// stateClosedMsg reports that the controller closed the subscription.
type stateClosedMsg struct{}

// WaitForState blocks until the subscription delivers the next state.
func WaitForState(ch <-chan browser.ViewState) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return stateClosedMsg{}
		}
		return StateMsg{State: s}
	}
}

// operation names a controller call started from the TUI.
type operation int

const (
	opLoadInitial operation = iota
	opRefresh
	opLoadMore
)

func (o operation) String() string {
	switch o {
	case opLoadInitial:
		return "load initial"
	case opRefresh:
		return "refresh"
	case opLoadMore:
		return "load more"
	default:
		return "unknown"
	}
}

// opDoneMsg is the outcome of a controller call. State changes arrive
// separately through the subscription.
type opDoneMsg struct {
	op  operation
	err error
}

// clearWarningMsg hides the warning with the matching seq.
type clearWarningMsg struct {
	seq int
}

func runOp(ctx context.Context, op operation, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}
