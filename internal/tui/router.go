package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/pokedex/internal/pokemon"
)

// DestinationKind identifies a screen above the list.
type DestinationKind int

const (
	// DestinationDetail is the detail screen for one Pokémon.
	DestinationDetail DestinationKind = iota + 1
)

// Destination is one entry in the navigation stack.
type Destination struct {
	Kind DestinationKind
	Name string
}

// Router is the navigation stack. The list is the implicit root, so an empty
// Path means the list is showing. It implements browser.Navigator and is safe
// for concurrent use.
type Router struct {
	mu      sync.Mutex
	path    []Destination
	changes chan []Destination
}

// NewRouter returns a router at the root.
func NewRouter() *Router {
	return &Router{changes: make(chan []Destination, 1)}
}

// ShowDetail pushes the detail screen for p.
func (r *Router) ShowDetail(p pokemon.Pokemon) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = append(r.path, Destination{Kind: DestinationDetail, Name: p.Name})
	r.publishLocked()
}

// Pop removes the top screen. It reports false at the root.
func (r *Router) Pop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.path) == 0 {
		return false
	}
	r.path = r.path[:len(r.path)-1]
	r.publishLocked()
	return true
}

// PopToRoot clears the stack.
func (r *Router) PopToRoot() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.path) == 0 {
		return
	}
	r.path = nil
	r.publishLocked()
}

// Path returns a copy of the stack, bottom first.
func (r *Router) Path() []Destination {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Destination(nil), r.path...)
}

// Top returns the screen on top of the stack, false at the root.
func (r *Router) Top() (Destination, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.path) == 0 {
		return Destination{}, false
	}
	return r.path[len(r.path)-1], true
}

// Changes delivers the path after every change. Unread paths are replaced by newer ones.
func (r *Router) Changes() <-chan []Destination {
	return r.changes
}

func (r *Router) publishLocked() {
	select {
	case <-r.changes:
	default:
	}
	r.changes <- append([]Destination(nil), r.path...)
}

// RouteMsg carries the navigation path into the Bubble Tea program.
type RouteMsg struct {
	Path []Destination
}

// WaitForRoute blocks until the router changes.
func WaitForRoute(r *Router) tea.Cmd {
	return func() tea.Msg {
		return RouteMsg{Path: <-r.changes}
	}
}
