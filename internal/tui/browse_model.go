package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/pokedex/internal/browser"
	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokemon"
	"github.com/rshade/pokedex/internal/tui/detail"
	listview "github.com/rshade/pokedex/internal/tui/list"
)

const (
	// loadMoreThreshold is how close to the last row the cursor gets before the next page is requested.
	loadMoreThreshold = 5

	// warningTTL is how long a load-more warning stays on screen.
	warningTTL = 4 * time.Second
)

// BrowseModel is the Bubble Tea model for the Pokémon list. It renders the
// controller's state, forwards input to it and swaps in the detail screen
// whenever the router has one on top.
type BrowseModel struct {
	ctx    context.Context //nolint:containedctx // Bubble Tea commands need a parent context.
	ctrl   *browser.Controller
	router *Router
	loader detail.Loader
	logger zerolog.Logger

	states      <-chan browser.ViewState
	unsubscribe func()

	state     browser.ViewState
	list      *listview.VirtualListModel[pokemon.Pokemon]
	search    textinput.Model
	searching bool
	loading   *LoadingState
	detail    *detail.Model

	initialQuery string

	warning    string
	warningSeq int

	printer  *message.Printer
	width    int
	height   int
	quitting bool
}

// NewBrowseModel subscribes to ctrl. The router must be the navigator ctrl
// was built with; loader serves the detail screen.
func NewBrowseModel(
	ctx context.Context,
	ctrl *browser.Controller,
	router *Router,
	loader detail.Loader,
) *BrowseModel {
	states, unsubscribe := ctrl.Subscribe()
	m := &BrowseModel{
		ctx:         ctx,
		ctrl:        ctrl,
		router:      router,
		loader:      loader,
		logger:      logging.ComponentLogger(*logging.FromContext(ctx), "tui"),
		states:      states,
		unsubscribe: unsubscribe,
		state:       ctrl.State(),
		search:      newSearchInput(),
		loading:     NewLoadingState(),
		printer:     message.NewPrinter(language.English),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.list = listview.NewVirtualListModel[pokemon.Pokemon](nil, m.listHeight(), m.width, renderPokemon)
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search by name or number..."
	ti.Prompt = "/ "
	ti.CharLimit = searchCharLimit
	ti.Width = searchWidth
	return ti
}

// SetInitialQuery makes Init search for q instead of loading the unfiltered list.
func (m *BrowseModel) SetInitialQuery(q string) {
	m.initialQuery = q
	m.search.SetValue(q)
}

// State returns the last controller state the model rendered.
func (m *BrowseModel) State() browser.ViewState { return m.state }

// Searching reports whether the search box has focus.
func (m *BrowseModel) Searching() bool { return m.searching }

// Warning returns the transient warning, empty when none is showing.
func (m *BrowseModel) Warning() string { return m.warning }

// Detail returns the open detail screen, nil while the list is showing.
func (m *BrowseModel) Detail() *detail.Model { return m.detail }

// Selected returns the entry under the cursor.
func (m *BrowseModel) Selected() (pokemon.Pokemon, bool) {
	p := m.list.GetSelectedItem()
	if p == nil {
		return pokemon.Pokemon{}, false
	}
	return *p, true
}

// Init loads the first page and starts listening for state and route changes.
func (m *BrowseModel) Init() tea.Cmd {
	load := m.ctrl.LoadInitial
	if q := m.initialQuery; q != "" {
		load = func(ctx context.Context) error { return m.ctrl.RunSearch(ctx, q) }
	}
	return tea.Batch(
		WaitForState(m.states),
		WaitForRoute(m.router),
		m.loading.Init(),
		runOp(m.ctx, opLoadInitial, load),
	)
}

// Update handles controller, router and terminal messages.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.listHeight(), m.width)
		if m.detail != nil {
			_, cmd := m.detail.Update(msg)
			return m, cmd
		}
		return m, nil

	case StateMsg:
		m.applyState(msg.State)
		return m, WaitForState(m.states)

	case stateClosedMsg:
		return m, nil

	case RouteMsg:
		return m, tea.Batch(m.applyRoute(msg.Path), WaitForRoute(m.router))

	case detail.BackMsg:
		m.router.Pop()
		return m, nil

	case opDoneMsg:
		return m, m.handleOpDone(msg)

	case clearWarningMsg:
		if msg.seq == m.warningSeq {
			m.warning = ""
		}
		return m, nil

	case spinner.TickMsg:
		cmds := []tea.Cmd{m.loading.Update(msg)}
		if m.detail != nil {
			_, cmd := m.detail.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			return m.quit()
		}
		if m.detail != nil {
			_, cmd := m.detail.Update(msg)
			return m, cmd
		}
		if m.searching {
			return m.handleSearchInput(msg)
		}
		return m.handleListKey(msg)
	}

	if m.detail != nil {
		_, cmd := m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BrowseModel) applyState(s browser.ViewState) {
	prev, wasSuccess := m.state.(browser.StateSuccess)
	m.state = s

	next, ok := s.(browser.StateSuccess)
	if !ok {
		return
	}
	m.list.SetItems(next.Items)
	if !wasSuccess || prev.Query != next.Query {
		m.list.SetSelected(0)
	}
}

func (m *BrowseModel) applyRoute(path []Destination) tea.Cmd {
	if len(path) == 0 {
		m.detail = nil
		return nil
	}
	top := path[len(path)-1]
	if top.Kind != DestinationDetail {
		return nil
	}
	if m.detail != nil && m.detail.Name() == top.Name {
		return nil
	}
	m.detail = detail.New(m.ctx, m.loader, top.Name)
	_, _ = m.detail.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return m.detail.Init()
}

func (m *BrowseModel) handleOpDone(msg opDoneMsg) tea.Cmd {
	err := msg.err
	if err == nil ||
		errors.Is(err, browser.ErrStale) ||
		errors.Is(err, browser.ErrClosed) ||
		errors.Is(err, context.Canceled) {
		return nil
	}

	m.logger.Debug().Ctx(m.ctx).Err(err).Stringer("operation", msg.op).Msg("operation failed")
	if msg.op != opLoadMore {
		// The controller already moved to StateError.
		return nil
	}

	m.warningSeq++
	seq := m.warningSeq
	m.warning = "Could not load more: " + pokemon.UserMessage(err)
	return tea.Tick(warningTTL, func(time.Time) tea.Msg {
		return clearWarningMsg{seq: seq}
	})
}

func (m *BrowseModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		m.searching = false
		m.search.Blur()
		return m, m.flushSearch()
	case keyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.ctrl.SetSearchQuery(v)
	}
	return m, cmd
}

func (m *BrowseModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		return m.quit()
	case keySlash:
		m.searching = true
		return m, m.search.Focus()
	case keyRefresh:
		return m, runOp(m.ctx, opRefresh, m.ctrl.Refresh)
	case keyEsc:
		if m.search.Value() == "" {
			return m, nil
		}
		m.search.SetValue("")
		m.ctrl.SetSearchQuery("")
		return m, m.flushSearch()
	case keyEnter:
		if p, ok := m.Selected(); ok {
			if err := m.ctrl.Select(p.ID); err != nil {
				m.logger.Debug().Ctx(m.ctx).Err(err).Int("id", p.ID).Msg("select failed")
			}
		}
		return m, nil
	}

	_, cmd := m.list.Update(msg)
	return m, tea.Batch(cmd, m.maybeLoadMore())
}

// maybeLoadMore requests the next page once the cursor is near the end.
func (m *BrowseModel) maybeLoadMore() tea.Cmd {
	s, ok := m.state.(browser.StateSuccess)
	if !ok || !s.HasMore || s.IsLoadingMore || !m.list.NearEnd(loadMoreThreshold) {
		return nil
	}
	return runOp(m.ctx, opLoadMore, m.ctrl.LoadMore)
}

func (m *BrowseModel) flushSearch() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.FlushSearch()
		return nil
	}
}

func (m *BrowseModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.unsubscribe()
	return m, tea.Quit
}

func (m *BrowseModel) listHeight() int {
	return max(m.height-chromeHeight, minListHeight)
}
