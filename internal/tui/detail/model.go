package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/pokedex/internal/pokemon"
)

// Loader fetches one Pokémon by name or ID.
type Loader interface {
	Detail(ctx context.Context, nameOrID string) (pokemon.Detail, error)
}

// State is the load state of the screen.
type State int

const (
	// StateInitial means nothing has been requested yet.
	StateInitial State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateSuccess means the detail is shown.
	StateSuccess
	// StateError means the last fetch failed and can be retried.
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	statBarWidth   = 30
	statLabelWidth = 8
	statValueWidth = 4
	defaultWidth   = 80
)

//nolint:gochecknoglobals // lipgloss styles are immutable values.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	typeStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// BackMsg asks the owner to close the detail screen.
type BackMsg struct{}

// loadedMsg is the result of one fetch. seq ties it to the request that produced it.
type loadedMsg struct {
	seq    int
	detail pokemon.Detail
	err    error
}

// Model is the Bubble Tea model for the detail screen.
type Model struct {
	ctx    context.Context //nolint:containedctx // Bubble Tea commands need a parent context.
	loader Loader
	name   string

	state  State
	detail pokemon.Detail
	err    error
	seq    int

	spinner spinner.Model
	bar     progress.Model
	width   int
}

// New returns a detail screen for nameOrID in StateInitial. Init starts the load.
func New(ctx context.Context, loader Loader, nameOrID string) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &Model{
		ctx:     ctx,
		loader:  loader,
		name:    nameOrID,
		spinner: s,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(statBarWidth),
			progress.WithoutPercentage(),
		),
		width: defaultWidth,
	}
}

// Name returns the requested name or ID.
func (m *Model) Name() string { return m.name }

// State returns the current load state.
func (m *Model) State() State { return m.state }

// Detail returns the loaded Pokémon. It is the zero value unless State is StateSuccess.
func (m *Model) Detail() pokemon.Detail { return m.detail }

// Err returns the last load error.
func (m *Model) Err() error { return m.err }

// Init starts loading.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	m.state = StateLoading
	m.err = nil
	m.seq++
	seq, ctx, loader, name := m.seq, m.ctx, m.loader, m.name
	fetch := func() tea.Msg {
		d, err := loader.Detail(ctx, name)
		return loadedMsg{seq: seq, detail: d, err: err}
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

// Update handles load results, spinner ticks, resizes and keys.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.state = StateError
			m.err = msg.err
			return m, nil
		}
		m.state = StateSuccess
		m.detail = msg.detail
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg { return BackMsg{} }
		case "r":
			if m.state == StateError {
				return m, m.load()
			}
		}
	}
	return m, nil
}

// View renders the screen for the current state.
func (m *Model) View() string {
	var content string
	switch m.state {
	case StateInitial:
		content = ""
	case StateLoading:
		content = fmt.Sprintf("\n %s Loading %s...\n", m.spinner.View(), pokemon.Capitalize(m.name))
	case StateError:
		content = errorStyle.Render(pokemon.UserMessage(m.err)) + "\n\n" +
			helpStyle.Render("r: Retry | esc: Back")
	case StateSuccess:
		content = m.renderDetail()
	}
	return content
}

func (m *Model) renderDetail() string {
	d := m.detail
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", d.IDFormatted(), d.DisplayName())))
	b.WriteString("\n\n")

	types := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		types = append(types, typeStyle.Render(t.DisplayName()))
	}
	b.WriteString(strings.Join(types, " "))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s    %s %s\n",
		labelStyle.Render("Height:"), d.HeightInMeters(),
		labelStyle.Render("Weight:"), d.WeightInKg())

	if len(d.Abilities) > 0 {
		abilities := make([]string, 0, len(d.Abilities))
		for _, a := range d.Abilities {
			abilities = append(abilities, pokemon.Capitalize(a))
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Abilities:"), strings.Join(abilities, ", "))
	}

	if len(d.Stats) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Base stats"))
		b.WriteString("\n")
		for _, s := range d.Stats {
			fmt.Fprintf(&b, "%-*s %*d %s\n",
				statLabelWidth, s.DisplayName(),
				statValueWidth, s.BaseStat,
				m.bar.ViewAs(s.Percentage()))
		}
	}

	if d.Sprites.FrontDefault != "" {
		fmt.Fprintf(&b, "\n%s %s\n", labelStyle.Render("Sprite:"), d.Sprites.FrontDefault)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc: Back"))

	return boxStyle.Width(max(m.width-2, statBarWidth)).Render(b.String())
}
