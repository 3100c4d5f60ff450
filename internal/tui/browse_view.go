package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/pokedex/internal/browser"
	"github.com/rshade/pokedex/internal/pokemon"
)

// renderPokemon formats one list row, e.g. "#001 Bulbasaur".
func renderPokemon(p pokemon.Pokemon, selected bool) string {
	row := fmt.Sprintf("%s %s", p.IDFormatted(), p.DisplayName())
	if selected {
		return SelectedStyle.Render("> " + row)
	}
	return "  " + row
}

// View renders the detail screen when one is open, otherwise the list.
func (m *BrowseModel) View() string {
	if m.quitting {
		return ""
	}
	if m.detail != nil {
		return m.detail.View()
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Pokédex"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	if status := m.statusLine(); status != "" {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(status))
	}
	if m.warning != "" {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(m.warning))
	}
	b.WriteString("\n")
	b.WriteString(RenderBrowseHelp(m.searching))
	return b.String()
}

func (m *BrowseModel) renderBody() string {
	switch s := m.state.(type) {
	case browser.StateLoading:
		return RenderLoading(m.loading)
	case browser.StateError:
		return CriticalStyle.Render(s.Message) + "\n" + SubtleStyle.Render("Press r to retry")
	case browser.StateSuccess:
		if len(s.Items) == 0 {
			if s.Query != "" {
				return SubtleStyle.Render(fmt.Sprintf("No Pokémon match %q", s.Query))
			}
			return SubtleStyle.Render("No Pokémon found")
		}
		return m.list.View()
	default:
		return ""
	}
}

// statusLine summarizes the loaded list, e.g. "1,025 Pokémon loaded, scroll for more".
func (m *BrowseModel) statusLine() string {
	s, ok := m.state.(browser.StateSuccess)
	if !ok {
		return ""
	}

	var line string
	if s.Query != "" {
		line = m.printer.Sprintf("%d results for %q", len(s.Items), s.Query)
	} else {
		line = m.printer.Sprintf("%d Pokémon loaded", len(s.Items))
	}

	switch {
	case s.IsLoadingMore:
		line += ", loading more..."
	case s.HasMore:
		line += ", scroll for more"
	}
	return line
}

// RenderBrowseHelp renders the keyboard shortcuts for the list screen.
func RenderBrowseHelp(searching bool) string {
	shortcuts := []string{
		"↑/↓: Navigate",
		"/: Search",
		"Enter: Details",
		"r: Refresh",
		"q: Quit",
	}
	if searching {
		shortcuts = []string{
			"Enter: Search now",
			"Esc: Done",
		}
	}
	return SubtleStyle.Render(strings.Join(shortcuts, " | "))
}

// RenderPlainList writes one "#001 Bulbasaur" line per entry.
func RenderPlainList(items []pokemon.Pokemon) string {
	var b strings.Builder
	for _, p := range items {
		fmt.Fprintf(&b, "%s %s\n", p.IDFormatted(), p.DisplayName())
	}
	return b.String()
}
