package listview_test

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listview "github.com/rshade/pokedex/internal/tui/list"
)

func renderInt(item int, selected bool) string {
	if selected {
		return fmt.Sprintf("> %d", item)
	}
	return fmt.Sprintf("  %d", item)
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func press(m *listview.VirtualListModel[int], k tea.KeyMsg) {
	_, _ = m.Update(k)
}

func TestVirtualList_Navigation(t *testing.T) {
	m := listview.NewVirtualListModel(seq(50), 10, 80, renderInt)

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 11, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 49, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 49, m.Selected(), "cursor stays on the last row")

	press(m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Selected())
}

func TestVirtualList_VisibleRangeFollowsCursor(t *testing.T) {
	m := listview.NewVirtualListModel(seq(100), 10, 80, renderInt)
	assert.Equal(t, 0, m.VisibleFrom())
	assert.Equal(t, 10, m.VisibleTo())

	m.SetSelected(50)
	assert.Equal(t, 45, m.VisibleFrom())
	assert.Equal(t, 55, m.VisibleTo())

	m.SetSelected(99)
	assert.Equal(t, 90, m.VisibleFrom())
	assert.Equal(t, 100, m.VisibleTo())
}

func TestVirtualList_ShortListFitsViewport(t *testing.T) {
	m := listview.NewVirtualListModel(seq(3), 10, 80, renderInt)
	assert.Equal(t, 0, m.VisibleFrom())
	assert.Equal(t, 3, m.VisibleTo())
	assert.Equal(t, "> 0\n  1\n  2", m.View())
}

func TestVirtualList_SetItemsKeepsCursor(t *testing.T) {
	m := listview.NewVirtualListModel(seq(20), 5, 80, renderInt)
	m.SetSelected(15)

	m.SetItems(seq(40))
	assert.Equal(t, 15, m.Selected())
	assert.Equal(t, 40, m.ItemCount())

	m.SetItems(seq(4))
	assert.Equal(t, 3, m.Selected(), "cursor clamps when the list shrinks")

	m.SetItems(nil)
	assert.Equal(t, 0, m.Selected())
	assert.Nil(t, m.GetSelectedItem())
	assert.Empty(t, m.View())
}

func TestVirtualList_NearEnd(t *testing.T) {
	m := listview.NewVirtualListModel(seq(20), 5, 80, renderInt)
	assert.False(t, m.NearEnd(5))

	m.SetSelected(13)
	assert.False(t, m.NearEnd(5))

	m.SetSelected(14)
	assert.True(t, m.NearEnd(5))

	empty := listview.NewVirtualListModel([]int{}, 5, 80, renderInt)
	assert.False(t, empty.NearEnd(5))
}

func TestVirtualList_WindowResize(t *testing.T) {
	m := listview.NewVirtualListModel(seq(100), 10, 80, renderInt)
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 4})
	assert.Nil(t, cmd)
	assert.Equal(t, 4, m.Height())
	assert.Equal(t, 120, m.Width())
	assert.Equal(t, 4, m.VisibleTo()-m.VisibleFrom())
}

func TestVirtualList_GetSelectedItem(t *testing.T) {
	m := listview.NewVirtualListModel([]int{7, 8, 9}, 5, 80, renderInt)
	m.SetSelected(2)
	item := m.GetSelectedItem()
	require.NotNil(t, item)
	assert.Equal(t, 9, *item)
}
