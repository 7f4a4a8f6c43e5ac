package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T, lines, height int) Pager {
	t.Helper()
	var b strings.Builder
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	m, _ := NewPager("item 1", b.String()).Update(tea.WindowSizeMsg{Width: 40, Height: height})
	return m.(Pager)
}

func TestPagerQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(k.String(), func(t *testing.T) {
			_, cmd := sized(t, 3, 10).Update(k)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestPagerScrolling(t *testing.T) {
	m := sized(t, 50, 11)
	assert.Equal(t, 10, m.viewport.Height, "one row is kept for the status bar")
	assert.True(t, m.viewport.AtTop())

	next, _ := m.Update(runeKey("G"))
	m = next.(Pager)
	assert.True(t, m.viewport.AtBottom())

	next, _ = m.Update(runeKey("g"))
	m = next.(Pager)
	assert.True(t, m.viewport.AtTop())

	next, _ = m.Update(runeKey("j"))
	m = next.(Pager)
	assert.Equal(t, 1, m.viewport.YOffset)
}

func TestPagerResize(t *testing.T) {
	m := sized(t, 5, 10)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Pager)
	assert.Equal(t, 100, m.viewport.Width)
	assert.Equal(t, 29, m.viewport.Height)
}

func TestPagerView(t *testing.T) {
	assert.Empty(t, NewPager("t", "x").View(), "nothing to draw before the first size")

	view := sized(t, 3, 10).View()
	assert.Contains(t, view, "line 0")
	assert.Contains(t, view, "item 1")
	assert.Contains(t, view, "q quit")
}
