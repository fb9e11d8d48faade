package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestGrid_CopyChords(t *testing.T) {
	km := DefaultGridKeyMap()
	require.Equal(t, []string{"ctrl+c", "alt+c"}, km.Copy.Keys())

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Copy))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c"), Alt: true}, km.Copy))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}, km.Copy))
}

func TestGrid_KeyAssignments(t *testing.T) {
	km := DefaultGridKeyMap()
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Clear uses esc", km.Clear, []string{"esc"}},
		{"Filter uses slash", km.Filter, []string{"/"}},
		{"Columns uses v", km.Columns, []string{"v"}},
		{"Sort uses s", km.Sort, []string{"s"}},
		{"Help uses ?", km.Help, []string{"?"}},
		{"Quit uses q and ctrl+c", km.Quit, []string{"q", "ctrl+c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestGrid_HelpGroups(t *testing.T) {
	km := DefaultGridKeyMap()
	require.Len(t, km.ShortHelp(), 5)
	require.Len(t, km.FullHelp(), 4)
}

func TestEditor_KeyAssignments(t *testing.T) {
	km := DefaultEditorKeyMap()
	require.Equal(t, []string{"enter"}, km.Commit.Keys())
	require.Equal(t, []string{"esc"}, km.Cancel.Keys())
	require.Equal(t, []string{"ctrl+a"}, km.SelectAll.Keys())
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlA}, km.SelectAll))
}

func TestGrid_Apply(t *testing.T) {
	km := DefaultGridKeyMap()
	err := km.Apply(map[string][]string{
		"copy":   {"y", "ctrl+c"},
		"filter": {"f"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"y", "ctrl+c"}, km.Copy.Keys())
	require.Equal(t, "y", km.Copy.Help().Key)
	require.Equal(t, "copy selection", km.Copy.Help().Desc)
	require.Equal(t, []string{"f"}, km.Filter.Keys())
}

func TestGrid_ApplyErrors(t *testing.T) {
	km := DefaultGridKeyMap()
	require.ErrorContains(t, km.Apply(map[string][]string{"launch": {"x"}}), "unknown key action")
	require.ErrorContains(t, km.Apply(map[string][]string{"copy": {}}), "at least one key")
}
