// Package keys contains keybinding definitions.
package keys

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
)

// GridKeyMap defines the keybindings of the grid screen.
type GridKeyMap struct {
	// Selection
	Copy  key.Binding
	Clear key.Binding

	// Table
	Filter  key.Binding
	Columns key.Binding
	Sort    key.Binding
	Reload  key.Binding
	Export  key.Binding

	// Scrolling
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultGridKeyMap returns the default grid keybindings. The copy chord
// includes alt+c because terminals deliver the Cmd key as a meta modifier.
func DefaultGridKeyMap() GridKeyMap {
	return GridKeyMap{
		Copy: key.NewBinding(
			key.WithKeys("ctrl+c", "alt+c"),
			key.WithHelp("ctrl+c", "copy selection"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear selection"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter rows"),
		),
		Columns: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle columns"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by column"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload data"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k GridKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Filter, k.Columns, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k GridKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Copy, k.Clear},
		{k.Filter, k.Columns, k.Sort, k.Reload, k.Export},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}

// EditorKeyMap defines the keybindings of the inline cell editor.
type EditorKeyMap struct {
	Commit    key.Binding
	Cancel    key.Binding
	SelectAll key.Binding
	Copy      key.Binding
}

// DefaultEditorKeyMap returns the default editor keybindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "discard"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select text"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+c", "alt+c"),
			key.WithHelp("ctrl+c", "copy text"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Cancel, k.SelectAll, k.Copy}
}

// FullHelp returns keybindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// InputKeyMap defines the keybindings of single-line prompts such as the
// filter bar.
type InputKeyMap struct {
	Apply  key.Binding
	Cancel key.Binding
}

// DefaultInputKeyMap returns the default prompt keybindings.
func DefaultInputKeyMap() InputKeyMap {
	return InputKeyMap{
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// PickerKeyMap defines the keybindings of list popovers.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Close  key.Binding
}

// DefaultPickerKeyMap returns the default popover keybindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "x"),
			key.WithHelp("space", "toggle"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "v", "q"),
			key.WithHelp("esc", "close"),
		),
	}
}

// Apply replaces grid bindings by action name. Known actions are copy,
// clear, filter, columns, sort, reload, export, help and quit.
func (k *GridKeyMap) Apply(overrides map[string][]string) error {
	targets := map[string]*key.Binding{
		"copy":    &k.Copy,
		"clear":   &k.Clear,
		"filter":  &k.Filter,
		"columns": &k.Columns,
		"sort":    &k.Sort,
		"reload":  &k.Reload,
		"export":  &k.Export,
		"help":    &k.Help,
		"quit":    &k.Quit,
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		keys := overrides[name]
		b, ok := targets[name]
		if !ok {
			return fmt.Errorf("unknown key action %q", name)
		}
		if len(keys) == 0 {
			return fmt.Errorf("key action %q: at least one key required", name)
		}
		b.SetKeys(keys...)
		b.SetHelp(keys[0], b.Help().Desc)
	}
	return nil
}
