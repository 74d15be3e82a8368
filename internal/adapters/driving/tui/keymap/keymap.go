// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// PrevPage turns to the previous document page.
	PrevPage key.Binding

	// NextPage turns to the next document page.
	NextPage key.Binding

	// FirstPage jumps to the first page.
	FirstPage key.Binding

	// LastPage jumps to the last page.
	LastPage key.Binding

	// ZoomIn increases the viewer zoom.
	ZoomIn key.Binding

	// ZoomOut decreases the viewer zoom.
	ZoomOut key.Binding

	// ResetZoom restores the default zoom.
	ResetZoom key.Binding

	// RotateRight turns the page clockwise.
	RotateRight key.Binding

	// RotateLeft turns the page counter-clockwise.
	RotateLeft key.Binding

	// Fullscreen toggles fullscreen reading.
	Fullscreen key.Binding

	// MarkPage marks the visible page as completed.
	MarkPage key.Binding

	// MarkDone marks the whole material as completed.
	MarkDone key.Binding

	// Enroll enrolls in the selected material.
	Enroll key.Binding

	// Filter cycles the department filter.
	Filter key.Binding

	// Tab cycles admin console sections.
	Tab key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "pgup"),
			key.WithHelp("←/PgUp", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "pgdown", " "),
			key.WithHelp("→/PgDn/Space", "next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("End", "last page"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		ResetZoom: key.NewBinding(
			key.WithKeys("ctrl+0", "0"),
			key.WithHelp("0", "reset zoom"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rotate right"),
		),
		RotateLeft: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rotate left"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		MarkPage: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark page done"),
		),
		MarkDone: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "mark material done"),
		),
		Enroll: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "enroll"),
		),
		Filter: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "filter department"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ViewerHelp returns keybindings for the document viewer.
func (k *KeyMap) ViewerHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.ZoomIn, k.Fullscreen, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.ZoomIn, k.ZoomOut, k.ResetZoom, k.RotateRight, k.RotateLeft},
		{k.MarkPage, k.MarkDone, k.Fullscreen},
		{k.Help, k.Back, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
