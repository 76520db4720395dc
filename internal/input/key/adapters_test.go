package key

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
)

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want string
	}{
		{"rune", tcell.KeyRune, 'q', tcell.ModNone, "q"},
		{"uppercase rune", tcell.KeyRune, 'Q', tcell.ModNone, "shift-q"},
		{"space rune", tcell.KeyRune, ' ', tcell.ModNone, "space"},
		{"alt rune", tcell.KeyRune, 'x', tcell.ModAlt, "alt-x"},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, "enter"},
		{"backtab", tcell.KeyBacktab, 0, tcell.ModNone, "shift-tab"},
		{"backspace2", tcell.KeyBackspace2, 0, tcell.ModNone, "backspace"},
		{"ctrl arrow", tcell.KeyUp, 0, tcell.ModCtrl, "ctrl-up"},
		{"function", tcell.KeyF5, 0, tcell.ModNone, "f5"},
		{"control char", tcell.KeyCtrlS, 0, tcell.ModCtrl, "ctrl-s"},
		{"ctrl space", tcell.KeyCtrlSpace, 0, tcell.ModCtrl, "ctrl-space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fromTcell(tt.key, tt.r, tt.mod)
			if !ok {
				t.Fatal("expected conversion")
			}
			if got.String() != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, ok := fromTcell(tcell.KeyF30, 0, tcell.ModNone); ok {
		t.Error("expected unsupported key to fail")
	}
}

func TestFromTea(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "q"},
		{"uppercase", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}, "shift-g"},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true}, "alt-b"},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space"},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "enter"},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, "tab"},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, "shift-tab"},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, "escape"},
		{"ctrl-c", tea.KeyMsg{Type: tea.KeyCtrlC}, "ctrl-c"},
		{"ctrl-h", tea.KeyMsg{Type: tea.KeyCtrlH}, "ctrl-h"},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, "backspace"},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, "pagedown"},
		{"f12", tea.KeyMsg{Type: tea.KeyF12}, "f12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromTea(tt.msg)
			if !ok {
				t.Fatal("expected conversion")
			}
			if got.String() != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	paste := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello"), Paste: true}
	if _, ok := FromTea(paste); ok {
		t.Error("expected paste to be rejected")
	}
}
