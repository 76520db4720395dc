package key

import tea "github.com/charmbracelet/bubbletea"

// FromTea converts a bubbletea key message into a keystroke.
// Pastes and unknown key types return false.
func FromTea(msg tea.KeyMsg) (Keystroke, bool) {
	var mods Modifier
	if msg.Alt {
		mods = mods.With(ModAlt)
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste || len(msg.Runes) != 1 {
			return Keystroke{}, false
		}
		return NewRune(msg.Runes[0], mods), true
	case tea.KeySpace:
		return NewSpecial(KeySpace, mods), true
	case tea.KeyEnter:
		return NewSpecial(KeyEnter, mods), true
	case tea.KeyTab:
		return NewSpecial(KeyTab, mods), true
	case tea.KeyShiftTab:
		return NewSpecial(KeyTab, mods.With(ModShift)), true
	case tea.KeyEsc:
		return NewSpecial(KeyEscape, mods), true
	case tea.KeyBackspace:
		return NewSpecial(KeyBackspace, mods), true
	case tea.KeyDelete:
		return NewSpecial(KeyDelete, mods), true
	case tea.KeyInsert:
		return NewSpecial(KeyInsert, mods), true
	case tea.KeyHome:
		return NewSpecial(KeyHome, mods), true
	case tea.KeyEnd:
		return NewSpecial(KeyEnd, mods), true
	case tea.KeyPgUp:
		return NewSpecial(KeyPageUp, mods), true
	case tea.KeyPgDown:
		return NewSpecial(KeyPageDown, mods), true
	case tea.KeyUp:
		return NewSpecial(KeyUp, mods), true
	case tea.KeyDown:
		return NewSpecial(KeyDown, mods), true
	case tea.KeyLeft:
		return NewSpecial(KeyLeft, mods), true
	case tea.KeyRight:
		return NewSpecial(KeyRight, mods), true
	case tea.KeyCtrlAt:
		return NewSpecial(KeySpace, mods.With(ModCtrl)), true
	case tea.KeyF1:
		return NewSpecial(KeyF1, mods), true
	case tea.KeyF2:
		return NewSpecial(KeyF2, mods), true
	case tea.KeyF3:
		return NewSpecial(KeyF3, mods), true
	case tea.KeyF4:
		return NewSpecial(KeyF4, mods), true
	case tea.KeyF5:
		return NewSpecial(KeyF5, mods), true
	case tea.KeyF6:
		return NewSpecial(KeyF6, mods), true
	case tea.KeyF7:
		return NewSpecial(KeyF7, mods), true
	case tea.KeyF8:
		return NewSpecial(KeyF8, mods), true
	case tea.KeyF9:
		return NewSpecial(KeyF9, mods), true
	case tea.KeyF10:
		return NewSpecial(KeyF10, mods), true
	case tea.KeyF11:
		return NewSpecial(KeyF11, mods), true
	case tea.KeyF12:
		return NewSpecial(KeyF12, mods), true
	}

	// Tab and Enter share codes with ctrl-i and ctrl-m and were handled above.
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return NewRune('a'+rune(msg.Type-tea.KeyCtrlA), mods.With(ModCtrl)), true
	}

	return Keystroke{}, false
}
