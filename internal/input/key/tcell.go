package key

import "github.com/gdamore/tcell/v2"

// FromTcell converts a tcell key event into a keystroke.
// It returns false for events that have no keystroke equivalent.
func FromTcell(ev *tcell.EventKey) (Keystroke, bool) {
	return fromTcell(ev.Key(), ev.Rune(), ev.Modifiers())
}

func fromTcell(k tcell.Key, r rune, m tcell.ModMask) (Keystroke, bool) {
	mods := convertTcellMod(m)

	switch k {
	case tcell.KeyRune:
		return NewRune(r, mods), true
	case tcell.KeyEnter:
		return NewSpecial(KeyEnter, mods), true
	case tcell.KeyTab:
		return NewSpecial(KeyTab, mods), true
	case tcell.KeyBacktab:
		return NewSpecial(KeyTab, mods.With(ModShift)), true
	case tcell.KeyEscape:
		return NewSpecial(KeyEscape, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return NewSpecial(KeyBackspace, mods), true
	case tcell.KeyDelete:
		return NewSpecial(KeyDelete, mods), true
	case tcell.KeyInsert:
		return NewSpecial(KeyInsert, mods), true
	case tcell.KeyHome:
		return NewSpecial(KeyHome, mods), true
	case tcell.KeyEnd:
		return NewSpecial(KeyEnd, mods), true
	case tcell.KeyPgUp:
		return NewSpecial(KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return NewSpecial(KeyPageDown, mods), true
	case tcell.KeyUp:
		return NewSpecial(KeyUp, mods), true
	case tcell.KeyDown:
		return NewSpecial(KeyDown, mods), true
	case tcell.KeyLeft:
		return NewSpecial(KeyLeft, mods), true
	case tcell.KeyRight:
		return NewSpecial(KeyRight, mods), true
	case tcell.KeyCtrlSpace:
		return NewSpecial(KeySpace, mods.With(ModCtrl)), true
	}

	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return NewSpecial(KeyF1+Key(k-tcell.KeyF1), mods), true
	}

	// Control characters arrive as their own key codes.
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return NewRune('a'+rune(k-tcell.KeyCtrlA), mods.With(ModCtrl)), true
	}

	return Keystroke{}, false
}

func convertTcellMod(m tcell.ModMask) Modifier {
	var mod Modifier
	if m&tcell.ModShift != 0 {
		mod = mod.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mod = mod.With(ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mod = mod.With(ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mod = mod.With(ModMeta)
	}
	return mod
}
