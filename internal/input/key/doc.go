// Package key provides the keystroke model used by keymap shortcuts.
//
// A shortcut is one or more whitespace-separated keystrokes. Each keystroke
// is zero or more hyphen-separated modifiers followed by a key:
//
//   - Modifiers: ctrl, alt (or option), shift, cmd (or super, win, meta), fn
//   - Named keys: escape, enter, tab, backspace, delete, insert, home, end,
//     pageup, pagedown, up, down, left, right, space, f1 through f12
//   - Any other single character, e.g. "a", "/", "-"
//
// Examples: "ctrl-s", "cmd-shift-p", "ctrl-k ctrl-s", "ctrl--".
//
// An uppercase letter implies shift, so "A" and "shift-a" are the same
// keystroke. Keystroke.String returns the canonical form, which parses back
// to an equal keystroke.
//
// FromTcell and FromTea convert terminal key events into keystrokes so they
// can be matched against parsed shortcuts.
package key
