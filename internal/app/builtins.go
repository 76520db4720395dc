package app

import (
	"github.com/dshills/keybind/internal/command"
)

// Built-in command names.
const (
	CmdQuit          = "quit"
	CmdSave          = "save"
	CmdUndo          = "undo"
	CmdRedo          = "redo"
	CmdCopy          = "copy"
	CmdPaste         = "paste"
	CmdSelectAll     = "select_all"
	CmdSelectRange   = "select_range"
	CmdMoveCursor    = "move_cursor"
	CmdInsert        = "insert"
	CmdFocus         = "focus"
	CmdTogglePalette = "toggle_palette"
)

// SelectRange is the payload of select_range.
type SelectRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MoveCursor is the payload of move_cursor.
type MoveCursor struct {
	Direction string `json:"direction"`
	Count     int    `json:"count,omitempty"`
}

// Focus is the payload of focus.
type Focus struct {
	Pane string `json:"pane"`
}

// RegisterBuiltins registers the demo command set.
func RegisterBuiltins(r *command.Registry) error {
	kinds := []struct {
		name string
		kind command.Kind
	}{
		{CmdQuit, command.Unit()},
		{CmdSave, command.Unit()},
		{CmdUndo, command.Unit()},
		{CmdRedo, command.Unit()},
		{CmdCopy, command.Unit()},
		{CmdPaste, command.Unit()},
		{CmdSelectAll, command.Unit()},
		{CmdSelectRange, command.Payload[SelectRange]()},
		{CmdMoveCursor, command.Payload[MoveCursor]()},
		{CmdInsert, command.Payload[string]()},
		{CmdFocus, command.OptionalPayload[Focus]()},
		{CmdTogglePalette, command.Unit()},
	}
	for _, k := range kinds {
		if err := r.Register(k.name, k.kind); err != nil {
			return err
		}
	}
	return nil
}
