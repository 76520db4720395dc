// Package keymapfile loads keymap files into a binding table.
//
// A keymap file is a JSON array of blocks. Comments and trailing commas are
// allowed:
//
//	[
//	  // Global bindings.
//	  {
//	    "bindings": {
//	      "ctrl-q": "quit",
//	      "cmd-a": ["select_range", {"from": 0, "to": 5}],
//	    }
//	  },
//	  {
//	    "context": "Editor && mode == full",
//	    "bindings": {
//	      "escape": null
//	    }
//	  }
//	]
//
// Each binding maps a shortcut to an action descriptor: a command name, a
// [name, payload] pair, or null for the explicit no-op. Descriptors are
// resolved against a command.Registry.
//
// Loading is all-or-nothing only for structure. Syntax errors and blocks of
// the wrong shape fail the whole load and leave the table untouched. A
// descriptor that cannot be resolved is logged, reported and skipped; the
// rest of the file still loads.
package keymapfile
