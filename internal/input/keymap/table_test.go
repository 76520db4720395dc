package keymap

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/dshills/keybind/internal/command"
	"github.com/dshills/keybind/internal/input/key"
)

func entry(shortcut, context, name string) Entry {
	return Entry{Shortcut: shortcut, Context: context, Command: command.New(name, nil)}
}

func mustSeq(t *testing.T, s string) *key.Sequence {
	t.Helper()
	seq, err := key.ParseSequence(s)
	if err != nil {
		t.Fatalf("ParseSequence(%q): %v", s, err)
	}
	return seq
}

func TestTable_Replace(t *testing.T) {
	table := NewTable()
	if table.Len() != 0 || table.Generation() != 0 {
		t.Fatalf("new table: Len=%d Generation=%d", table.Len(), table.Generation())
	}

	entries := []Entry{
		entry("ctrl-s", "", "save"),
		entry("ctrl-q", "Editor", "quit"),
	}
	if err := table.Replace(entries); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if table.Len() != 2 || table.Generation() != 1 {
		t.Errorf("Len=%d Generation=%d, want 2 and 1", table.Len(), table.Generation())
	}
	if diff := cmp.Diff(entries, table.Entries()); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}

	table.Clear()
	if table.Len() != 0 || table.Generation() != 2 {
		t.Errorf("after Clear: Len=%d Generation=%d", table.Len(), table.Generation())
	}
}

func TestTable_ReplaceRejectsInvalidEntries(t *testing.T) {
	table := NewTable()
	err := table.Replace([]Entry{
		entry("ctrl-s", "", "save"),
		entry("hyper-x", "", "bad_shortcut"),
		entry("ctrl-q", "Editor &&", "bad_context"),
		entry("ctrl-w", "Editor", "close"),
	})

	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), err)
	}
	if !errors.Is(errs[0], ErrInvalidShortcut) {
		t.Errorf("errs[0] = %v, want ErrInvalidShortcut", errs[0])
	}
	if !errors.Is(errs[1], ErrInvalidContext) {
		t.Errorf("errs[1] = %v, want ErrInvalidContext", errs[1])
	}
	var ce *CompileError
	if !errors.As(errs[1], &ce) || ce.Entry.Command.Name() != "bad_context" {
		t.Errorf("expected *CompileError for bad_context, got %v", errs[1])
	}

	if table.Len() != 2 {
		t.Errorf("Len = %d, want the 2 valid entries", table.Len())
	}
}

func TestTable_Match(t *testing.T) {
	table := NewTable()
	err := table.Replace([]Entry{
		entry("ctrl-s", "", "save"),
		entry("ctrl-s", "Editor", "editor_save"),
		entry("ctrl-s", "Workspace", "workspace_save"),
		entry("ctrl-w", "", "close_a"),
		entry("ctrl-w", "", "close_b"),
		entry("ctrl-x", "Terminal", "terminal_only"),
		entry("ctrl-z", "Editor", "undo"),
		entry("ctrl-z", "Workspace > Editor", "scoped_undo"),
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	stack := []Context{NewContext("Workspace"), NewContext("Editor")}

	tests := []struct {
		name      string
		shortcut  string
		stack     []Context
		want      string
		wantDepth int
		wantOK    bool
	}{
		{"deepest context wins", "ctrl-s", stack, "editor_save", 1, true},
		{"outer context when inner missing", "ctrl-s", stack[:1], "workspace_save", 0, true},
		{"global fallback", "ctrl-s", []Context{NewContext("List")}, "save", -1, true},
		{"global with empty stack", "ctrl-s", nil, "save", -1, true},
		{"later entry wins tie", "ctrl-w", stack, "close_b", -1, true},
		{"context filters out", "ctrl-x", stack, "", 0, false},
		{"unbound", "ctrl-y", stack, "", 0, false},
		{"equal depth later wins", "ctrl-z", stack, "scoped_undo", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := table.Match(mustSeq(t, tt.shortcut), tt.stack)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if m.Entry.Command.Name() != tt.want || m.Depth != tt.wantDepth {
				t.Errorf("got %s at depth %d, want %s at depth %d", m.Entry.Command.Name(), m.Depth, tt.want, tt.wantDepth)
			}
		})
	}
}

func TestTable_NoActionSuppresses(t *testing.T) {
	table := NewTable()
	err := table.Replace([]Entry{
		entry("ctrl-p", "", "palette"),
		{Shortcut: "ctrl-p", Context: "Terminal", Command: command.NoAction()},
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	m, ok := table.Lookup("ctrl-p", []Context{NewContext("Terminal")})
	if !ok || !m.Entry.Command.IsNoAction() {
		t.Errorf("expected no-op in Terminal, got %v", m.Entry)
	}
	m, ok = table.Lookup("ctrl-p", []Context{NewContext("Editor")})
	if !ok || m.Entry.Command.Name() != "palette" {
		t.Errorf("expected palette elsewhere, got %v", m.Entry)
	}
}

func TestTable_HasPrefix(t *testing.T) {
	table := NewTable()
	err := table.Replace([]Entry{
		entry("ctrl-k ctrl-s", "", "save_all"),
		entry("g g", "Editor", "top"),
		entry("g", "", "go"),
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	editor := []Context{NewContext("Editor")}

	if !table.HasPrefix(mustSeq(t, "ctrl-k"), nil) {
		t.Error("ctrl-k should be a pending prefix")
	}
	if table.HasPrefix(mustSeq(t, "ctrl-k ctrl-s"), nil) {
		t.Error("a complete sequence is not a prefix of a longer one")
	}
	if !table.HasPrefix(mustSeq(t, "g"), editor) {
		t.Error("g should be a prefix in Editor")
	}
	if table.HasPrefix(mustSeq(t, "g"), []Context{NewContext("List")}) {
		t.Error("g g is scoped to Editor")
	}
	if table.HasPrefix(mustSeq(t, "x"), nil) {
		t.Error("x is unbound")
	}
}

func TestTable_BindingsFor(t *testing.T) {
	table := NewTable()
	_ = table.Replace([]Entry{
		entry("ctrl-s", "", "save"),
		entry("cmd-s", "", "save"),
		entry("ctrl-q", "", "quit"),
	})

	got := table.BindingsFor("save")
	if len(got) != 2 || got[0].Shortcut != "ctrl-s" || got[1].Shortcut != "cmd-s" {
		t.Errorf("BindingsFor(save) = %v", got)
	}
	if got := table.BindingsFor("missing"); len(got) != 0 {
		t.Errorf("BindingsFor(missing) = %v", got)
	}
}

func TestTable_ConcurrentReaders(t *testing.T) {
	table := NewTable()
	setA := []Entry{entry("a", "", "one"), entry("b", "", "one")}
	setB := []Entry{entry("a", "", "two"), entry("b", "", "two")}
	_ = table.Replace(setA)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				_ = table.Replace(setB)
			} else {
				_ = table.Replace(setA)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			entries := table.Entries()
			if entries[0].Command.Name() != entries[1].Command.Name() {
				t.Errorf("observed a mixed set: %v", entries)
				return
			}
		}
	}()
	wg.Wait()

	if table.Generation() != 201 {
		t.Errorf("Generation = %d, want 201", table.Generation())
	}
}
