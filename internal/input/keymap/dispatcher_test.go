package keymap

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/keybind/internal/command"
	"github.com/dshills/keybind/internal/input/key"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestDispatcher(t *testing.T, entries []Entry) (*Dispatcher, *[]string, *fakeClock) {
	t.Helper()
	table := NewTable()
	if err := table.Replace(entries); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	var ran []string
	handlers := NewHandlerRegistry()
	for _, name := range []string{"save", "save_all", "go", "top", "fail"} {
		handlers.Register(name, func(cmd command.Command) error {
			ran = append(ran, cmd.Name())
			if cmd.Name() == "fail" {
				return errors.New("boom")
			}
			return nil
		})
	}

	clock := &fakeClock{t: time.Unix(0, 0)}
	d := NewDispatcher(table, handlers, WithClock(clock.now), WithSequenceTimeout(time.Second))
	return d, &ran, clock
}

func press(t *testing.T, d *Dispatcher, s string, stack []Context) Result {
	t.Helper()
	return d.Dispatch(key.MustParseKeystroke(s), stack)
}

func TestDispatcher_SingleStroke(t *testing.T) {
	d, ran, _ := newTestDispatcher(t, []Entry{
		entry("ctrl-s", "", "save"),
		entry("ctrl-e", "", "fail"),
		entry("ctrl-u", "", "unregistered"),
		{Shortcut: "ctrl-n", Command: command.NoAction()},
	})

	if res := press(t, d, "ctrl-s", nil); res.Outcome != Handled || res.Err != nil {
		t.Errorf("ctrl-s: %+v", res)
	}
	if res := press(t, d, "ctrl-e", nil); res.Outcome != Handled || res.Err == nil {
		t.Errorf("ctrl-e should report the handler error: %+v", res)
	}
	if res := press(t, d, "ctrl-u", nil); res.Outcome != Unhandled || !errors.Is(res.Err, ErrNoHandler) {
		t.Errorf("ctrl-u: %+v", res)
	}
	if res := press(t, d, "ctrl-n", nil); res.Outcome != Suppressed {
		t.Errorf("ctrl-n: %+v", res)
	}
	if res := press(t, d, "x", nil); res.Outcome != NoMatch {
		t.Errorf("x: %+v", res)
	}

	want := []string{"save", "fail"}
	if len(*ran) != len(want) || (*ran)[0] != want[0] || (*ran)[1] != want[1] {
		t.Errorf("ran = %v, want %v", *ran, want)
	}
}

func TestDispatcher_MultiStroke(t *testing.T) {
	d, ran, _ := newTestDispatcher(t, []Entry{
		entry("ctrl-k ctrl-s", "", "save_all"),
		entry("ctrl-s", "", "save"),
	})

	if res := press(t, d, "ctrl-k", nil); res.Outcome != Pending {
		t.Fatalf("ctrl-k: %+v", res)
	}
	if d.Pending() != "ctrl-k" {
		t.Errorf("Pending = %q", d.Pending())
	}
	res := press(t, d, "ctrl-s", nil)
	if res.Outcome != Handled || res.Command.Name() != "save_all" || res.Sequence != "ctrl-k ctrl-s" {
		t.Errorf("ctrl-k ctrl-s: %+v", res)
	}
	if d.Pending() != "" {
		t.Errorf("Pending = %q after completion", d.Pending())
	}

	press(t, d, "ctrl-k", nil)
	res = press(t, d, "ctrl-s", nil)
	if res.Command.Name() != "save_all" {
		t.Fatalf("unexpected %+v", res)
	}

	// A dead-end sequence retries the last key alone.
	press(t, d, "ctrl-k", nil)
	if res := press(t, d, "x", nil); res.Outcome != NoMatch {
		t.Errorf("ctrl-k x: %+v", res)
	}

	if len(*ran) != 2 {
		t.Errorf("ran = %v", *ran)
	}
}

func TestDispatcher_Timeout(t *testing.T) {
	d, ran, clock := newTestDispatcher(t, []Entry{
		entry("ctrl-k ctrl-s", "", "save_all"),
		entry("ctrl-s", "", "save"),
	})

	press(t, d, "ctrl-k", nil)
	clock.advance(2 * time.Second)
	if !d.Expired() {
		t.Error("expected pending sequence to be expired")
	}

	res := press(t, d, "ctrl-s", nil)
	if res.Command.Name() != "save" {
		t.Errorf("after timeout got %+v, want save", res)
	}
	if len(*ran) != 1 || (*ran)[0] != "save" {
		t.Errorf("ran = %v", *ran)
	}
}

func TestDispatcher_FlushRunsShorterBinding(t *testing.T) {
	d, ran, _ := newTestDispatcher(t, []Entry{
		entry("g", "", "go"),
		entry("g g", "", "top"),
	})

	if res := press(t, d, "g", nil); res.Outcome != Pending {
		t.Fatalf("g: %+v", res)
	}
	res := d.Flush(nil)
	if res.Outcome != Handled || res.Command.Name() != "go" {
		t.Errorf("Flush = %+v", res)
	}
	if res := d.Flush(nil); res.Outcome != NoMatch {
		t.Errorf("second Flush = %+v", res)
	}

	press(t, d, "g", nil)
	press(t, d, "g", nil)
	if got := *ran; len(got) != 2 || got[1] != "top" {
		t.Errorf("ran = %v", got)
	}

	press(t, d, "g", nil)
	d.Reset()
	if d.Pending() != "" {
		t.Error("Reset should clear pending keys")
	}
}

func TestDispatcher_ContextScopedPrefix(t *testing.T) {
	d, _, _ := newTestDispatcher(t, []Entry{
		entry("g g", "Editor", "top"),
		entry("g", "", "go"),
	})

	if res := press(t, d, "g", []Context{NewContext("List")}); res.Outcome != Handled || res.Command.Name() != "go" {
		t.Errorf("outside Editor: %+v", res)
	}
	if res := press(t, d, "g", []Context{NewContext("Editor")}); res.Outcome != Pending {
		t.Errorf("inside Editor: %+v", res)
	}
}

func TestHandlerRegistry(t *testing.T) {
	r := NewHandlerRegistry()
	r.Register("b", func(command.Command) error { return nil })
	r.Register("a", func(command.Command) error { return nil })

	if !r.Has("a") || r.Get("a") == nil {
		t.Error("expected a to be registered")
	}
	if got := r.List(); len(got) != 2 || got[0] != "a" {
		t.Errorf("List = %v", got)
	}
	r.Unregister("a")
	if r.Has("a") || r.Get("a") != nil {
		t.Error("expected a to be removed")
	}
}

func TestOutcome_String(t *testing.T) {
	if Pending.String() != "pending" || Outcome(99).String() != "outcome(99)" {
		t.Error("Outcome.String mismatch")
	}
}
