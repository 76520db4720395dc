package palette

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/keybind/internal/command"
	"github.com/dshills/keybind/internal/input/keymap"
)

type span struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func newTestPalette(t *testing.T) (*Palette, *keymap.Table) {
	t.Helper()

	reg := command.NewRegistry()
	reg.MustRegister("quit", command.Unit())
	reg.MustRegister("save", command.Unit())
	reg.MustRegister("select_all", command.Unit())
	reg.MustRegister("select_range", command.Payload[span]())
	reg.MustRegister("toggle_palette", command.Unit())
	reg.Freeze()

	table := keymap.NewTable()
	err := table.Replace([]keymap.Entry{
		{Shortcut: "ctrl-s", Command: command.New("save", nil)},
		{Shortcut: "ctrl-shift-s", Context: "Editor", Command: command.New("save", nil)},
		{Shortcut: "ctrl-s", Context: "Editor", Command: command.New("save", nil)},
		{Shortcut: "ctrl-q", Command: command.New("quit", nil)},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	return New(reg, table), table
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Item.Name
	}
	return out
}

func TestPalette_Search(t *testing.T) {
	tests := []struct {
		name   string
		recent []string
		query  string
		limit  int
		want   []string
	}{
		{
			name:  "fuzzy",
			query: "sa",
			want:  []string{"save", "select_all", "select_range"},
		},
		{
			name:  "case and space insensitive",
			query: "  SA ",
			want:  []string{"save", "select_all", "select_range"},
		},
		{
			name:   "recent commands get a bonus",
			recent: []string{"select_range"},
			query:  "sa",
			want:   []string{"save", "select_range", "select_all"},
		},
		{
			name:  "no match",
			query: "xyz",
			want:  []string{},
		},
		{
			name:  "empty query lists by name",
			query: "",
			want:  []string{"quit", "save", "select_all", "select_range", "toggle_palette"},
		},
		{
			name:   "empty query lists recent first",
			recent: []string{"save", "toggle_palette"},
			query:  "",
			want:   []string{"toggle_palette", "save", "quit", "select_all", "select_range"},
		},
		{
			name:  "limit",
			query: "",
			limit: 2,
			want:  []string{"quit", "save"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPalette(t)
			for _, name := range tt.recent {
				p.Record(name)
			}
			got := names(p.Search(tt.query, tt.limit))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestPalette_SearchMatches(t *testing.T) {
	p, _ := newTestPalette(t)

	results := p.Search("sa", 1)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if diff := cmp.Diff([]int{0, 1}, results[0].Matches); diff != "" {
		t.Errorf("Matches mismatch (-want +got):\n%s", diff)
	}
	if results[0].Score <= 0 {
		t.Errorf("Score = %d, want > 0", results[0].Score)
	}
}

func TestPalette_Item(t *testing.T) {
	p, table := newTestPalette(t)

	save, ok := p.Item("save")
	if !ok {
		t.Fatal("Item(save) not found")
	}
	if save.Payload != nil {
		t.Errorf("save payload = %v, want nil", save.Payload)
	}
	if diff := cmp.Diff([]string{"ctrl-s", "ctrl-shift-s"}, save.Shortcuts()); diff != "" {
		t.Errorf("Shortcuts mismatch (-want +got):\n%s", diff)
	}

	rng, _ := p.Item("select_range")
	if rng.Payload != reflect.TypeOf(span{}) {
		t.Errorf("select_range payload = %v, want span", rng.Payload)
	}
	if len(rng.Shortcuts()) != 0 {
		t.Errorf("select_range shortcuts = %v, want none", rng.Shortcuts())
	}

	if _, ok := p.Item("frobnicate"); ok {
		t.Error("Item(frobnicate) found")
	}

	table.Clear()
	save, _ = p.Item("save")
	if len(save.Bindings) != 0 {
		t.Errorf("bindings after Clear = %v, want none", save.Bindings)
	}
}

func TestPalette_RecordIgnoresUnknown(t *testing.T) {
	p, _ := newTestPalette(t)

	p.Record("frobnicate")
	p.Record(command.NoActionName)
	if n := p.History().Len(); n != 0 {
		t.Errorf("History().Len() = %d, want 0", n)
	}

	p.Record("quit")
	if diff := cmp.Diff([]string{"quit"}, p.History().Recent(0)); diff != "" {
		t.Errorf("Recent mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(2)

	h.Add("a")
	h.Add("b")
	h.Add("a")
	if diff := cmp.Diff([]string{"a", "b"}, h.Recent(0)); diff != "" {
		t.Errorf("Recent mismatch (-want +got):\n%s", diff)
	}

	h.Add("c")
	if diff := cmp.Diff([]string{"c", "a"}, h.Recent(0)); diff != "" {
		t.Errorf("Recent after overflow mismatch (-want +got):\n%s", diff)
	}
	if got := h.Recent(1); !cmp.Equal(got, []string{"c"}) {
		t.Errorf("Recent(1) = %v, want [c]", got)
	}
	if got := h.Position("a"); got != 1 {
		t.Errorf("Position(a) = %d, want 1", got)
	}
	if got := h.Position("b"); got != -1 {
		t.Errorf("Position(b) = %d, want -1", got)
	}

	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", h.Len())
	}
}

func TestNewHistory_DefaultSize(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < DefaultHistorySize+5; i++ {
		h.Add(string(rune('a'+i%26)) + string(rune('0'+i/26)))
	}
	if h.Len() != DefaultHistorySize {
		t.Errorf("Len = %d, want %d", h.Len(), DefaultHistorySize)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		query, text string
		want        []int
	}{
		{"sa", "save", []int{0, 1}},
		{"as", "save", nil},
		{"sr", "select_range", []int{0, 7}},
		{"x", "", nil},
	}
	for _, tt := range tests {
		score, got := match([]rune(tt.query), tt.text)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("match(%q, %q) mismatch (-want +got):\n%s", tt.query, tt.text, diff)
		}
		if (score > 0) != (tt.want != nil) {
			t.Errorf("match(%q, %q) score = %d", tt.query, tt.text, score)
		}
	}
}

func TestIsBoundary(t *testing.T) {
	tests := []struct {
		text string
		idx  int
		want bool
	}{
		{"select_all", 0, true},
		{"select_all", 7, true},
		{"select_all", 3, false},
		{"togglePalette", 6, true},
		{"move cursor", 5, true},
		{"abc", 9, false},
	}
	for _, tt := range tests {
		if got := isBoundary([]rune(tt.text), tt.idx); got != tt.want {
			t.Errorf("isBoundary(%q, %d) = %v, want %v", tt.text, tt.idx, got, tt.want)
		}
	}
}
