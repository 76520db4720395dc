package palette

import (
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/dshills/keybind/internal/command"
	"github.com/dshills/keybind/internal/input/keymap"
)

// historyBonus is split by recency: the most recent command gets all of
// it, the next half, and so on.
const historyBonus = 40

// Item is a bindable command and the entries currently bound to it.
type Item struct {
	Name string

	// Payload is the payload type, nil for commands that take none.
	Payload reflect.Type

	Bindings []keymap.Entry
}

// Shortcuts returns the distinct shortcuts bound to the command in table
// order.
func (it Item) Shortcuts() []string {
	out := make([]string, 0, len(it.Bindings))
	for _, e := range it.Bindings {
		if !slices.Contains(out, e.Shortcut) {
			out = append(out, e.Shortcut)
		}
	}
	return out
}

// Result is one search hit.
type Result struct {
	Item  Item
	Score int

	// Matches holds the rune offsets of Item.Name that matched the query.
	Matches []int
}

// Palette searches the commands of a registry.
type Palette struct {
	registry *command.Registry
	table    *keymap.Table
	history  *History
}

// New creates a palette over registry. Bindings are read from table on
// every call, so reloads show up without rebuilding the palette.
func New(registry *command.Registry, table *keymap.Table) *Palette {
	return &Palette{
		registry: registry,
		table:    table,
		history:  NewHistory(DefaultHistorySize),
	}
}

// History returns the recently-run list.
func (p *Palette) History() *History { return p.history }

// Record notes that the named command ran.
func (p *Palette) Record(name string) {
	if _, ok := p.registry.Lookup(name); ok {
		p.history.Add(name)
	}
}

// Item returns the palette item for a registered command.
func (p *Palette) Item(name string) (Item, bool) {
	kind, ok := p.registry.Lookup(name)
	if !ok {
		return Item{}, false
	}
	return Item{
		Name:     name,
		Payload:  kind.PayloadType(),
		Bindings: p.table.BindingsFor(name),
	}, true
}

// Items returns every registered command sorted by name.
func (p *Palette) Items() []Item {
	names := p.registry.Names()
	items := make([]Item, 0, len(names))
	for _, name := range names {
		if it, ok := p.Item(name); ok {
			items = append(items, it)
		}
	}
	return items
}

// Search returns the commands whose name fuzzy-matches query, best first.
//
// An empty query lists recent commands first and the rest by name. A limit
// of zero or less returns every hit.
func (p *Palette) Search(query string, limit int) []Result {
	items := p.Items()
	query = strings.ToLower(strings.TrimSpace(query))

	var results []Result
	if query == "" {
		results = p.browse(items)
	} else {
		q := []rune(query)
		results = make([]Result, 0, len(items))
		for _, it := range items {
			s, matches := match(q, it.Name)
			if s == 0 {
				continue
			}
			if pos := p.history.Position(it.Name); pos >= 0 {
				s += historyBonus / (pos + 1)
			}
			results = append(results, Result{Item: it, Score: s, Matches: matches})
		}
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Score != results[j].Score {
				return results[i].Score > results[j].Score
			}
			return results[i].Item.Name < results[j].Item.Name
		})
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (p *Palette) browse(items []Item) []Result {
	byName := make(map[string]Item, len(items))
	for _, it := range items {
		byName[it.Name] = it
	}

	results := make([]Result, 0, len(items))
	for _, name := range p.history.Recent(0) {
		if it, ok := byName[name]; ok {
			results = append(results, Result{Item: it})
			delete(byName, name)
		}
	}
	for _, it := range items {
		if _, ok := byName[it.Name]; ok {
			results = append(results, Result{Item: it})
		}
	}
	return results
}
