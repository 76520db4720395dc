// Package palette provides fuzzy search over the bindable commands.
//
// A Palette joins the command registry with the active keymap table so a
// search result carries both the command and the shortcuts that currently
// trigger it:
//
//	p := palette.New(registry, table)
//	for _, r := range p.Search("sel", 5) {
//		fmt.Println(r.Item.Name, r.Item.Shortcuts())
//	}
//
// Commands recorded with Record rank ahead of the rest when the query is
// empty and get a bonus otherwise.
package palette
