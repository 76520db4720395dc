package keymap

import "github.com/dshills/keybind/internal/input/key"

// prefixTree indexes bindings by keystroke so lookups and pending-sequence
// checks do not scan the whole set.
type prefixTree struct {
	root *prefixNode
}

type prefixNode struct {
	children map[key.Keystroke]*prefixNode
	bindings []*binding
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[key.Keystroke]*prefixNode)}
}

func newPrefixTree() *prefixTree {
	return &prefixTree{root: newPrefixNode()}
}

// insert adds a binding under its sequence.
func (t *prefixTree) insert(b *binding) {
	node := t.root
	for _, k := range b.sequence.Strokes {
		child, ok := node.children[k]
		if !ok {
			child = newPrefixNode()
			node.children[k] = child
		}
		node = child
	}
	node.bindings = append(node.bindings, b)
}

// find returns the node for seq, or nil.
func (t *prefixTree) find(seq *key.Sequence) *prefixNode {
	node := t.root
	for _, k := range seq.Strokes {
		child, ok := node.children[k]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// walk calls fn for every binding strictly below node until fn returns true.
func (n *prefixNode) walk(fn func(*binding) bool) bool {
	for _, child := range n.children {
		for _, b := range child.bindings {
			if fn(b) {
				return true
			}
		}
		if child.walk(fn) {
			return true
		}
	}
	return false
}
