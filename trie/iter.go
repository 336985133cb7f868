package trie

import (
	"iter"
	"slices"
)

// Node is a read-only view of one trie node, as produced by BFS and DFS.
type Node struct {
	Label    byte   // letter on the edge into this node, 0 for the root
	Terminal bool   // a stored word ends here
	Depth    int    // distance from the root
	Prefix   string // letters from the root to this node
}

func (t *Trie) view(idx int32, prefix string) Node {
	n := &t.nodes[idx]
	return Node{
		Label:    n.label,
		Terminal: n.finished,
		Depth:    len(prefix),
		Prefix:   prefix,
	}
}

// BFS yields every node, the root first, level by level. Siblings come in
// alphabetical order. The trie must not be modified during iteration.
func (t *Trie) BFS() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		type entry struct {
			idx    int32
			prefix string
		}
		queue := []entry{{root, ""}}
		for len(queue) > 0 {
			e := queue[0]
			queue = queue[1:]
			if !yield(t.view(e.idx, e.prefix)) {
				return
			}
			for _, ch := range t.nodes[e.idx].children {
				if ch != 0 {
					queue = append(queue, entry{ch, e.prefix + string(t.nodes[ch].label)})
				}
			}
		}
	}
}

// DFS yields every node in pre-order: a node, then each child subtree in
// alphabetical order. The trie must not be modified during iteration.
func (t *Trie) DFS() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		t.dfs(func(idx int32, prefix []byte) bool {
			return yield(t.view(idx, string(prefix)))
		})
	}
}

// Words yields the stored words in lexicographic order.
func (t *Trie) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		t.dfs(func(idx int32, prefix []byte) bool {
			if !t.nodes[idx].finished {
				return true
			}
			return yield(string(prefix))
		})
	}
}

// WordList returns the stored words in lexicographic order.
func (t *Trie) WordList() []string {
	return slices.AppendSeq(make([]string, 0, t.words), t.Words())
}

// dfs walks the trie in pre-order with an explicit stack, calling visit with
// each node and the prefix that spells it. The prefix buffer is reused.
func (t *Trie) dfs(visit func(idx int32, prefix []byte) bool) {
	type entry struct {
		idx   int32
		depth int
	}
	stack := []entry{{root, 0}}
	prefix := make([]byte, 0, 16)
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		prefix = prefix[:e.depth]
		if e.idx != root {
			prefix = append(prefix, t.nodes[e.idx].label)
		}
		if !visit(e.idx, prefix) {
			return
		}

		// Push in reverse so 'a' is popped first.
		children := &t.nodes[e.idx].children
		for i := alphabetSize - 1; i >= 0; i-- {
			if ch := children[i]; ch != 0 {
				stack = append(stack, entry{ch, len(prefix)})
			}
		}
	}
}
