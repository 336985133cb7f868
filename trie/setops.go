package trie

import "slices"

// Clone returns a deep copy of t. The copy shares no nodes with t.
func (t *Trie) Clone() *Trie {
	return &Trie{
		nodes: slices.Clone(t.nodes),
		free:  slices.Clone(t.free),
		words: t.words,
	}
}

// UnionWith adds every word of o to t.
func (t *Trie) UnionWith(o *Trie) {
	if t == o {
		return
	}
	t.merge(root, o, root)
}

// merge copies the subtree of o at src onto the subtree of t at dst.
func (t *Trie) merge(dst int32, o *Trie, src int32) {
	if o.nodes[src].finished && !t.nodes[dst].finished {
		t.nodes[dst].finished = true
		t.words++
	}
	for _, ch := range o.nodes[src].children {
		if ch != 0 {
			t.merge(t.child(dst, o.nodes[ch].label), o, ch)
		}
	}
}

// DifferenceWith removes from t every word stored in o, pruning as Remove does.
func (t *Trie) DifferenceWith(o *Trie) {
	if t == o {
		t.Clear()
		return
	}
	for w := range o.Words() {
		t.Remove(w)
	}
}

// Union returns a new trie holding the words of a and b.
func Union(a, b *Trie) *Trie {
	c := a.Clone()
	c.UnionWith(b)
	return c
}

// Difference returns a new trie holding the words of a that are not in b.
func Difference(a, b *Trie) *Trie {
	c := a.Clone()
	c.DifferenceWith(b)
	return c
}

// Equal reports whether t and o store exactly the same words.
func (t *Trie) Equal(o *Trie) bool {
	if t == o {
		return true
	}
	if t.words != o.words {
		return false
	}
	return t.equalRec(root, o, root)
}

// equalRec compares two subtrees node by node. Pruning keeps the shape of a
// trie determined by its words, so shapes match exactly when word sets do.
func (t *Trie) equalRec(a int32, o *Trie, b int32) bool {
	na, nb := &t.nodes[a], &o.nodes[b]
	if na.finished != nb.finished || na.numChildren != nb.numChildren {
		return false
	}
	for i, ca := range na.children {
		cb := nb.children[i]
		if (ca == 0) != (cb == 0) {
			return false
		}
		if ca != 0 && !t.equalRec(ca, o, cb) {
			return false
		}
	}
	return true
}
