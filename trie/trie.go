// Package trie implements an exact prefix tree over lowercase ASCII words.
//
// Nodes live in an arena owned by the Trie and refer to each other by index,
// so parent links are plain integers and never keep a subtree alive. Removing
// a word prunes every node that no longer leads to a stored word, which makes
// the shape of a Trie a function of its word set alone.
//
// The alphabet is 'a' through 'z'. Insert rejects the empty string and any
// other byte; queries with such input simply report false. A Trie is not safe
// for concurrent use.
package trie

import (
	"errors"
	"fmt"
)

// alphabetSize is the branching factor of every node.
const alphabetSize = 26

var (
	// ErrEmptyWord is returned when inserting the empty string.
	ErrEmptyWord = errors.New("trie: empty word")

	// ErrInvalidCharacter is returned when a word contains a byte outside 'a'-'z'.
	ErrInvalidCharacter = errors.New("trie: invalid character")
)

// root is the arena index of the root node. It is never anyone's child, so
// a zero child slot means "no child".
const root int32 = 0

type node struct {
	children    [alphabetSize]int32
	parent      int32
	numChildren uint8
	label       byte // 0 for the root
	finished    bool // a word ends here
}

// Trie is a set of words stored as a 26-way prefix tree.
// Create tries with New; the zero value is only usable as the target of
// ReadFrom or UnmarshalText.
type Trie struct {
	nodes []node
	free  []int32 // released arena slots
	words int
}

// New returns a trie holding words. It fails on the first word Insert rejects.
func New(words ...string) (*Trie, error) {
	t := empty()
	for _, w := range words {
		if err := t.Insert(w); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func empty() *Trie {
	return &Trie{nodes: make([]node, 1)}
}

// validate checks that word is non-empty and entirely lowercase ASCII.
func validate(word string) error {
	if word == "" {
		return ErrEmptyWord
	}
	for i := 0; i < len(word); i++ {
		if c := word[i]; c < 'a' || c > 'z' {
			return fmt.Errorf("%w: %q at offset %d in %q", ErrInvalidCharacter, c, i, word)
		}
	}
	return nil
}

// alloc places a fresh node under parent and returns its index. It may grow
// the arena, so callers must not hold node pointers across it.
func (t *Trie) alloc(parent int32, label byte) int32 {
	n := node{parent: parent, label: label}
	if k := len(t.free); k > 0 {
		idx := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[idx] = n
		return idx
	}
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// child returns the child of idx for letter c, creating it if missing.
func (t *Trie) child(idx int32, c byte) int32 {
	slot := c - 'a'
	if ch := t.nodes[idx].children[slot]; ch != 0 {
		return ch
	}
	ch := t.alloc(idx, c)
	t.nodes[idx].children[slot] = ch
	t.nodes[idx].numChildren++
	return ch
}

// release returns idx to the free list.
func (t *Trie) release(idx int32) {
	t.nodes[idx] = node{}
	t.free = append(t.free, idx)
}

// Insert stores word. Inserting a stored word is a no-op. Invalid words are
// rejected before anything is modified.
func (t *Trie) Insert(word string) error {
	if err := validate(word); err != nil {
		return err
	}
	cur := root
	for i := 0; i < len(word); i++ {
		cur = t.child(cur, word[i])
	}
	if !t.nodes[cur].finished {
		t.nodes[cur].finished = true
		t.words++
	}
	return nil
}

// find returns the node spelled by s, if there is one.
func (t *Trie) find(s string) (int32, bool) {
	cur := root
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return 0, false
		}
		cur = t.nodes[cur].children[c-'a']
		if cur == 0 {
			return 0, false
		}
	}
	return cur, true
}

// Search reports whether query is a stored word. A stored prefix of a longer
// word does not count.
func (t *Trie) Search(query string) bool {
	idx, ok := t.find(query)
	return ok && t.nodes[idx].finished
}

// Contains is Search.
func (t *Trie) Contains(query string) bool {
	return t.Search(query)
}

// StartsWith reports whether some stored word begins with prefix. The empty
// prefix matches as long as the trie is not empty.
func (t *Trie) StartsWith(prefix string) bool {
	if prefix == "" {
		return t.words > 0
	}
	_, ok := t.find(prefix)
	return ok
}

// Remove deletes word and prunes the nodes that no longer lead to any stored
// word. It reports whether word was stored.
func (t *Trie) Remove(word string) bool {
	idx, ok := t.find(word)
	if !ok || idx == root || !t.nodes[idx].finished {
		return false
	}
	t.nodes[idx].finished = false
	t.words--
	t.prune(idx)
	return true
}

// prune detaches idx and its ancestors while they are neither terminal nor
// branching, stopping at the root.
func (t *Trie) prune(idx int32) {
	for idx != root {
		n := &t.nodes[idx]
		if n.finished || n.numChildren > 0 {
			return
		}
		parent := n.parent
		p := &t.nodes[parent]
		p.children[n.label-'a'] = 0
		p.numChildren--
		t.release(idx)
		idx = parent
	}
}

// Len returns the number of stored words.
func (t *Trie) Len() int {
	return t.words
}

// Empty reports whether no word is stored.
func (t *Trie) Empty() bool {
	return t.words == 0
}

// Clear removes every word.
func (t *Trie) Clear() {
	t.nodes = t.nodes[:1]
	t.nodes[root] = node{}
	t.free = t.free[:0]
	t.words = 0
}
