// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package cache

import (
	"sort"
	"strings"
)

// trieNode is one node of the prefix tree.
type trieNode struct {
	children map[rune]*trieNode
	terminal bool
	value    string // original casing of the stored string
	count    int    // insertion count, used for suggestion ranking
}

// Trie is a case-insensitive prefix tree for autocomplete. Lookups are
// O(m) in the query length. Duplicate inserts increment a per-value count
// so suggestions can be ranked by frequency.
//
// The discovery engine builds a Trie per autocomplete call from the
// supplied snapshot, so no locking is needed; the structure is not safe
// for concurrent mutation.
type Trie struct {
	root *trieNode
	size int
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	// Value is the stored string in its original casing.
	Value string

	// Count is how many times the value was inserted.
	Count int
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Insert adds a value, incrementing its count if already present.
// Empty strings are ignored. Returns true on first insertion.
func (t *Trie) Insert(value string) bool {
	if value == "" {
		return false
	}

	node := t.root
	for _, ch := range strings.ToLower(value) {
		child := node.children[ch]
		if child == nil {
			child = newTrieNode()
			node.children[ch] = child
		}
		node = child
	}

	isNew := !node.terminal
	node.terminal = true
	node.value = value
	node.count++
	if isNew {
		t.size++
	}
	return isNew
}

// Suggest returns up to limit values starting with prefix, ordered by
// count descending then lexicographically ascending. A prefix with no
// matches yields an empty slice.
func (t *Trie) Suggest(prefix string, limit int) []Suggestion {
	if limit <= 0 {
		return nil
	}

	node := t.root
	for _, ch := range strings.ToLower(prefix) {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}

	var results []Suggestion
	collect(node, &results)

	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Value < results[j].Value
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Size returns the number of distinct values stored.
func (t *Trie) Size() int {
	return t.size
}

// collect gathers every terminal value under node.
func collect(node *trieNode, results *[]Suggestion) {
	if node.terminal {
		*results = append(*results, Suggestion{Value: node.value, Count: node.count})
	}
	for _, child := range node.children {
		collect(child, results)
	}
}
