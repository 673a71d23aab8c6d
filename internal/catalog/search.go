// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package catalog

import (
	"slices"
	"strings"
	"sync"
)

const defaultSearchLimit = 10

// searchIndex provides case-insensitive prefix lookup over track titles and
// artists. One trie per field; title matches rank ahead of artist matches.
//
// The index lives in memory and is rebuilt from BadgerDB at open, so it
// never needs persistence of its own.
type searchIndex struct {
	mu      sync.RWMutex
	titles  *trie
	artists *trie
}

func newSearchIndex() *searchIndex {
	return &searchIndex{
		titles:  newTrie(),
		artists: newTrie(),
	}
}

// Add indexes a track under its title and artist.
func (ix *searchIndex) Add(track *Track) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.titles.insert(normalizeKey(track.Title), track.ID)
	ix.artists.insert(normalizeKey(track.Artist), track.ID)
}

// Remove drops a track's index entries. The track must carry the title and
// artist it was indexed under.
func (ix *searchIndex) Remove(track *Track) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.titles.remove(normalizeKey(track.Title), track.ID)
	ix.artists.remove(normalizeKey(track.Artist), track.ID)
}

// Lookup returns track IDs whose title or artist starts with prefix,
// title matches first, deduplicated, capped at limit.
func (ix *searchIndex) Lookup(prefix string, limit int) []string {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	key := normalizeKey(prefix)
	seen := make(map[string]struct{})
	ids := []string{}

	for _, id := range ix.titles.lookup(key) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		if len(ids) == limit {
			return ids
		}
	}
	for _, id := range ix.artists.lookup(key) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		if len(ids) == limit {
			return ids
		}
	}

	return ids
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// trieNode is one character of indexed keys. Track IDs sit on the node
// where their key terminates; several tracks may share one key.
type trieNode struct {
	children map[rune]*trieNode
	ids      []string
}

// trie maps keys to track ID sets with O(len(key)) operations. It carries
// no lock of its own; searchIndex serializes access.
type trie struct {
	root *trieNode
}

func newTrie() *trie {
	return &trie{root: newTrieNode()}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

func (t *trie) insert(key, id string) {
	if key == "" || id == "" {
		return
	}

	node := t.root
	for _, ch := range key {
		child := node.children[ch]
		if child == nil {
			child = newTrieNode()
			node.children[ch] = child
		}
		node = child
	}

	if !slices.Contains(node.ids, id) {
		node.ids = append(node.ids, id)
	}
}

func (t *trie) remove(key, id string) {
	if key == "" || id == "" {
		return
	}
	t.removeRecursive(t.root, []rune(key), 0, id)
}

// removeRecursive deletes the ID at the key's terminal node and prunes
// nodes left empty on the way back up.
func (t *trie) removeRecursive(node *trieNode, key []rune, depth int, id string) bool {
	if node == nil {
		return false
	}

	if depth == len(key) {
		before := len(node.ids)
		node.ids = slices.DeleteFunc(node.ids, func(existing string) bool {
			return existing == id
		})
		return len(node.ids) != before
	}

	ch := key[depth]
	child := node.children[ch]
	removed := t.removeRecursive(child, key, depth+1, id)

	if removed && child != nil && len(child.ids) == 0 && len(child.children) == 0 {
		delete(node.children, ch)
	}

	return removed
}

// lookup returns the IDs of every key starting with prefix, ordered by key
// and then by insertion order within a key. An empty prefix matches all.
func (t *trie) lookup(prefix string) []string {
	node := t.root
	for _, ch := range prefix {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}

	var ids []string
	collectIDs(node, &ids)
	return ids
}

// collectIDs walks the subtree in sorted child order so results are
// deterministic across runs.
func collectIDs(node *trieNode, out *[]string) {
	*out = append(*out, node.ids...)

	if len(node.children) == 0 {
		return
	}
	keys := make([]rune, 0, len(node.children))
	for ch := range node.children {
		keys = append(keys, ch)
	}
	slices.Sort(keys)
	for _, ch := range keys {
		collectIDs(node.children[ch], out)
	}
}
