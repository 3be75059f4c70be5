/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package segmenttrie

import (
	"errors"
	"strings"

	"dirpx.dev/rescue/reason"
)

// Wildcard matches exactly one segment.
const Wildcard = "*"

// ErrInvalidPrefix is returned by Insert for empty, malformed or
// all-wildcard prefixes.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// Trie indexes dot-separated prefixes segment by segment. A lookup returns
// the value of the deepest inserted prefix that matches the key, so
// "storage.pg" beats "storage" for "storage.pg.connect_timeout".
//
// A Trie is not safe for concurrent writes; build it once, then share it for
// reads.
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the prefix as inserted, kept on value nodes only.
	pattern string
}

// New returns an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with prefix, replacing a previous value for the same
// prefix. Segments follow the reason rules; "*" stands for one arbitrary
// segment, and at least one segment must be concrete.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	concrete := false
	for _, s := range segs {
		if !reason.ValidSegment(s, true) {
			return ErrInvalidPrefix
		}
		if s != Wildcard {
			concrete = true
		}
	}
	if !concrete {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		next, ok := cur.children[s]
		if !ok {
			next = New[T]()
			cur.children[s] = next
		}
		cur = next
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match returns the value and the pattern of the deepest prefix matching
// key. Exact and wildcard branches are both explored; at equal depth the
// exact branch wins. A malformed segment in key stops the walk at that
// point.
func (t *Trie[T]) Match(key string) (val T, pattern string, ok bool) {
	if t == nil {
		return val, "", false
	}
	best := -1
	var walk func(n *Trie[T], off, depth int)
	walk = func(n *Trie[T], off, depth int) {
		if n.hasVal && depth > best {
			best, val, pattern = depth, n.val, n.pattern
		}
		if off >= len(key) {
			return
		}
		end := strings.IndexByte(key[off:], '.')
		if end < 0 {
			end = len(key)
		} else {
			end += off
		}
		seg := key[off:end]
		if !reason.ValidSegment(seg, false) {
			return
		}
		next := end + 1
		if c, ok := n.children[seg]; ok {
			walk(c, next, depth+1)
		}
		if c, ok := n.children[Wildcard]; ok {
			walk(c, next, depth+1)
		}
	}
	walk(t, 0, 0)
	if best < 0 {
		var zero T
		return zero, "", false
	}
	return val, pattern, true
}

// Patterns returns the inserted prefixes, in no particular order.
func (t *Trie[T]) Patterns() []string {
	if t == nil {
		return nil
	}
	var out []string
	var walk func(n *Trie[T])
	walk = func(n *Trie[T]) {
		if n.hasVal {
			out = append(out, n.pattern)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t)
	return out
}
