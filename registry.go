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

package rescue

import (
	"slices"
)

// KeyKind tells how a registry key is resolved.
type KeyKind uint8

const (
	// KeyType keys carry a Classifier that is used as-is.
	KeyType KeyKind = iota + 1
	// KeyName keys carry a name that is resolved at dispatch time, relative
	// to the dispatching class.
	KeyName
)

// Key identifies the classifier of a registry entry.
type Key struct {
	kind       KeyKind
	name       string
	classifier Classifier
}

// TypeKey returns a key that resolves to c. Its display name is captured
// from c.Name() once, at construction.
func TypeKey(c Classifier) Key {
	return Key{kind: KeyType, name: c.Name(), classifier: c}
}

// NameKey returns a deferred key resolved by name at dispatch time.
func NameKey(name string) Key {
	return Key{kind: KeyName, name: name}
}

// Kind returns the key kind.
func (k Key) Kind() KeyKind { return k.kind }

// String returns the display name of the key.
func (k Key) String() string { return k.name }

// Classifier returns the classifier of a KeyType key.
func (k Key) Classifier() (Classifier, bool) {
	return k.classifier, k.kind == KeyType
}

// Entry is one (classifier, handlers) registration. Handlers run in order
// when the classifier matches.
type Entry struct {
	Key      Key
	Handlers []Handler
}

// Registry is an ordered, append-only list of entries with value semantics.
//
// Append never writes into a backing array another Registry may observe, so
// a registry copied into a derived class, or a snapshot taken by a running
// dispatch, is never affected by later registrations. The zero value is an
// empty registry.
type Registry struct {
	entries []Entry
}

// Len returns the number of entries.
func (r Registry) Len() int { return len(r.entries) }

// Entries returns a copy of the entries in declaration order. Handler lists
// are copied too: editing the result never changes what r dispatches to.
func (r Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.clone()
	}
	return out
}

// At returns a copy of the i-th entry in declaration order.
func (r Registry) At(i int) Entry { return r.entries[i].clone() }

func (e Entry) clone() Entry {
	e.Handlers = slices.Clone(e.Handlers)
	return e
}

// Append returns a registry with es added after the existing entries.
// r itself is left unchanged.
func (r Registry) Append(es ...Entry) Registry {
	if len(es) == 0 {
		return r
	}
	return Registry{entries: append(slices.Clip(r.entries), es...)}
}

// Keys returns the display names of all entry keys in declaration order.
func (r Registry) Keys() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Key.String()
	}
	return out
}
