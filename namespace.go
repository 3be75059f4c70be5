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
	"sync"
)

// Namespace is a concurrency-safe table of named classifiers.
//
// The package-level Global namespace plays the role of top-level names; every
// Class also owns a private namespace (see Class.Define) for names that are
// only visible from that class and the classes derived from it.
type Namespace struct {
	mu    sync.RWMutex
	names map[string]Classifier
}

// Global is the namespace consulted last when resolving classifier names,
// unless a class was declared WithNamespace.
var Global = NewNamespace()

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{names: make(map[string]Classifier)}
}

// Define binds name to c, replacing any previous binding.
func (ns *Namespace) Define(name string, c Classifier) error {
	if name == "" {
		return configErrorf("", c, "classifier name must not be empty")
	}
	if c == nil {
		return configErrorf("", name, "classifier %q must not be nil", name)
	}
	ns.mu.Lock()
	ns.names[name] = c
	ns.mu.Unlock()
	return nil
}

// Lookup returns the classifier bound to name.
func (ns *Namespace) Lookup(name string) (Classifier, bool) {
	if ns == nil {
		return nil, false
	}
	ns.mu.RLock()
	c, ok := ns.names[name]
	ns.mu.RUnlock()
	return c, ok
}

// Define binds name to c in the Global namespace.
func Define(name string, c Classifier) error {
	return Global.Define(name, c)
}

// NameResolver turns a classifier name into a Classifier, relative to the
// class that is dispatching. ok=false means "unresolved": the registry entry
// is skipped, which is not an error.
type NameResolver interface {
	Resolve(name string, scope *Class) (c Classifier, ok bool)
}

// ResolverFunc adapts a function to the NameResolver interface.
type ResolverFunc func(name string, scope *Class) (Classifier, bool)

var _ NameResolver = ResolverFunc(nil)

// Resolve implements NameResolver.
func (f ResolverFunc) Resolve(name string, scope *Class) (Classifier, bool) {
	return f(name, scope)
}

// ScopeResolver returns the default resolution strategy:
//
//  1. the scope class's own names, then the names of its ancestors, nearest
//     first (a name declared by a derived class shadows the parent's);
//  2. the given global namespace.
//
// Because resolution is relative to the dispatching class, a name registered
// by a parent can be satisfied by a classifier that only a derived class
// defines.
func ScopeResolver(global *Namespace) NameResolver {
	return ResolverFunc(func(name string, scope *Class) (Classifier, bool) {
		return lookupScoped(name, scope, global)
	})
}

func lookupScoped(name string, scope *Class, global *Namespace) (Classifier, bool) {
	for c := scope; c != nil; c = c.parent {
		if cl, ok := c.names.Lookup(name); ok {
			return cl, true
		}
	}
	return global.Lookup(name)
}
