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
	"fmt"
	"log/slog"
	"reflect"
	"sync"
)

// Class is the rescue descriptor of one Go host type: its name, its subject
// type, the classes it derives from, its private names and its registry of
// handlers.
//
// A Class is declared once, usually in a package-level var, and configured
// with RescueFrom before the host starts dispatching. Registration and
// dispatch are safe for concurrent use; dispatch always works on a snapshot
// of the registry.
type Class struct {
	name    string
	parent  *Class
	subject reflect.Type

	names    *Namespace
	global   *Namespace
	resolver NameResolver
	logger   *slog.Logger

	mu       sync.RWMutex
	registry Registry

	// unresolved remembers names already reported as unresolved.
	unresolved sync.Map
}

// NewClass declares a root class whose handlers run against subjects of
// type S, typically a pointer to the host struct:
//
//	var gateClass = rescue.NewClass[*Gate]("Gate")
//
// It panics with a *ConfigError when name is empty.
func NewClass[S any](name string, opts ...ClassOption) *Class {
	if name == "" {
		panic(configErrorf("", nil, "class name must not be empty"))
	}
	c := &Class{
		name:    name,
		subject: reflect.TypeFor[S](),
		names:   NewNamespace(),
		global:  Global,
		logger:  discardLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Derive declares a class for host type S that embeds the parent's host
// type (directly or through other embedded types):
//
//	type ReinforcedGate struct{ Gate }
//	var reinforcedGateClass = rescue.Derive[*ReinforcedGate](gateClass, "ReinforcedGate")
//
// The derived class starts with a copy of the parent's current registry;
// entries it registers later are appended after the inherited ones and are
// never visible to the parent. It inherits the parent's logger, namespace
// and resolver unless opts override them, and can see the parent's private
// names.
//
// Derive panics with a *ConfigError when parent is nil, name is empty, or an
// inherited handler cannot run against S.
func Derive[S any](parent *Class, name string, opts ...ClassOption) *Class {
	if parent == nil {
		panic(configErrorf(name, nil, "parent class must not be nil"))
	}
	if name == "" {
		panic(configErrorf("", nil, "class name must not be empty"))
	}
	subject := reflect.TypeFor[S]()
	if _, ok := embedPath(subject, parent.subject); !ok {
		panic(configErrorf(name, subject, "%s does not embed %s", subject, parent.subject))
	}
	inherited := parent.Registry()
	for _, e := range inherited.entries {
		for _, h := range e.Handlers {
			if msg, ok := h.validate(subject); !ok {
				panic(configErrorf(name, h, "inherited handler for %s: %s", e.Key, msg))
			}
		}
	}
	c := &Class{
		name:     name,
		parent:   parent,
		subject:  subject,
		names:    NewNamespace(),
		global:   parent.global,
		resolver: parent.resolver,
		logger:   parent.logger,
		registry: inherited,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Parent returns the class c was derived from, or nil for a root class.
func (c *Class) Parent() *Class { return c.parent }

// Subject returns the subject type handlers run against.
func (c *Class) Subject() reflect.Type { return c.subject }

// Registry returns a snapshot of the registry.
func (c *Class) Registry() Registry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry
}

// Keys returns the display names of the registered keys, in declaration
// order, inherited entries first.
func (c *Class) Keys() []string {
	return c.Registry().Keys()
}

// Define binds name to cl in the class's private scope. The name is visible
// when this class, or any class derived from it, resolves a name key, and
// takes precedence over names defined by ancestors and over Global.
func (c *Class) Define(name string, cl Classifier) error {
	if err := c.names.Define(name, cl); err != nil {
		if ce, ok := err.(*ConfigError); ok {
			ce.Class = c.name
		}
		return err
	}
	return nil
}

// RescueFrom registers handlers for every key, in order.
//
// A key is either a Classifier (stored as a type key, its display name
// captured now) or a non-empty string (stored verbatim as a name key and
// resolved at dispatch time). Each key gets its own entry appended at the end
// of the registry; all entries of one call share the handler list, whose
// handlers run in the given order.
//
// Because the registry is scanned from the last entry to the first, a later
// registration takes priority over an earlier one for any error both match,
// whether it comes from this class or from a class derived from it.
//
// RescueFrom returns a *ConfigError (matching ErrConfiguration) when no
// handler is given, when a key has an unsupported type, or when a handler
// cannot run against the class's subject type. Nothing is registered in that
// case.
func (c *Class) RescueFrom(keys []any, handlers ...Handler) error {
	if len(handlers) == 0 {
		return configErrorf(c.name, nil, "need a handler: pass at least one Method, Do, Func or Action")
	}
	for _, h := range handlers {
		if msg, ok := h.validate(c.subject); !ok {
			return configErrorf(c.name, h, "%s", msg)
		}
	}
	if len(keys) == 0 {
		return configErrorf(c.name, nil, "need at least one classifier")
	}

	hs := append([]Handler(nil), handlers...)
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		switch k := k.(type) {
		case Classifier:
			entries = append(entries, Entry{Key: TypeKey(k), Handlers: hs})
		case string:
			if k == "" {
				return configErrorf(c.name, k, "classifier name must not be empty")
			}
			entries = append(entries, Entry{Key: NameKey(k), Handlers: hs})
		default:
			return configErrorf(c.name, k, "%#v must be a Classifier or a string naming one", k)
		}
	}

	c.mu.Lock()
	c.registry = c.registry.Append(entries...)
	c.mu.Unlock()
	return nil
}

// MustRescueFrom is like RescueFrom but panics on error. It is meant for
// setup code, where a registration mistake is a programming error.
func (c *Class) MustRescueFrom(keys []any, handlers ...Handler) {
	if err := c.RescueFrom(keys, handlers...); err != nil {
		panic(err)
	}
}

// On is a small helper that builds the key list of RescueFrom:
//
//	gateClass.MustRescueFrom(rescue.On(rescue.Type[*Breach](), "Flood"), rescue.Method("SealDoors"))
func On(keys ...any) []any { return keys }

// resolve returns the classifier of key k, seen from c.
func (c *Class) resolve(k Key) (Classifier, bool) {
	if cl, ok := k.Classifier(); ok {
		return cl, true
	}
	var (
		cl Classifier
		ok bool
	)
	if c.resolver != nil {
		cl, ok = c.resolver.Resolve(k.name, c)
	} else {
		cl, ok = lookupScoped(k.name, c, c.global)
	}
	if !ok || cl == nil {
		if _, seen := c.unresolved.LoadOrStore(k.name, struct{}{}); !seen {
			c.logger.Warn("rescue: unresolved classifier name, entry skipped",
				slog.String("class", c.name),
				slog.String("name", k.name),
			)
		}
		return nil, false
	}
	return cl, true
}

// subjectValue checks that subject can stand for c's subject type.
//
// Handlers are validated against the subject type when they are registered.
// A subject of an outer type that embeds it is checked here only for the
// embedding: if the outer type shadows a handler method with a signature
// the handler cannot use, binding that handler panics with a *ConfigError
// during dispatch. Declare such types with Derive to get the check at
// registration time.
func (c *Class) subjectValue(subject any) reflect.Value {
	v := reflect.ValueOf(subject)
	if !v.IsValid() {
		panic(configErrorf(c.name, nil, "subject must not be nil"))
	}
	if _, ok := embedPath(v.Type(), c.subject); !ok {
		panic(configErrorf(c.name, subject, "subject %s is not a %s", v.Type(), c.subject))
	}
	return v
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	if c.parent == nil {
		return c.name
	}
	return fmt.Sprintf("%s < %s", c.name, c.parent.name)
}
