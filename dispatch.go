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

	"dirpx.dev/rescue/apis"
)

// Rescuable is implemented by host types. RescueClass returns the class
// whose registry applies to the receiver; a derived host type overrides it
// to return its own class.
type Rescuable interface {
	RescueClass() *Class
}

// RescueWithHandler dispatches err on behalf of r. It returns the error
// that was handled (err itself or one of its causes), or nil when nothing
// matched, in which case the caller is expected to propagate err:
//
//	if err := g.Open(); err != nil {
//	    if rescue.RescueWithHandler(g, err) == nil {
//	        return err
//	    }
//	}
func RescueWithHandler(r Rescuable, err error) error {
	return r.RescueClass().RescueWithHandler(r, err)
}

// HandlersForRescue returns the handlers that would rescue err on behalf of
// r, bound and ready to call, without running them. See
// Class.HandlersForRescue.
func HandlersForRescue(r Rescuable, err error) []func(error) {
	return r.RescueClass().HandlersForRescue(r, err)
}

// maxChainDepth bounds cause traversal for chains the visited set cannot
// track (non-comparable error values).
const maxChainDepth = 1 << 12

// RescueWithHandler looks for the most recently registered entry matching
// err and runs its handlers, in order, against subject. When no entry
// matches, it retries with the cause of err (see Cause), and so on down the
// chain, stopping as unhandled at the end of the chain or when a cause was
// already examined during this call.
//
// It returns the error that was handled, or nil when nothing matched. The
// handlers run synchronously on the calling goroutine; a panic inside a
// handler is not recovered.
//
// subject must be of the class's subject type or embed it. A mismatch is a
// programming error and panics with a *ConfigError, as does a handler method
// that an embedding subject shadows with an unusable signature.
func (c *Class) RescueWithHandler(subject any, err error) error {
	if err == nil {
		return nil
	}
	v := c.subjectValue(subject)
	entries := c.Registry().entries
	seen := newVisited()
	for depth := 0; err != nil && depth < maxChainDepth; depth++ {
		seen.add(err)
		if e, ok := c.findMatch(entries, err, nil); ok {
			c.logger.Debug("rescue: handled",
				slog.String("class", c.name),
				slog.String("key", e.Key.String()),
				slog.String("error_type", fmt.Sprintf("%T", err)),
				slog.Int("depth", depth),
			)
			for _, h := range bindAll(e.Handlers, v) {
				h(err)
			}
			return err
		}
		cause := Cause(err)
		if cause != nil && seen.has(cause) {
			c.logger.Debug("rescue: cause cycle, unhandled",
				slog.String("class", c.name),
				slog.Int("depth", depth),
			)
			return nil
		}
		err = cause
	}
	return nil
}

// HandlersForRescue returns the handlers of the entry matching err itself,
// bound to subject, or nil when no entry matches. Unlike RescueWithHandler it
// does not look at causes and does not run anything.
func (c *Class) HandlersForRescue(subject any, err error) []func(error) {
	if err == nil {
		return nil
	}
	v := c.subjectValue(subject)
	e, ok := c.findMatch(c.Registry().entries, err, nil)
	if !ok {
		return nil
	}
	return bindAll(e.Handlers, v)
}

// matchOutcome is reported to a trace function for every entry findMatch
// looks at.
type matchOutcome uint8

const (
	outcomeNoMatch matchOutcome = iota
	outcomeUnresolved
	outcomeMatch
)

// findMatch scans entries from the last to the first and returns the first
// entry whose classifier resolves and matches err.
func (c *Class) findMatch(entries []Entry, err error, trace func(int, Entry, matchOutcome)) (Entry, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		cl, ok := c.resolve(e.Key)
		if !ok {
			if trace != nil {
				trace(i, e, outcomeUnresolved)
			}
			continue
		}
		if cl.Match(err) {
			if trace != nil {
				trace(i, e, outcomeMatch)
			}
			return e, true
		}
		if trace != nil {
			trace(i, e, outcomeNoMatch)
		}
	}
	return Entry{}, false
}

func bindAll(hs []Handler, subject reflect.Value) []func(error) {
	out := make([]func(error), len(hs))
	for i, h := range hs {
		out[i] = h.bind(subject)
	}
	return out
}

// Cause returns the error that triggered err, or nil.
//
// An explicit Cause method (apis.CausedError) wins over Unwrap. Errors that
// wrap several errors (Unwrap() []error) have no single cause and yield nil.
func Cause(err error) error {
	switch x := err.(type) {
	case apis.CausedError:
		return x.Cause()
	case interface{ Unwrap() error }:
		return x.Unwrap()
	default:
		return nil
	}
}

// visited is the identity set of errors examined by one dispatch.
type visited struct {
	set map[error]struct{}
}

func newVisited() *visited {
	return &visited{set: make(map[error]struct{}, 4)}
}

func (v *visited) add(err error) {
	if trackable(err) {
		v.set[err] = struct{}{}
	}
}

func (v *visited) has(err error) bool {
	if !trackable(err) {
		return false
	}
	_, ok := v.set[err]
	return ok
}

func trackable(err error) bool {
	return err != nil && reflect.ValueOf(err).Comparable()
}
