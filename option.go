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

import "log/slog"

// ClassOption configures a Class at declaration time (NewClass / Derive).
// Options are applied after the parent's settings have been inherited, so a
// derived class may override any of them.
type ClassOption func(*Class)

// WithLogger sets the logger used for dispatch tracing (DEBUG) and for
// unresolved classifier names (WARN). A nil logger disables logging.
func WithLogger(l *slog.Logger) ClassOption {
	return func(c *Class) {
		if l == nil {
			l = discardLogger
		}
		c.logger = l
	}
}

// WithNamespace sets the global namespace consulted after the class scopes
// when resolving classifier names. It defaults to Global.
func WithNamespace(ns *Namespace) ClassOption {
	return func(c *Class) {
		if ns != nil {
			c.global = ns
		}
	}
}

// WithResolver replaces the name resolution strategy. Hosts that do not want
// name keys at all can pass a resolver that never resolves and register
// Classifier values only.
func WithResolver(r NameResolver) ClassOption {
	return func(c *Class) {
		if r != nil {
			c.resolver = r
		}
	}
}

var discardLogger = slog.New(slog.DiscardHandler)
