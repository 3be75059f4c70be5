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

// Package rescue provides declarative error routing for Go host types.
//
// # Overview
//
// A host type declares, once, an ordered list of (classifier, handler)
// pairs. Later, when one of its operations fails, the caller hands the error
// to the dispatcher, which runs the handlers of the most recently declared
// matching pair. Failure handling that would otherwise be repeated at every
// call site lives in one place, and host types that embed other host types
// inherit and override it predictably.
//
// The package never catches anything by itself: a caller captures an error
// and explicitly asks for it to be rescued. It does not log, retry or
// transform errors either; handlers do whatever the host wants.
//
// # Declaring classes
//
// Each host type gets a *Class, declared once:
//
//	type Gate struct{ sealed int }
//
//	func (g *Gate) RescueClass() *rescue.Class { return gateClass }
//	func (g *Gate) SealDoors()                 { g.sealed++ }
//
//	var gateClass = rescue.NewClass[*Gate]("Gate")
//
//	func init() {
//	    gateClass.MustRescueFrom(rescue.On(rescue.Type[*Breach]()), rescue.Method("SealDoors"))
//	    gateClass.MustRescueFrom(rescue.On("Flood"), rescue.Func(func(g *Gate, err error) {
//	        g.sealed += 2
//	    }))
//	}
//
// A host type that embeds another one derives its class from the embedded
// type's class. The derived class starts with a copy of the parent's entries
// and appends its own after them:
//
//	type ReinforcedGate struct{ Gate }
//
//	func (g *ReinforcedGate) RescueClass() *rescue.Class { return reinforcedClass }
//
//	var reinforcedClass = rescue.Derive[*ReinforcedGate](gateClass, "ReinforcedGate")
//
// # Resolution model
//
// Dispatch (RescueWithHandler) works as follows:
//
//  1. scan the registry from the last entry to the first;
//  2. resolve each entry's key to a Classifier; type keys resolve to
//     themselves, name keys are looked up in the dispatching class's scope,
//     its ancestors' scopes, then the Global namespace; unresolved entries
//     are skipped;
//  3. the first entry whose classifier matches wins, and all of its handlers
//     run in declaration order against the subject;
//  4. when nothing matches, retry with the error's cause (Cause), until the
//     chain ends or loops back onto an error already examined.
//
// The only tie-break is declaration order: a broad classifier registered
// last beats a narrow one registered earlier.
//
// # Handlers
//
// A handler is either the name of an exported method of the subject
// (Method) or a function taking the subject (Do, Func, Action). Either form
// may declare one error parameter to receive the rescued error, or none.
// Handlers are checked against the subject type at registration time, so
// mistakes surface as a *ConfigError from RescueFrom rather than at
// dispatch.
//
// # Diagnostics
//
// Class.Explain returns a human-readable trace of a dispatch without running
// handlers. Classes declared WithLogger log dispatch decisions at DEBUG and
// unresolved classifier names at WARN (once per name).
package rescue
