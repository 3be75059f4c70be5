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

package apis

// Classifier decides whether an error belongs to a category.
//
// A classifier is the unit a rescue handler is registered against. It may be
// backed by a Go type (type assertion), a sentinel value, or an arbitrary
// predicate. Implementations inspect only the error they are given: walking
// the cause chain is the dispatcher's job, not the classifier's.
type Classifier interface {
	// Name returns the display name of the classifier. It is used as the
	// registry key and in diagnostics, and should be stable.
	Name() string

	// Match reports whether err belongs to this classifier.
	// Match must return false for a nil error.
	Match(err error) bool
}
