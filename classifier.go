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
	"reflect"

	"dirpx.dev/rescue/apis"
)

// Classifier decides whether an error belongs to a category. See
// apis.Classifier.
type Classifier = apis.Classifier

// Type returns a Classifier matching errors whose dynamic value is an E.
//
// E may be a concrete error type (usually a pointer type) or an interface
// type. Interfaces play the role of ancestor types: Type[error]() matches
// every error, and Type[interface{ error; Temporary() bool }]() matches any
// error with a Temporary method.
//
// The classifier is named after the Go type, e.g. "*store.NotFoundError".
// Use Named to pick a shorter display name.
func Type[E error]() Classifier {
	return typeClassifier[E]{name: reflect.TypeFor[E]().String()}
}

type typeClassifier[E error] struct{ name string }

func (c typeClassifier[E]) Name() string { return c.name }

func (c typeClassifier[E]) Match(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(E)
	return ok
}

// Match adapts a predicate into a named Classifier. The predicate is never
// called with a nil error.
func Match(name string, fn func(error) bool) Classifier {
	return funcClassifier{name: name, fn: fn}
}

type funcClassifier struct {
	name string
	fn   func(error) bool
}

func (c funcClassifier) Name() string { return c.name }

func (c funcClassifier) Match(err error) bool {
	if err == nil || c.fn == nil {
		return false
	}
	return c.fn(err)
}

// Sentinel returns a Classifier matching the target error value itself, or
// an error whose own Is method reports target. It does not unwrap.
func Sentinel(name string, target error) Classifier {
	return sentinelClassifier{name: name, target: target}
}

type sentinelClassifier struct {
	name   string
	target error
}

func (c sentinelClassifier) Name() string { return c.name }

func (c sentinelClassifier) Match(err error) bool {
	if err == nil || c.target == nil {
		return false
	}
	if sameError(err, c.target) {
		return true
	}
	if x, ok := err.(interface{ Is(error) bool }); ok {
		return x.Is(c.target)
	}
	return false
}

// Named returns a Classifier that behaves like c but reports name.
func Named(name string, c Classifier) Classifier {
	return namedClassifier{name: name, Classifier: c}
}

type namedClassifier struct {
	name string
	Classifier
}

func (c namedClassifier) Name() string { return c.name }

// sameError compares two errors by identity without panicking on
// non-comparable dynamic types.
func sameError(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va := reflect.ValueOf(a)
	if va.Type() != reflect.TypeOf(b) || !va.Comparable() {
		return false
	}
	return a == b
}
