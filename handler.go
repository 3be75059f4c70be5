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
	"reflect"
)

// Signature tells whether a handler wants the error it rescues.
type Signature uint8

const (
	// SignatureNone handlers declare no error parameter; the error is dropped.
	SignatureNone Signature = iota
	// SignatureError handlers declare one error parameter and receive the
	// rescued error.
	SignatureError
)

// String returns "none" or "error".
func (s Signature) String() string {
	if s == SignatureError {
		return "error"
	}
	return "none"
}

type handlerKind uint8

const (
	handlerMethod handlerKind = iota + 1
	handlerFunc
)

// Handler is a reference to the code run when an entry matches: either the
// name of a method of the subject, or a function that receives the subject.
//
// Handlers are validated against the class's subject type when they are
// registered (Class.RescueFrom), and bound to a concrete subject when an
// error is dispatched.
type Handler struct {
	kind handlerKind
	name string
	fn   reflect.Value
}

// Method refers to the exported method name of the subject.
//
// The method must take no arguments, or a single argument that error is
// assignable to (error or any), and must not return values. It is looked up
// on the concrete subject at dispatch time, so a derived host type that
// declares its own method of that name shadows the promoted one.
func Method(name string) Handler {
	return Handler{kind: handlerMethod, name: name}
}

// Do refers to a function run with the subject as its first argument:
//
//	func(s S)
//	func(s S, err error)
//
// S must be the class's subject type, an interface it implements, or a type
// reachable from it through exported embedded fields. Functions declared in
// the host's package can therefore read and update the host's unexported
// state. fn is validated at registration; Func and Action give the same thing
// with compile-time checking.
func Do(fn any) Handler {
	return Handler{kind: handlerFunc, name: fmt.Sprintf("%T", fn), fn: reflect.ValueOf(fn)}
}

// Func is the typed form of Do for handlers that want the error.
func Func[S any](fn func(S, error)) Handler {
	return Do(fn)
}

// Action is the typed form of Do for handlers that ignore the error.
func Action[S any](fn func(S)) Handler {
	return Do(fn)
}

// String returns the method name, or the function's type for callables.
func (h Handler) String() string { return h.name }

// IsMethod reports whether h refers to a method by name.
func (h Handler) IsMethod() bool { return h.kind == handlerMethod }

var errorType = reflect.TypeFor[error]()

// validate checks h against the subject type of the class it is registered
// on. It returns a short reason on failure.
func (h Handler) validate(subject reflect.Type) (string, bool) {
	switch h.kind {
	case handlerMethod:
		if h.name == "" {
			return "method handler needs a name", false
		}
		m, ok := subject.MethodByName(h.name)
		if !ok {
			return fmt.Sprintf("%s has no exported method %q", subject, h.name), false
		}
		// m.Type includes the receiver for concrete types but not for
		// interface types.
		ft := m.Type
		skip := 0
		if subject.Kind() != reflect.Interface {
			skip = 1
		}
		if _, err := signatureOf(ft, skip); err != "" {
			return fmt.Sprintf("method %q: %s", h.name, err), false
		}
		return "", true
	case handlerFunc:
		if !h.fn.IsValid() || h.fn.Kind() != reflect.Func || h.fn.IsNil() {
			return fmt.Sprintf("handler %s is not a function", h.name), false
		}
		ft := h.fn.Type()
		if ft.NumIn() == 0 {
			return fmt.Sprintf("handler %s must take the subject as first argument", h.name), false
		}
		if _, ok := embedPath(subject, ft.In(0)); !ok {
			return fmt.Sprintf("handler %s: %s is not reachable from %s", h.name, ft.In(0), subject), false
		}
		if _, err := signatureOf(ft, 1); err != "" {
			return fmt.Sprintf("handler %s: %s", h.name, err), false
		}
		return "", true
	default:
		return "need a handler", false
	}
}

// signatureOf classifies ft once its first skip parameters are ignored.
func signatureOf(ft reflect.Type, skip int) (Signature, string) {
	if ft.IsVariadic() {
		return 0, "variadic handlers are not supported"
	}
	if ft.NumOut() != 0 {
		return 0, "handlers must not return values"
	}
	switch ft.NumIn() - skip {
	case 0:
		return SignatureNone, ""
	case 1:
		if !errorType.AssignableTo(ft.In(skip)) {
			return 0, fmt.Sprintf("parameter %s does not accept error", ft.In(skip))
		}
		return SignatureError, ""
	default:
		return 0, "handlers take at most one error parameter"
	}
}

// bind adapts h to a uniform func(error) running against subject. The
// signature is resolved here, once per bind, not on every call.
func (h Handler) bind(subject reflect.Value) func(error) {
	switch h.kind {
	case handlerMethod:
		m := subject.MethodByName(h.name)
		if !m.IsValid() {
			panic(configErrorf("", h.name, "%s has no exported method %q", subject.Type(), h.name))
		}
		sig, msg := signatureOf(m.Type(), 0)
		if msg != "" {
			panic(configErrorf("", h.name, "method %q on %s: %s", h.name, subject.Type(), msg))
		}
		if sig == SignatureNone {
			return func(error) { m.Call(nil) }
		}
		return func(err error) { m.Call([]reflect.Value{errorValue(err, m.Type().In(0))}) }
	case handlerFunc:
		ft := h.fn.Type()
		recv, ok := reach(subject, ft.In(0))
		if !ok {
			panic(configErrorf("", h.name, "handler %s: cannot reach %s from %s", h.name, ft.In(0), subject.Type()))
		}
		sig, _ := signatureOf(ft, 1)
		fn := h.fn
		if sig == SignatureNone {
			return func(error) { fn.Call([]reflect.Value{recv}) }
		}
		return func(err error) { fn.Call([]reflect.Value{recv, errorValue(err, ft.In(1))}) }
	default:
		panic(configErrorf("", nil, "need a handler"))
	}
}

// errorValue converts err into a reflect.Value of type t (error or an
// interface error is assignable to), keeping nil errors typed.
func errorValue(err error, t reflect.Type) reflect.Value {
	if err == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(&err).Elem().Convert(t)
}

// embedPath finds how to reach a value of type want from a value of type
// from: directly (assignable), or through a chain of exported embedded
// fields. The returned path lists field indexes; a trailing -1 means "take
// the address of the field reached".
func embedPath(from, want reflect.Type) ([]int, bool) {
	if from.AssignableTo(want) {
		return nil, true
	}
	type node struct {
		t           reflect.Type
		path        []int
		addressable bool
	}
	seen := make(map[reflect.Type]bool)
	queue := []node{{t: from}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		t, addressable := n.t, n.addressable
		if t.Kind() == reflect.Pointer {
			t, addressable = t.Elem(), true
		}
		if t.Kind() != reflect.Struct || seen[t] {
			continue
		}
		seen[t] = true
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.Anonymous || !f.IsExported() {
				continue
			}
			path := append(append([]int(nil), n.path...), i)
			if f.Type.AssignableTo(want) {
				return path, true
			}
			if addressable && reflect.PointerTo(f.Type).AssignableTo(want) {
				return append(path, -1), true
			}
			queue = append(queue, node{t: f.Type, path: path, addressable: addressable})
		}
	}
	return nil, false
}

// reach applies embedPath to a concrete value.
func reach(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	path, ok := embedPath(v.Type(), want)
	if !ok {
		return reflect.Value{}, false
	}
	for _, i := range path {
		if i == -1 {
			return v.Addr(), true
		}
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v, true
}
