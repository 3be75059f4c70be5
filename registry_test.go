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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"slices"
	"testing"
)

type causer struct {
	msg   string
	cause error
	inner error
}

func (e *causer) Error() string { return e.msg }
func (e *causer) Cause() error  { return e.cause }
func (e *causer) Unwrap() error { return e.inner }

func TestRegistry_AppendDoesNotAlias(t *testing.T) {
	var base Registry
	base = base.Append(Entry{Key: NameKey("A")}, Entry{Key: NameKey("B")})

	// Leave spare capacity in base's backing array on purpose.
	grown := make([]Entry, 2, 8)
	copy(grown, base.entries)
	base = Registry{entries: grown}

	left := base.Append(Entry{Key: NameKey("L")})
	right := base.Append(Entry{Key: NameKey("R")})

	if got := base.Keys(); !slices.Equal(got, []string{"A", "B"}) {
		t.Fatalf("base.Keys() = %v", got)
	}
	if got := left.Keys(); !slices.Equal(got, []string{"A", "B", "L"}) {
		t.Fatalf("left.Keys() = %v", got)
	}
	if got := right.Keys(); !slices.Equal(got, []string{"A", "B", "R"}) {
		t.Fatalf("right.Keys() = %v", got)
	}
}

func TestRegistry_EntriesIsACopy(t *testing.T) {
	r := Registry{}.Append(Entry{Key: NameKey("A")})
	es := r.Entries()
	es[0].Key = NameKey("changed")
	if r.At(0).Key.String() != "A" {
		t.Fatalf("Entries() leaked the backing array")
	}
}

type relay struct{ ran []string }

func (r *relay) A() { r.ran = append(r.ran, "a") }
func (r *relay) B() { r.ran = append(r.ran, "b") }

func TestRegistry_EntriesCopiesHandlers(t *testing.T) {
	parent := NewClass[*relay]("Relay")
	parent.MustRescueFrom(On(Type[error]()), Method("A"))
	child := Derive[*relay](parent, "ChildRelay")

	es := child.Registry().Entries()
	es[0].Handlers[0] = Method("B")
	e := child.Registry().At(0)
	e.Handlers[0] = Method("B")

	for _, c := range []*Class{parent, child} {
		r := &relay{}
		if c.RescueWithHandler(r, io.EOF) == nil {
			t.Fatalf("%s did not rescue", c.Name())
		}
		if !slices.Equal(r.ran, []string{"a"}) {
			t.Fatalf("%s ran %v after editing a copy of its entries, want [a]", c.Name(), r.ran)
		}
	}
}

func TestRegistry_ZeroValue(t *testing.T) {
	var r Registry
	if r.Len() != 0 || len(r.Keys()) != 0 {
		t.Fatalf("zero registry is not empty")
	}
	if got := r.Append(); got.Len() != 0 {
		t.Fatalf("Append() with no entries changed the registry")
	}
}

func TestKey(t *testing.T) {
	tk := TypeKey(Type[*fs.PathError]())
	if tk.Kind() != KeyType || tk.String() != "*fs.PathError" {
		t.Fatalf("TypeKey = %v (%d)", tk, tk.Kind())
	}
	if _, ok := tk.Classifier(); !ok {
		t.Fatalf("TypeKey must carry its classifier")
	}

	nk := NameKey("PathError")
	if nk.Kind() != KeyName || nk.String() != "PathError" {
		t.Fatalf("NameKey = %v (%d)", nk, nk.Kind())
	}
	if _, ok := nk.Classifier(); ok {
		t.Fatalf("NameKey must not carry a classifier")
	}
}

func TestDerive_CopiesRegistry(t *testing.T) {
	type Base struct{}
	type Child struct{ Base }

	parent := NewClass[*Base]("Base")
	parent.MustRescueFrom(On("One"), Do(func(*Base) {}))

	child := Derive[*Child](parent, "Child")
	child.MustRescueFrom(On("Two"), Do(func(*Child) {}))
	parent.MustRescueFrom(On("Three"), Do(func(*Base) {}))

	if got := parent.Keys(); !slices.Equal(got, []string{"One", "Three"}) {
		t.Fatalf("parent.Keys() = %v", got)
	}
	if got := child.Keys(); !slices.Equal(got, []string{"One", "Two"}) {
		t.Fatalf("child.Keys() = %v", got)
	}
	if child.Parent() != parent || parent.Parent() != nil {
		t.Fatalf("unexpected parents")
	}
	if child.String() != "Child < Base" || parent.String() != "Base" {
		t.Fatalf("String() = %q, %q", child.String(), parent.String())
	}
}

func TestNewClass_EmptyRegistry(t *testing.T) {
	c := NewClass[*os.File]("File")
	if c.Registry().Len() != 0 {
		t.Fatalf("fresh class has entries")
	}
	if c.Subject() != reflect.TypeFor[*os.File]() {
		t.Fatalf("Subject() = %v", c.Subject())
	}
}

func TestCause(t *testing.T) {
	root := errors.New("root")
	other := errors.New("other")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"plain", root, nil},
		{"wrapped", fmt.Errorf("ctx: %w", root), root},
		{"cause wins over unwrap", &causer{msg: "c", cause: root, inner: other}, root},
		{"joined has no single cause", errors.Join(root, other), nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cause(tt.err); got != tt.want {
				t.Fatalf("Cause() = %v, want %v", got, tt.want)
			}
		})
	}
}

type sliceError []string

func (e sliceError) Error() string { return fmt.Sprint([]string(e)) }
func (e sliceError) Unwrap() error { return io.EOF }

func TestVisited_NonComparableErrors(t *testing.T) {
	v := newVisited()
	v.add(sliceError{"a"})
	if v.has(sliceError{"a"}) {
		t.Fatalf("non-comparable errors must not be tracked")
	}
	v.add(io.EOF)
	if !v.has(io.EOF) {
		t.Fatalf("io.EOF not tracked")
	}
}

func TestDispatch_NonComparableErrorInChain(t *testing.T) {
	type host struct{ got error }
	c := NewClass[*host]("Host")
	c.MustRescueFrom(On(Sentinel("EOF", io.EOF)), Func(func(h *host, err error) { h.got = err }))

	h := &host{}
	if got := c.RescueWithHandler(h, sliceError{"x"}); got != io.EOF || h.got != io.EOF {
		t.Fatalf("RescueWithHandler = %v (handler saw %v), want io.EOF", got, h.got)
	}
}

func TestEmbedPath(t *testing.T) {
	type Inner struct{}
	type Middle struct{ Inner }
	type Outer struct{ *Middle }
	type hidden struct{}
	type Private struct{ hidden }

	tests := []struct {
		name string
		from reflect.Type
		want reflect.Type
		path []int
		ok   bool
	}{
		{"same", reflect.TypeFor[*Inner](), reflect.TypeFor[*Inner](), nil, true},
		{"value field", reflect.TypeFor[Middle](), reflect.TypeFor[Inner](), []int{0}, true},
		{"address of field", reflect.TypeFor[*Middle](), reflect.TypeFor[*Inner](), []int{0, -1}, true},
		{"not addressable", reflect.TypeFor[Middle](), reflect.TypeFor[*Inner](), nil, false},
		{"through pointer", reflect.TypeFor[Outer](), reflect.TypeFor[*Inner](), []int{0, 0, -1}, true},
		{"interface", reflect.TypeFor[*os.PathError](), reflect.TypeFor[error](), nil, true},
		{"unexported embed", reflect.TypeFor[*Private](), reflect.TypeFor[*hidden](), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := embedPath(tt.from, tt.want)
			if ok != tt.ok || !slices.Equal(path, tt.path) {
				t.Fatalf("embedPath = %v, %v; want %v, %v", path, ok, tt.path, tt.ok)
			}
		})
	}
}

func TestReach_NilEmbeddedPointer(t *testing.T) {
	type Inner struct{}
	type Middle struct{ Inner }
	type Outer struct{ *Middle }

	if _, ok := reach(reflect.ValueOf(Outer{}), reflect.TypeFor[*Inner]()); ok {
		t.Fatalf("reach through a nil embedded pointer must fail")
	}
	o := Outer{Middle: &Middle{}}
	v, ok := reach(reflect.ValueOf(o), reflect.TypeFor[*Inner]())
	if !ok || v.Interface().(*Inner) != &o.Middle.Inner {
		t.Fatalf("reach = %v, %v", v, ok)
	}
}

func TestSignature_String(t *testing.T) {
	if SignatureNone.String() != "none" || SignatureError.String() != "error" {
		t.Fatalf("unexpected Signature names")
	}
}
