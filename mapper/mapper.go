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

package mapper

import (
	"fmt"
	"maps"
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/rescue/apis"
	"dirpx.dev/rescue/code"
	"dirpx.dev/rescue/internal/segmenttrie"
	"dirpx.dev/rescue/reason"
)

// New builds an immutable apis.Mapper from the library defaults adjusted by
// opts. It fails when a prefix rule is malformed.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}
	h, err := freeze("HTTP", b.http, http.StatusInternalServerError)
	if err != nil {
		return nil, err
	}
	g, err := freeze("gRPC", b.grpc, codes.Internal)
	if err != nil {
		return nil, err
	}
	return &mapper{http: h, grpc: g}, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Default is the mapper with library defaults only.
var Default = MustNew()

// table is the frozen rule set of one transport.
type table[T any] struct {
	overrides map[code.Code]T
	prefixes  map[code.Code]*segmenttrie.Trie[T]
	defaults  map[code.Code]T
	fallback  T
}

func freeze[T any](transport string, r rules[T], fallback T) (table[T], error) {
	t := table[T]{
		overrides: maps.Clone(r.overrides),
		prefixes:  make(map[code.Code]*segmenttrie.Trie[T], len(r.prefixes)),
		defaults:  maps.Clone(r.defaults),
		fallback:  fallback,
	}
	for c, rs := range r.prefixes {
		tr := segmenttrie.New[T]()
		for _, pr := range rs {
			p, err := reason.ParsePrefix(pr.prefix)
			if err != nil {
				return t, fmt.Errorf("mapper: invalid %s reason prefix %q for code %q: %w", transport, pr.prefix, c, err)
			}
			if err := tr.Insert(p, pr.val); err != nil {
				return t, fmt.Errorf("mapper: cannot insert %s prefix %q for code %q: %w", transport, p, c, err)
			}
		}
		t.prefixes[c] = tr
	}
	return t, nil
}

func (t table[T]) resolve(c code.Code, r reason.Reason) T {
	if v, ok := t.overrides[c]; ok {
		return v
	}
	if tr := t.prefixes[c]; tr != nil && r != reason.Empty {
		if v, _, ok := tr.Match(string(r)); ok {
			return v
		}
	}
	if v, ok := t.defaults[c]; ok {
		return v
	}
	return t.fallback
}

type mapper struct {
	http table[int]
	grpc table[codes.Code]
}

var _ apis.Mapper = (*mapper)(nil)

// HTTPStatus resolves an HTTP status for the given code and reason.
func (m *mapper) HTTPStatus(c code.Code, r reason.Reason) int {
	return m.http.resolve(c, r)
}

// GRPCStatus resolves a gRPC status for the given code and reason.
func (m *mapper) GRPCStatus(c code.Code, r reason.Reason) codes.Code {
	return m.grpc.resolve(c, r)
}

// Status resolves both statuses from the same inputs.
func (m *mapper) Status(c code.Code, r reason.Reason) apis.Status {
	return apis.Status{HTTP: m.HTTPStatus(c, r), GRPC: m.GRPCStatus(c, r)}
}

// Resolve returns the statuses of a rescued error: its code (apis.CodedError,
// code.Internal otherwise) and its reason (apis.ReasonedError) are read from
// the error itself. Malformed codes and reasons are treated as missing.
func Resolve(m apis.Mapper, err error) (code.Code, reason.Reason, apis.Status) {
	if m == nil {
		m = Default
	}
	c := code.Internal
	if ce, ok := err.(apis.CodedError); ok {
		if parsed, perr := code.Parse(ce.ErrorCode()); perr == nil {
			c = parsed
		}
	}
	r := reason.Empty
	if re, ok := err.(apis.ReasonedError); ok {
		if parsed, perr := reason.Parse(re.ErrorReason()); perr == nil {
			r = parsed
		}
	}
	return c, r, m.Status(c, r)
}
