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
	"google.golang.org/grpc/codes"

	"dirpx.dev/rescue/code"
)

// Option configures the Mapper at build time. Options are applied to an
// internal builder and then frozen into an immutable Mapper.
type Option func(*builder)

type prefixRule[T any] struct {
	prefix string
	val    T
}

// rules holds the user adjustments for one transport.
type rules[T any] struct {
	defaults  map[code.Code]T
	overrides map[code.Code]T
	prefixes  map[code.Code][]prefixRule[T]
}

func newRules[T any](seed map[code.Code]T) rules[T] {
	r := rules[T]{
		defaults:  make(map[code.Code]T, len(seed)),
		overrides: make(map[code.Code]T),
		prefixes:  make(map[code.Code][]prefixRule[T]),
	}
	for k, v := range seed {
		r.defaults[k] = v
	}
	return r
}

type builder struct {
	http rules[int]
	grpc rules[codes.Code]
}

func newBuilder() *builder {
	return &builder{
		http: newRules(defaultHTTP),
		grpc: newRules(defaultGRPC),
	}
}

// WithHTTPDefault replaces the default HTTP status of c.
func WithHTTPDefault(c code.Code, status int) Option {
	return func(b *builder) { b.http.defaults[norm(c)] = status }
}

// WithGRPCDefault replaces the default gRPC status of c.
func WithGRPCDefault(c code.Code, status codes.Code) Option {
	return func(b *builder) { b.grpc.defaults[norm(c)] = status }
}

// WithHTTPOverride forces the HTTP status of c, whatever the reason.
func WithHTTPOverride(c code.Code, status int) Option {
	return func(b *builder) { b.http.overrides[norm(c)] = status }
}

// WithGRPCOverride forces the gRPC status of c, whatever the reason.
func WithGRPCOverride(c code.Code, status codes.Code) Option {
	return func(b *builder) { b.grpc.overrides[norm(c)] = status }
}

// WithHTTPPrefix adds a reason prefix rule for c. Use "*" to match a single
// segment.
func WithHTTPPrefix(c code.Code, prefix string, status int) Option {
	return func(b *builder) {
		c = norm(c)
		b.http.prefixes[c] = append(b.http.prefixes[c], prefixRule[int]{prefix, status})
	}
}

// WithGRPCPrefix adds a reason prefix rule for c. Use "*" to match a single
// segment.
func WithGRPCPrefix(c code.Code, prefix string, status codes.Code) Option {
	return func(b *builder) {
		c = norm(c)
		b.grpc.prefixes[c] = append(b.grpc.prefixes[c], prefixRule[codes.Code]{prefix, status})
	}
}

func norm(c code.Code) code.Code { return code.Code(code.Normalize(string(c))) }
