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

package grpcx

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

	"dirpx.dev/rescue"
	"dirpx.dev/rescue/apis"
	"dirpx.dev/rescue/mapper"
)

// Metadata keys set on the attached ErrorInfo.
const (
	MetaClass     = "class"
	MetaErrorType = "error_type"
	MetaCode      = "code"
	MetaReason    = "reason"
	MetaMethod    = "method"
	MetaErrorID   = "error_id"
)

// MetaFn adds request-specific metadata (request IDs, tenant, ...) to the
// ErrorInfo of a rescued error. It must not modify the built-in keys.
type MetaFn func(ctx context.Context, handled error) map[string]string

// Option configures the interceptors.
type Option func(*config)

type config struct {
	mapper apis.Mapper
	domain string
	meta   MetaFn
}

// WithMapper sets the mapper used to pick the gRPC code of rescued errors
// that do not carry a gRPC status themselves. Defaults to mapper.Default.
func WithMapper(m apis.Mapper) Option {
	return func(c *config) {
		if m != nil {
			c.mapper = m
		}
	}
}

// WithDomain sets ErrorInfo.Domain, usually the service's DNS name.
func WithDomain(domain string) Option {
	return func(c *config) { c.domain = domain }
}

// WithMeta sets a function adding metadata to ErrorInfo.
func WithMeta(fn MetaFn) Option {
	return func(c *config) { c.meta = fn }
}

func newConfig(opts []Option) *config {
	c := &config{mapper: mapper.Default}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that passes
// handler errors to the service's rescue class.
//
// The service implementation (info.Server) must implement rescue.Rescuable;
// other services are left alone. An error no handler rescued is returned
// unchanged. A rescued error is returned as a gRPC status whose code comes
// from the error itself (GRPCStatus) or from the mapper, with an
// errdetails.ErrorInfo attached.
func UnaryServerInterceptor(opts ...Option) grpc.UnaryServerInterceptor {
	cfg := newConfig(opts)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return resp, cfg.rescue(ctx, info.Server, info.FullMethod, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor; the subject is the service implementation srv.
func StreamServerInterceptor(opts ...Option) grpc.StreamServerInterceptor {
	cfg := newConfig(opts)
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return cfg.rescue(ss.Context(), srv, info.FullMethod, err)
	}
}

func (c *config) rescue(ctx context.Context, srv any, method string, err error) error {
	r, ok := srv.(rescue.Rescuable)
	if !ok {
		return err
	}
	handled := rescue.RescueWithHandler(r, err)
	if handled == nil {
		return err
	}
	return c.status(ctx, r.RescueClass(), method, handled).Err()
}

type grpcStatusError interface {
	GRPCStatus() *gstatus.Status
}

// status builds the status returned for a rescued error.
func (c *config) status(ctx context.Context, class *rescue.Class, method string, handled error) *gstatus.Status {
	cd, rs, st := mapper.Resolve(c.mapper, handled)

	base := gstatus.New(st.GRPC, handled.Error())
	if se, ok := handled.(grpcStatusError); ok {
		if s := se.GRPCStatus(); s != nil && s.Code() != gcodes.OK {
			base = s
		}
	}

	md := map[string]string{}
	if c.meta != nil {
		for k, v := range c.meta(ctx, handled) {
			md[k] = v
		}
	}
	md[MetaErrorID] = uuid.NewString()
	md[MetaClass] = class.Name()
	md[MetaErrorType] = fmt.Sprintf("%T", handled)
	md[MetaCode] = string(cd)
	if rs != "" {
		md[MetaReason] = string(rs)
	}
	if method != "" {
		md[MetaMethod] = method
	}

	info := &errdetails.ErrorInfo{
		Reason:   strings.ToUpper(string(cd)),
		Domain:   c.domain,
		Metadata: md,
	}
	// Attaching can only fail on a broken message; keep the bare status then.
	if with, err := base.WithDetails(info); err == nil {
		return with
	}
	return base
}

// ErrorInfo pulls the errdetails.ErrorInfo out of a gRPC error, if present.
// Useful in tests and client code.
func ErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			return ei, true
		}
	}
	return nil, false
}
