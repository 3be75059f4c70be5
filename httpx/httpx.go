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

package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/encoding/protojson"

	"dirpx.dev/rescue"
	"dirpx.dev/rescue/apis"
	"dirpx.dev/rescue/code"
	"dirpx.dev/rescue/mapper"
)

// Metadata keys set on the ErrorInfo body.
const (
	MetaClass     = "class"
	MetaErrorType = "error_type"
	MetaCode      = "code"
	MetaReason    = "reason"
	MetaErrorID   = "error_id"
)

// Option configures a Handler.
type Option func(*config)

type config struct {
	mapper apis.Mapper
	domain string
	expose bool
	logger *slog.Logger
}

// WithMapper sets the mapper used to pick the status of rescued errors.
// Defaults to mapper.Default.
func WithMapper(m apis.Mapper) Option {
	return func(c *config) {
		if m != nil {
			c.mapper = m
		}
	}
}

// WithDomain sets ErrorInfo.Domain in error bodies.
func WithDomain(domain string) Option {
	return func(c *config) { c.domain = domain }
}

// WithLogger sets the logger that reports errors nothing rescued, with the
// error_id sent to the client. Rescued errors are not logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithErrorTypes adds the Go type and class of rescued errors to the
// ErrorInfo metadata. Off by default: it leaks implementation details.
func WithErrorTypes() Option {
	return func(c *config) { c.expose = true }
}

// Handler serves requests with a per-request host of type S.
//
// For every request, newHost builds the host (typically a struct holding the
// ResponseWriter and the Request) and serve runs against it. An error
// returned by serve is dispatched to the host's rescue class:
//
//   - if a rescue handler wrote a response, nothing else happens;
//   - if the error was rescued without a response, the status is resolved
//     through the mapper and an errdetails.ErrorInfo JSON body is written;
//   - if nothing rescued it, the client gets a 500 with an "INTERNAL" body
//     and no error details.
//
// Every error body carries a random error_id, also logged for unrescued
// errors, so reports can be matched with server logs.
//
// Errors returned after serve already wrote a response are dropped.
func Handler[S rescue.Rescuable](newHost func(http.ResponseWriter, *http.Request) S, serve func(S) error, opts ...Option) http.Handler {
	cfg := &config{mapper: mapper.Default, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(cfg)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &recorder{ResponseWriter: w}
		host := newHost(rec, r)
		err := serve(host)
		if err == nil || rec.wrote {
			return
		}
		handled := rescue.RescueWithHandler(host, err)
		if rec.wrote {
			return
		}
		if handled == nil {
			id := uuid.NewString()
			cfg.logger.Error("unhandled error",
				slog.String("error_id", id),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
			writeInfo(rec, http.StatusInternalServerError, &errdetails.ErrorInfo{
				Reason:   strings.ToUpper(string(code.Internal)),
				Domain:   cfg.domain,
				Metadata: map[string]string{MetaErrorID: id},
			})
			return
		}
		status, info := cfg.info(host.RescueClass(), handled)
		writeInfo(rec, status, info)
	})
}

// info resolves the status and body of a rescued error.
func (c *config) info(class *rescue.Class, handled error) (int, *errdetails.ErrorInfo) {
	cd, rs, st := mapper.Resolve(c.mapper, handled)
	md := map[string]string{MetaCode: string(cd), MetaErrorID: uuid.NewString()}
	if rs != "" {
		md[MetaReason] = string(rs)
	}
	if c.expose {
		md[MetaClass] = class.Name()
		md[MetaErrorType] = fmt.Sprintf("%T", handled)
	}
	return st.HTTP, &errdetails.ErrorInfo{
		Reason:   strings.ToUpper(string(cd)),
		Domain:   c.domain,
		Metadata: md,
	}
}

// writeInfo sends info as JSON with the given status.
func writeInfo(w http.ResponseWriter, status int, info *errdetails.ErrorInfo) {
	b, err := protojson.Marshal(info)
	if err != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// Decode parses an error body written by Handler.
func Decode(body []byte) (*errdetails.ErrorInfo, error) {
	info := &errdetails.ErrorInfo{}
	if err := protojson.Unmarshal(body, info); err != nil {
		return nil, fmt.Errorf("httpx: decode error body: %w", err)
	}
	return info, nil
}

// recorder notes whether a response was started.
type recorder struct {
	http.ResponseWriter
	wrote bool
}

func (r *recorder) WriteHeader(status int) {
	r.wrote = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.wrote = true
	return r.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
