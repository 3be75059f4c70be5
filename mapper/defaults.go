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
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/rescue/code"
)

// defaultHTTP holds the built-in HTTP status of every well-known code.
var defaultHTTP = map[code.Code]int{
	code.Internal:         http.StatusInternalServerError,
	code.Unavailable:      http.StatusServiceUnavailable,
	code.Overloaded:       http.StatusServiceUnavailable,
	code.DependencyFailed: http.StatusBadGateway,
	code.Timeout:          http.StatusGatewayTimeout,
	// Some proxies use the non-standard 499 instead.
	code.Canceled: http.StatusRequestTimeout,

	code.Invalid:            http.StatusBadRequest,
	code.Missing:            http.StatusBadRequest,
	code.Unsupported:        http.StatusBadRequest,
	code.NotFound:           http.StatusNotFound,
	code.AlreadyExists:      http.StatusConflict,
	code.Conflict:           http.StatusConflict,
	code.PreconditionFailed: http.StatusPreconditionFailed,

	code.Unauthenticated:  http.StatusUnauthorized,
	code.PermissionDenied: http.StatusForbidden,
	code.RateLimited:      http.StatusTooManyRequests,
}

// defaultGRPC holds the built-in gRPC status of every well-known code.
var defaultGRPC = map[code.Code]codes.Code{
	code.Internal:         codes.Internal,
	code.Unavailable:      codes.Unavailable,
	code.Overloaded:       codes.Unavailable,
	code.DependencyFailed: codes.FailedPrecondition,
	code.Timeout:          codes.DeadlineExceeded,
	code.Canceled:         codes.Canceled,

	code.Invalid:            codes.InvalidArgument,
	code.Missing:            codes.InvalidArgument,
	code.Unsupported:        codes.Unimplemented,
	code.NotFound:           codes.NotFound,
	code.AlreadyExists:      codes.AlreadyExists,
	code.Conflict:           codes.Aborted,
	code.PreconditionFailed: codes.FailedPrecondition,

	code.Unauthenticated:  codes.Unauthenticated,
	code.PermissionDenied: codes.PermissionDenied,
	code.RateLimited:      codes.ResourceExhausted,
}
