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

// CodedError represents an error that is classified into a well-defined,
// machine-readable error code, such as "invalid", "not_found" or
// "unavailable".
//
// Codes are intended to be stable and enumerable. classify.Code matches on
// them, and the transport adapters use them to pick HTTP and gRPC statuses for
// rescued errors.
type CodedError interface {
	error

	// ErrorCode returns the machine-readable error code.
	//
	// The returned value MUST be non-empty and already normalized according
	// to the rules of the rescue/code package.
	ErrorCode() string
}

// ReasonedError represents an error that provides a more specific,
// dot-separated reason in addition to its code.
//
// While the code answers "what kind of error is this?", the reason answers
// "which exact subcase happened?":
//
//	code:   "unavailable"
//	reason: "storage.pg.connect_timeout"
//
// classify.Reason matches reason prefixes segment by segment.
type ReasonedError interface {
	error

	// ErrorReason returns the specific error reason. It MAY be empty.
	ErrorReason() string
}

// CausedError represents an error that exposes its underlying cause in the
// github.com/pkg/errors style.
//
// The dispatcher prefers Cause over Unwrap when walking from an unmatched
// error to the error that triggered it, so types that distinguish a logical
// cause from a wrapped value can say so explicitly.
type CausedError interface {
	error

	// Cause returns the underlying error that triggered this error, if any.
	// May return nil.
	Cause() error
}
