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

package code

// Generic codes.
const (
	// Internal is an unexpected failure inside the service itself.
	Internal Code = "internal"

	// Invalid means the input or configuration violates an invariant.
	// Registration mistakes (rescue.ConfigError) report this code.
	Invalid Code = "invalid"

	// Missing means a required value was not supplied.
	Missing Code = "missing"

	// Unsupported means the requested operation or option is not supported.
	Unsupported Code = "unsupported"
)

// Runtime and dependency codes.
const (
	// Unavailable means a required dependency is temporarily unreachable.
	Unavailable Code = "unavailable"

	// Timeout means the operation exceeded its time budget.
	Timeout Code = "timeout"

	// Canceled means the caller gave up on the operation.
	Canceled Code = "canceled"

	// DependencyFailed means a dependency answered, but with a failure.
	DependencyFailed Code = "dependency_failed"

	// Overloaded means the service is shedding load.
	Overloaded Code = "overloaded"
)

// Resource and state codes.
const (
	NotFound           Code = "not_found"
	AlreadyExists      Code = "already_exists"
	Conflict           Code = "conflict"
	PreconditionFailed Code = "precondition_failed"
)

// Access and rate codes.
const (
	Unauthenticated  Code = "unauthenticated"
	PermissionDenied Code = "permission_denied"
	RateLimited      Code = "rate_limited"
)
