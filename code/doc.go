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

// Package code provides parsing, normalization and validation for rescue
// error codes.
//
// A code is the top-level, machine-readable category of an error, such as
// "invalid", "not_found" or "unavailable". Errors expose it through
// apis.CodedError; classify.Code registers rescue handlers against it and the
// mapper package turns it into HTTP and gRPC statuses.
//
// Codes are lowercased, underscore-separated and 3 to 64 characters long.
// Empty codes are NOT allowed.
package code
