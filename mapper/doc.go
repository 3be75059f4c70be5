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

// Package mapper turns the code and reason of a rescued error into HTTP and
// gRPC statuses. The transport adapters (grpcx, httpx) use it to answer
// requests whose error was handled by a rescue class.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the code;
//  2. per-code longest-prefix match on the reason;
//  3. per-code default (library or user-adjusted);
//  4. global fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware: "storage.pg" matches
// "storage.pg.connect_timeout" but not "storage.pgx", and "*" matches
// exactly one segment. The more specific prefix wins.
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride(code.Canceled, 499),
//	    mapper.WithHTTPPrefix(code.Unavailable, "storage.pg", http.StatusBadGateway),
//	)
//
// All inputs are copied during New; the result is a snapshot safe to share
// across goroutines.
package mapper
