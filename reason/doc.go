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

// Package reason defines an optional, structured refinement for error codes.
//
// Where a code answers "what kind of error is this?", a reason answers "in
// which component or operation did it happen?", e.g.:
//
//   - "storage.pg.connect_timeout"
//   - "auth.jwt.verify"
//
// Reasons are dot-separated, 1 to 4 segments, each matching [a-z][a-z0-9_]*.
// The empty reason is valid and means "no refinement".
//
// ParsePrefix validates reason prefixes, which may additionally use "*" as a
// single-segment wildcard. classify.Reason uses them to register rescue
// handlers for whole families of reasons.
package reason
