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

// Package classify provides rescue classifiers for errors that describe
// themselves: by code (apis.CodedError), by reason prefix
// (apis.ReasonedError) and by gRPC status code, plus combinators.
//
// Like every rescue classifier, these only look at the error they are given.
// The dispatcher walks the cause chain, so a wrapped coded error is matched
// when its level is reached:
//
//	gateClass.MustRescueFrom(
//	    rescue.On(classify.Code(code.Unavailable, code.Timeout)),
//	    rescue.Method("Retry"),
//	)
//	gateClass.MustRescueFrom(
//	    rescue.On(classify.MustReason("storage.pg", "storage.*.timeout")),
//	    rescue.Method("FailOver"),
//	)
package classify
