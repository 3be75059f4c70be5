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

package classify

import (
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dirpx.dev/rescue"
	"dirpx.dev/rescue/apis"
	"dirpx.dev/rescue/code"
	"dirpx.dev/rescue/internal/segmenttrie"
	"dirpx.dev/rescue/reason"
)

// Code matches apis.CodedError errors whose code is one of codes. Codes are
// normalized before comparison.
func Code(codes ...code.Code) rescue.Classifier {
	set := make(map[string]struct{}, len(codes))
	names := make([]string, 0, len(codes))
	for _, c := range codes {
		n := code.Normalize(string(c))
		if _, dup := set[n]; dup {
			continue
		}
		set[n] = struct{}{}
		names = append(names, n)
	}
	return rescue.Match("code("+strings.Join(names, "|")+")", func(err error) bool {
		ce, ok := err.(apis.CodedError)
		if !ok {
			return false
		}
		_, hit := set[code.Normalize(ce.ErrorCode())]
		return hit
	})
}

// Reason matches apis.ReasonedError errors whose reason starts with one of
// prefixes, segment by segment: "storage.pg" matches
// "storage.pg.connect_timeout" but not "storage.pgx". A "*" segment matches
// any one segment.
func Reason(prefixes ...string) (rescue.Classifier, error) {
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("classify: reason: %w", reason.ErrPrefixInvalid)
	}
	tr := segmenttrie.New[struct{}]()
	names := make([]string, 0, len(prefixes))
	for _, raw := range prefixes {
		p, err := reason.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("classify: reason prefix %q: %w", raw, err)
		}
		if err := tr.Insert(p, struct{}{}); err != nil {
			return nil, fmt.Errorf("classify: reason prefix %q: %w", raw, err)
		}
		names = append(names, p)
	}
	return rescue.Match("reason("+strings.Join(names, "|")+")", func(err error) bool {
		re, ok := err.(apis.ReasonedError)
		if !ok {
			return false
		}
		_, _, hit := tr.Match(reason.Normalize(re.ErrorReason()))
		return hit
	}), nil
}

// MustReason is like Reason but panics on an invalid prefix.
func MustReason(prefixes ...string) rescue.Classifier {
	c, err := Reason(prefixes...)
	if err != nil {
		panic(err)
	}
	return c
}

// grpcStatusError is implemented by errors created with the grpc status
// package.
type grpcStatusError interface {
	error
	GRPCStatus() *status.Status
}

// GRPC matches errors carrying a gRPC status (a GRPCStatus method on the
// error itself) whose code is one of cs.
func GRPC(cs ...codes.Code) rescue.Classifier {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	return rescue.Match("grpc("+strings.Join(names, "|")+")", func(err error) bool {
		se, ok := err.(grpcStatusError)
		if !ok {
			return false
		}
		got := se.GRPCStatus().Code()
		for _, c := range cs {
			if got == c {
				return true
			}
		}
		return false
	})
}

// Any matches when at least one of cs matches.
func Any(cs ...rescue.Classifier) rescue.Classifier {
	return rescue.Match(combinedName("any", cs), func(err error) bool {
		for _, c := range cs {
			if c.Match(err) {
				return true
			}
		}
		return false
	})
}

// All matches when every one of cs matches. All() with no classifier never
// matches.
func All(cs ...rescue.Classifier) rescue.Classifier {
	return rescue.Match(combinedName("all", cs), func(err error) bool {
		if len(cs) == 0 {
			return false
		}
		for _, c := range cs {
			if !c.Match(err) {
				return false
			}
		}
		return true
	})
}

func combinedName(op string, cs []rescue.Classifier) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name()
	}
	return op + "(" + strings.Join(names, ", ") + ")"
}
