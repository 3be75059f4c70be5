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

package reason

import (
	"errors"
	"regexp"
	"strings"
)

// Reason is the canonical, validated representation of an error reason.
type Reason string

// MinLength and MaxLength define the allowed length range for a non-empty
// reason.
const (
	MinLength = 3
	MaxLength = 128
)

// reasonFmt accepts 1 to 4 dot-separated segments of [a-z][a-z0-9_]*.
const reasonFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`

var reasonRe = regexp.MustCompile(reasonFmt)

var (
	// ErrReasonInvalidFormat is returned when a reason does not conform to
	// the expected format.
	ErrReasonInvalidFormat = errors.New("rescue: invalid reason format")
	// ErrReasonInvalidLength is returned when a reason is too short or too long.
	ErrReasonInvalidLength = errors.New("rescue: invalid reason length")
	// ErrPrefixInvalid is returned by ParsePrefix for malformed prefixes.
	ErrPrefixInvalid = errors.New("rescue: invalid reason prefix")
)

// Empty is the zero-value reason, meaning "not provided".
var Empty Reason = ""

// Normalize trims spaces, lowercases, converts "/" to "." and "-" to "_".
// It does NOT guarantee validity.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "/", ".")
	return strings.ReplaceAll(s, "-", "_")
}

// Parse normalizes and validates s. The empty string yields Empty.
func Parse(s string) (Reason, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Reason(s), nil
}

// MustParse is the panic-on-error variant of Parse.
// Unlike Parse it rejects the empty string.
func MustParse(s string) Reason {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if r == Empty {
		panic("rescue: empty reason in MustParse")
	}
	return r
}

// Validate checks whether r is in canonical form. Empty is valid.
func Validate(r Reason) error {
	if r == Empty {
		return nil
	}
	return validate(string(r))
}

// String returns the canonical string representation of the reason.
func (r Reason) String() string {
	return string(r)
}

// ParsePrefix normalizes and validates a reason prefix.
//
// A prefix follows the reason segment rules, except that a segment may be "*"
// (exactly one arbitrary segment). Empty prefixes and prefixes made only of
// wildcards are rejected.
func ParsePrefix(raw string) (string, error) {
	p := Normalize(raw)
	if p == "" {
		return "", ErrPrefixInvalid
	}
	allWild := true
	for _, seg := range strings.Split(p, ".") {
		if !ValidSegment(seg, true) {
			return "", ErrPrefixInvalid
		}
		if seg != "*" {
			allWild = false
		}
	}
	if allWild {
		return "", ErrPrefixInvalid
	}
	return p, nil
}

// ValidSegment reports whether seg matches [a-z][a-z0-9_]*, or is "*" when
// allowWildcard is set.
func ValidSegment(seg string, allowWildcard bool) bool {
	if seg == "" {
		return false
	}
	if allowWildcard && seg == "*" {
		return true
	}
	if seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrReasonInvalidLength
	}
	if !reasonRe.MatchString(s) {
		return ErrReasonInvalidFormat
	}
	return nil
}
