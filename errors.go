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

package rescue

import (
	"errors"
	"fmt"

	"dirpx.dev/rescue/code"
)

// ErrConfiguration is the sentinel every registration mistake matches with
// errors.Is. Registration fails loudly and immediately; dispatch never
// reports configuration problems.
var ErrConfiguration = errors.New("rescue: configuration error")

// ConfigError describes a misuse of the setup API: a classifier key that is
// neither a Classifier nor a name, a missing or malformed handler, an invalid
// class declaration.
//
// It matches ErrConfiguration with errors.Is and implements apis.CodedError
// with code.Invalid.
type ConfigError struct {
	// Class is the name of the class being configured. May be empty.
	Class string

	// Subject is the offending value (key, handler, type), if any.
	Subject any

	// Message explains what is wrong.
	Message string

	// Cause holds the underlying error, if any.
	Cause error
}

func configErrorf(class string, subject any, format string, args ...any) *ConfigError {
	return &ConfigError{Class: class, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// Error implements the built-in error interface.
//
// The format is:
//
//	rescue: <class>: <message>
//
// with the class part omitted when unknown.
func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Class == "" {
		return "rescue: " + e.Message
	}
	return fmt.Sprintf("rescue: %s: %s", e.Class, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrConfiguration.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

// ErrorCode implements apis.CodedError.
func (e *ConfigError) ErrorCode() string { return string(code.Invalid) }
