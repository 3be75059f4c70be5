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

package gate

import (
	"errors"
	"fmt"

	"dirpx.dev/rescue/code"
)

// Breach is raised when a wall of the gate gives way.
type Breach struct{ Wall string }

func (e *Breach) Error() string { return "breach at " + e.Wall + " wall" }

// Flood is raised when water reaches the gate room.
type Flood struct{ Level int }

func (e *Flood) Error() string { return fmt.Sprintf("flood level %d", e.Level) }

// PowerFailure is raised when a grid stops feeding the gate.
type PowerFailure struct{ Grid string }

func (e *PowerFailure) Error() string       { return "power failure on " + e.Grid + " grid" }
func (e *PowerFailure) ErrorCode() string   { return string(code.Unavailable) }
func (e *PowerFailure) ErrorReason() string { return "power.grid." + e.Grid }

// Fault reports the operation that failed; Err, exposed as Cause, tells
// why. Error does not include the cause, so a corrupted report whose cause
// chain loops back onto itself still prints.
type Fault struct {
	Op  string
	Err error
}

func (f *Fault) Error() string { return f.Op + " failed" }

func (f *Fault) Cause() error { return f.Err }

// ErrInvalidGate is returned by Site.Add for empty or duplicate names.
var ErrInvalidGate = errors.New("gate: invalid gate")

// ErrUnknownGate is matched by every *UnknownGateError.
var ErrUnknownGate = errors.New("gate: unknown gate")

// UnknownGateError is returned when a site has no gate of that name.
type UnknownGateError struct{ Name string }

func (e *UnknownGateError) Error() string       { return fmt.Sprintf("gate %q not found", e.Name) }
func (e *UnknownGateError) ErrorCode() string   { return string(code.NotFound) }
func (e *UnknownGateError) ErrorReason() string { return "gate.lookup" }

func (e *UnknownGateError) Is(target error) bool { return target == ErrUnknownGate }
