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
	"slices"
)

// ErrUnknownScenario is returned by Simulate for unknown scenario names.
var ErrUnknownScenario = errors.New("gate: unknown scenario")

// Scenarios lists the scenario names understood by Simulate.
var Scenarios = []string{"breach", "flood", "power", "jam", "loop"}

// Simulate returns the fault reported when opening a gate under the named
// scenario. "loop" yields a fault that is its own cause.
func Simulate(scenario string) (*Fault, error) {
	switch scenario {
	case "breach":
		return &Fault{Op: "open gate", Err: &Breach{Wall: "north"}}, nil
	case "flood":
		return &Fault{Op: "open gate", Err: &Flood{Level: 3}}, nil
	case "power":
		return &Fault{Op: "open gate", Err: fmt.Errorf("iris controller: %w", &PowerFailure{Grid: "east"})}, nil
	case "jam":
		return &Fault{Op: "open gate", Err: errors.New("iris mechanism jammed")}, nil
	case "loop":
		f := &Fault{Op: "self-test"}
		f.Err = f
		return f, nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownScenario, scenario, Scenarios)
	}
}

// Known reports whether scenario is understood by Simulate.
func Known(scenario string) bool { return slices.Contains(Scenarios, scenario) }
