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
	"fmt"
	"log/slog"

	"dirpx.dev/rescue"
)

// Result is the outcome of one drill.
type Result struct {
	Gate     string
	Class    string
	Scenario string
	Fault    *Fault
	// Handled is the error a rescue handler matched, nil when the fault went
	// unhandled.
	Handled error
	// Events are the actions the gate took during this drill.
	Events []string
}

// Rescued reports whether a handler dealt with the fault.
func (r *Result) Rescued() bool { return r.Handled != nil }

// Drill simulates scenario on the gate added under name and dispatches the
// fault through the gate's class. An unhandled fault is a result, not an
// error: Drill fails only for unknown gates and scenarios.
func (s *Site) Drill(name, scenario string) (*Result, error) {
	p, err := s.find(name)
	if err != nil {
		return nil, err
	}
	fault, err := Simulate(scenario)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	before := len(p.host.Events())
	handled := rescue.RescueWithHandler(p.host, fault)
	events := p.host.Events()[before:]
	p.mu.Unlock()

	res := &Result{
		Gate:     name,
		Class:    p.host.RescueClass().Name(),
		Scenario: scenario,
		Fault:    fault,
		Handled:  handled,
		Events:   events,
	}
	s.observe(res)
	return res, nil
}

func (s *Site) observe(res *Result) {
	result := ResultUnhandled
	if res.Rescued() {
		result = ResultRescued
	}
	s.logger.Debug("drill finished",
		slog.String("gate", res.Gate),
		slog.String("scenario", res.Scenario),
		slog.String("result", result),
	)
	if s.metrics == nil {
		return
	}
	s.metrics.Drills.WithLabelValues(res.Class, res.Scenario, result).Inc()
	if res.Rescued() {
		s.metrics.Rescued.WithLabelValues(res.Class, fmt.Sprintf("%T", res.Handled)).Inc()
	}
}
