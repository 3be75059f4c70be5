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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drill results.
const (
	ResultRescued   = "rescued"
	ResultUnhandled = "unhandled"
)

// Metrics counts drills.
type Metrics struct {
	// Drills tracks drills per gate class, scenario and result.
	Drills *prometheus.CounterVec

	// Rescued tracks rescued faults per gate class and the type of the
	// error a handler matched.
	Rescued *prometheus.CounterVec
}

// NewMetrics registers the drill metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Drills: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatekeeper_drills_total",
				Help: "Total number of drills run",
			},
			[]string{"class", "scenario", "result"},
		),
		Rescued: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatekeeper_rescued_total",
				Help: "Total number of faults rescued, by handled error type",
			},
			[]string{"class", "error_type"},
		),
	}
}
