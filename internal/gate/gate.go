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
	"slices"
	"sync"

	"dirpx.dev/rescue"
	"dirpx.dev/rescue/classify"
	"dirpx.dev/rescue/code"
)

// Host is a gate built by a Site.
type Host interface {
	rescue.Rescuable
	Events() []string
}

// Site declares the rescue classes of its gates and keeps the gates added to
// it. Every gate built by a site shares the site's logger.
type Site struct {
	logger     *slog.Logger
	metrics    *Metrics
	gate       *rescue.Class
	reinforced *rescue.Class

	mu    sync.RWMutex
	gates map[string]*post
}

// post serializes drills on one gate.
type post struct {
	mu   sync.Mutex
	host Host
}

// SiteOption configures a Site.
type SiteOption func(*Site)

// WithMetrics makes the site count its drills.
func WithMetrics(m *Metrics) SiteOption {
	return func(s *Site) { s.metrics = m }
}

// NewSite declares the Gate and ReinforcedGate classes.
//
// A Gate seals its doors on a breach and switches to backup power on any
// unavailable dependency. A ReinforcedGate inherits both, seals twice on a
// breach and pumps water out on a flood.
func NewSite(logger *slog.Logger, opts ...SiteOption) *Site {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := rescue.NewClass[*Gate]("Gate", rescue.WithLogger(logger))
	g.MustRescueFrom(rescue.On(rescue.Type[*Breach]()), rescue.Method("SealDoors"))
	g.MustRescueFrom(rescue.On(classify.Code(code.Unavailable)), rescue.Method("SwitchToBackup"))

	r := rescue.Derive[*ReinforcedGate](g, "ReinforcedGate")
	if err := r.Define("Flood", rescue.Type[*Flood]()); err != nil {
		panic(err)
	}
	r.MustRescueFrom(rescue.On("Flood"), rescue.Method("PumpWater"))
	r.MustRescueFrom(rescue.On(rescue.Type[*Breach]()), rescue.Method("SealDoorsTwice"))

	s := &Site{logger: logger, gate: g, reinforced: r, gates: make(map[string]*post)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GateClass returns the class of plain gates.
func (s *Site) GateClass() *rescue.Class { return s.gate }

// ReinforcedGateClass returns the class of reinforced gates.
func (s *Site) ReinforcedGateClass() *rescue.Class { return s.reinforced }

// NewGate returns a plain gate.
func (s *Site) NewGate(name string) *Gate {
	return &Gate{Name: name, class: s.gate, logger: s.logger.With(slog.String("gate", name))}
}

// NewReinforcedGate returns a reinforced gate.
func (s *Site) NewReinforcedGate(name string) *ReinforcedGate {
	return &ReinforcedGate{Gate: Gate{Name: name, class: s.reinforced, logger: s.logger.With(slog.String("gate", name))}}
}

// Add builds a gate and keeps it under name.
func (s *Site) Add(name string, reinforced bool) (Host, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidGate)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gates[name]; ok {
		return nil, fmt.Errorf("%w: %q already added", ErrInvalidGate, name)
	}
	var h Host
	if reinforced {
		h = s.NewReinforcedGate(name)
	} else {
		h = s.NewGate(name)
	}
	s.gates[name] = &post{host: h}
	return h, nil
}

// Lookup returns the gate added under name or an *UnknownGateError.
func (s *Site) Lookup(name string) (Host, error) {
	p, err := s.find(name)
	if err != nil {
		return nil, err
	}
	return p.host, nil
}

// Names returns the names of the gates added so far, sorted.
func (s *Site) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.gates))
	for n := range s.gates {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (s *Site) find(name string) (*post, error) {
	s.mu.RLock()
	p, ok := s.gates[name]
	s.mu.RUnlock()
	if !ok {
		return nil, &UnknownGateError{Name: name}
	}
	return p, nil
}

// Gate records what its rescue handlers did.
type Gate struct {
	Name string

	class  *rescue.Class
	logger *slog.Logger
	events []string
}

// RescueClass implements rescue.Rescuable.
func (g *Gate) RescueClass() *rescue.Class { return g.class }

// Events returns the actions taken so far.
func (g *Gate) Events() []string { return slices.Clone(g.events) }

// SealDoors closes the blast doors.
func (g *Gate) SealDoors() {
	g.record("seal_doors")
}

// SwitchToBackup moves the gate to backup power.
func (g *Gate) SwitchToBackup(err error) {
	g.record("switch_to_backup", slog.String("cause", err.Error()))
}

func (g *Gate) record(event string, attrs ...any) {
	g.events = append(g.events, event)
	g.logger.Info(event, attrs...)
}

// ReinforcedGate is a Gate with a second set of doors and pumps.
type ReinforcedGate struct {
	Gate
}

// SealDoorsTwice closes both sets of blast doors.
func (g *ReinforcedGate) SealDoorsTwice() {
	g.record("seal_doors_twice")
}

// PumpWater drains the gate room.
func (g *ReinforcedGate) PumpWater(err error) {
	lvl := 0
	if f, ok := err.(*Flood); ok {
		lvl = f.Level
	}
	g.record("pump_water", slog.Int("level", lvl))
}
