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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dirpx.dev/rescue"
	"dirpx.dev/rescue/httpx"
)

// Server runs drills over HTTP and exposes the drill metrics.
//
//	GET  /gates                          gate names
//	POST /gates/{name}/drills?scenario=  run a drill
//	GET  /metrics                        Prometheus metrics
type Server struct {
	site   *Site
	server *http.Server
}

// NewServer creates a drill server on port. Metrics are served from gatherer;
// opts configure how drill errors are rendered.
func NewServer(site *Site, port int, gatherer prometheus.Gatherer, opts ...httpx.Option) *Server {
	mux := http.NewServeMux()
	s := &Server{
		site: site,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("GET /gates", s.handleGates)
	mux.Handle("POST /gates/{name}/drills", httpx.Handler(s.newDrillRequest, (*drillRequest).serve, opts...))
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return s
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleGates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"gates": s.site.Names()})
}

// DrillResponse is the body of a drill that a gate rescued.
type DrillResponse struct {
	Gate     string   `json:"gate"`
	Class    string   `json:"class"`
	Scenario string   `json:"scenario"`
	Handled  string   `json:"handled"`
	Events   []string `json:"events"`
}

// drillRequest is the host of one drill request. Unknown scenarios are
// rendered by its own handler; unknown gates are rescued and rendered from
// their error code; faults no gate handler rescued reach the client as a 500.
type drillRequest struct {
	w    http.ResponseWriter
	r    *http.Request
	site *Site
}

var drillRequestClass = func() *rescue.Class {
	c := rescue.NewClass[*drillRequest]("DrillRequest")
	c.MustRescueFrom(rescue.On(rescue.Type[*UnknownGateError]()), rescue.Method("LogMiss"))
	c.MustRescueFrom(rescue.On(rescue.Sentinel("ErrUnknownScenario", ErrUnknownScenario)), rescue.Method("RenderBadScenario"))
	return c
}()

func (s *Server) newDrillRequest(w http.ResponseWriter, r *http.Request) *drillRequest {
	return &drillRequest{w: w, r: r, site: s.site}
}

func (d *drillRequest) RescueClass() *rescue.Class { return drillRequestClass }

func (d *drillRequest) serve() error {
	res, err := d.site.Drill(d.r.PathValue("name"), d.r.URL.Query().Get("scenario"))
	if err != nil {
		return fmt.Errorf("drill: %w", err)
	}
	if !res.Rescued() {
		return res.Fault
	}
	writeJSON(d.w, http.StatusOK, DrillResponse{
		Gate:     res.Gate,
		Class:    res.Class,
		Scenario: res.Scenario,
		Handled:  res.Handled.Error(),
		Events:   res.Events,
	})
	return nil
}

// LogMiss notes a request for a gate the site does not have.
func (d *drillRequest) LogMiss(err error) {
	d.site.logger.Debug("drill on unknown gate", slog.String("error", err.Error()))
}

// RenderBadScenario answers 400 with the known scenarios.
func (d *drillRequest) RenderBadScenario() {
	writeJSON(d.w, http.StatusBadRequest, map[string]any{
		"error":     "unknown scenario",
		"scenarios": Scenarios,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
