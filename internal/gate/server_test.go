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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/rescue/httpx"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewServer(newTestSite(t, reg), 0, reg, httpx.WithDomain("gatekeeper.test"))
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestServer_DrillRescued(t *testing.T) {
	s := newTestServer(t)
	rr := do(t, s, http.MethodPost, "/gates/atlantis/drills?scenario=breach")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	var got DrillResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := DrillResponse{
		Gate:     "atlantis",
		Class:    "ReinforcedGate",
		Scenario: "breach",
		Handled:  "breach at north wall",
		Events:   []string{"seal_doors_twice"},
	}
	if got.Gate != want.Gate || got.Class != want.Class || got.Scenario != want.Scenario ||
		got.Handled != want.Handled || !slices.Equal(got.Events, want.Events) {
		t.Fatalf("body = %+v, want %+v", got, want)
	}
}

func TestServer_DrillErrors(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name   string
		target string
		status int
		reason string
	}{
		{"unknown gate", "/gates/abydos/drills?scenario=breach", http.StatusNotFound, "NOT_FOUND"},
		{"unhandled fault", "/gates/sgc/drills?scenario=jam", http.StatusInternalServerError, "INTERNAL"},
		{"fault loop", "/gates/atlantis/drills?scenario=loop", http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, http.MethodPost, tt.target)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d", rr.Code, tt.status)
			}
			info, err := httpx.Decode(rr.Body.Bytes())
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if info.GetReason() != tt.reason || info.GetDomain() != "gatekeeper.test" {
				t.Fatalf("info = %v", info)
			}
			if info.GetMetadata()[httpx.MetaErrorID] == "" {
				t.Fatalf("no error_id in %v", info)
			}
		})
	}
}

func TestServer_BadScenario(t *testing.T) {
	s := newTestServer(t)
	rr := do(t, s, http.MethodPost, "/gates/sgc/drills?scenario=meteor")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var body struct {
		Error     string   `json:"error"`
		Scenarios []string `json:"scenarios"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "unknown scenario" || !slices.Equal(body.Scenarios, Scenarios) {
		t.Fatalf("body = %+v", body)
	}
}

func TestServer_Gates(t *testing.T) {
	s := newTestServer(t)
	rr := do(t, s, http.MethodGet, "/gates")
	var body struct {
		Gates []string `json:"gates"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !slices.Equal(body.Gates, []string{"atlantis", "sgc"}) {
		t.Fatalf("gates = %v", body.Gates)
	}
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/gates/sgc/drills?scenario=breach")
	do(t, s, http.MethodPost, "/gates/sgc/drills?scenario=jam")

	rr := do(t, s, http.MethodGet, "/metrics")
	raw, _ := io.ReadAll(rr.Body)
	out := string(raw)
	for _, want := range []string{
		`gatekeeper_drills_total{class="Gate",result="rescued",scenario="breach"} 1`,
		`gatekeeper_drills_total{class="Gate",result="unhandled",scenario="jam"} 1`,
		`gatekeeper_rescued_total{class="Gate",error_type="*gate.Breach"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics missing %s:\n%s", want, out)
		}
	}
}
