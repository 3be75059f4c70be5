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

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gatekeeper.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
logging:
  level: debug
gates:
  - name: sgc
    drills: [breach, power]
  - name: atlantis
    reinforced: true
    drills: [flood, loop]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Logging.Level != "debug" {
		t.Fatalf("server/logging = %+v %+v", cfg.Server, cfg.Logging)
	}
	if len(cfg.Gates) != 2 {
		t.Fatalf("gates = %+v", cfg.Gates)
	}
	if g := cfg.Gates[1]; g.Name != "atlantis" || !g.Reinforced || len(g.Drills) != 2 || g.Drills[0] != "flood" {
		t.Fatalf("gates[1] = %+v", g)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "gates: []\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Domain != "gatekeeper.local" || cfg.Logging.Level != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("GATEKEEPER_DOMAIN", "sgc.example.com")

	cfg, err := Load(writeConfig(t, `
server:
  domain: ${GATEKEEPER_DOMAIN}
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Domain != "sgc.example.com" {
		t.Errorf("Expected domain sgc.example.com, got %s", cfg.Server.Domain)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unknown drill", "gates:\n  - name: sgc\n    drills: [meteor]\n"},
		{"duplicate gate", "gates:\n  - name: sgc\n  - name: sgc\n"},
		{"unnamed gate", "gates:\n  - reinforced: true\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"bad port", "server:\n  port: 70000\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "gates:\n  - name: sgc\n    armored: true\n"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want a parse error", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_LoggingLevels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, "logging:\n  level: "+tt.level+"\n"))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got := cfg.Logging.SlogLevel(); got != tt.want {
				t.Fatalf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
