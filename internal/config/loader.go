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
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"dirpx.dev/rescue/internal/gate"
)

// ErrInvalid is wrapped by every validation error returned by Load.
var ErrInvalid = errors.New("config: invalid")

// Load reads configuration from a YAML file. ${VAR} references are expanded
// from the environment before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.UnmarshalStrict([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Domain == "" {
		cfg.Server.Domain = "gatekeeper.local"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks gate names and drill scenarios.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d", ErrInvalid, c.Server.Port)
	}
	seen := make(map[string]bool, len(c.Gates))
	for i, g := range c.Gates {
		if g.Name == "" {
			return fmt.Errorf("%w: gates[%d] has no name", ErrInvalid, i)
		}
		if seen[g.Name] {
			return fmt.Errorf("%w: gate %q declared twice", ErrInvalid, g.Name)
		}
		seen[g.Name] = true
		for _, s := range g.Drills {
			if !gate.Known(s) {
				return fmt.Errorf("%w: gate %q: unknown drill %q", ErrInvalid, g.Name, s)
			}
		}
	}
	return nil
}
