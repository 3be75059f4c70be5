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

// Package config loads the gatekeeper drill configuration.
package config

import "log/slog"

// Config describes the gates of a site and the drills to run on them.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Gates   []GateConfig  `yaml:"gates"`
}

// ServerConfig configures the drill server. Domain is reported in the
// ErrorInfo of error bodies.
type ServerConfig struct {
	Port   int    `yaml:"port"`
	Domain string `yaml:"domain"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel returns the slog level named by Level. Unknown names, rejected
// by Validate, fall back to INFO.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GateConfig declares one gate.
type GateConfig struct {
	Name       string   `yaml:"name"`
	Reinforced bool     `yaml:"reinforced"`
	Drills     []string `yaml:"drills"`
}
