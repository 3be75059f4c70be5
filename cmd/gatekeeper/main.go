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

// Command gatekeeper runs the gate scenarios through their rescue classes and
// reports what the gates did.
//
// A single drill:
//
//	gatekeeper -scenario breach -reinforced -explain
//
// Every drill of a site configuration, optionally followed by the drill
// server:
//
//	gatekeeper -config gatekeeper.yaml -serve
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vietddude/stylelog"

	"dirpx.dev/rescue/httpx"
	"dirpx.dev/rescue/internal/config"
	"dirpx.dev/rescue/internal/gate"
)

func main() {
	scenario := flag.String("scenario", "breach", "Fault to simulate: "+strings.Join(gate.Scenarios, ", "))
	reinforced := flag.Bool("reinforced", false, "Use a reinforced gate")
	explain := flag.Bool("explain", false, "Print how the fault is dispatched before rescuing it")
	configPath := flag.String("config", "", "Path to a site configuration; runs every configured drill")
	serve := flag.Bool("serve", false, "Serve drills and metrics over HTTP after the configured drills (needs -config)")
	isDebug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Values from a local .env file feed ${VAR} references in the configuration.
	_ = godotenv.Load()

	var cfg *config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			stylelog.InitDefault()
			slog.Error("Failed to load config", "error", err)
			os.Exit(2)
		}
	}

	slogLevel := slog.LevelInfo
	if cfg != nil {
		slogLevel = cfg.Logging.SlogLevel()
	}
	if *isDebug {
		slogLevel = slog.LevelDebug
	}
	stylelog.InitDefault(
		&tint.Options{
			Level:      slogLevel,
			TimeFormat: time.RFC3339,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()),
		})

	if cfg == nil {
		os.Exit(single(*scenario, *reinforced, *explain))
	}

	reg := prometheus.NewRegistry()
	site := gate.NewSite(slog.Default(), gate.WithMetrics(gate.NewMetrics(reg)))
	code := drills(site, cfg, *explain)
	if !*serve {
		os.Exit(code)
	}
	if err := run(site, cfg, reg); err != nil {
		slog.Error("Drill server failed", "error", err)
		os.Exit(1)
	}
}

// single runs one scenario on a fresh gate.
func single(scenario string, reinforced, explain bool) int {
	if !gate.Known(scenario) {
		slog.Error("Unknown scenario", "scenario", scenario, "known", gate.Scenarios)
		return 2
	}
	site := gate.NewSite(slog.Default())
	name := "sgc"
	if reinforced {
		name = "atlantis"
	}
	if _, err := site.Add(name, reinforced); err != nil {
		slog.Error("Failed to add gate", "error", err)
		return 2
	}
	if explain {
		printExplain(site, name, scenario)
	}
	res, err := site.Drill(name, scenario)
	if err != nil {
		slog.Error("Drill failed", "error", err)
		return 2
	}
	if !report(res) {
		return 1
	}
	return 0
}

// drills adds the configured gates and runs their drills. It returns 1 when
// any fault went unhandled.
func drills(site *gate.Site, cfg *config.Config, explain bool) int {
	code := 0
	for _, g := range cfg.Gates {
		if _, err := site.Add(g.Name, g.Reinforced); err != nil {
			slog.Error("Failed to add gate", "error", err)
			return 2
		}
	}
	for _, g := range cfg.Gates {
		for _, s := range g.Drills {
			if explain {
				printExplain(site, g.Name, s)
			}
			res, err := site.Drill(g.Name, s)
			if err != nil {
				slog.Error("Drill failed", "gate", g.Name, "scenario", s, "error", err)
				return 2
			}
			if !report(res) {
				code = 1
			}
		}
	}
	return code
}

func printExplain(site *gate.Site, name, scenario string) {
	h, err := site.Lookup(name)
	if err != nil {
		return
	}
	if fault, err := gate.Simulate(scenario); err == nil {
		fmt.Println(h.RescueClass().Explain(fault))
	}
}

func report(res *gate.Result) bool {
	if !res.Rescued() {
		slog.Error("Fault not rescued", "gate", res.Gate, "class", res.Class, "scenario", res.Scenario, "error", res.Fault)
		return false
	}
	slog.Info("Fault rescued",
		"gate", res.Gate,
		"class", res.Class,
		"scenario", res.Scenario,
		"handled", res.Handled.Error(),
		"events", res.Events,
	)
	return true
}

// run serves drills until SIGINT or SIGTERM.
func run(site *gate.Site, cfg *config.Config, reg *prometheus.Registry) error {
	srv := gate.NewServer(site, cfg.Server.Port, reg,
		httpx.WithDomain(cfg.Server.Domain),
		httpx.WithLogger(slog.Default()),
	)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Drill server listening", "port", cfg.Server.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Drill server stopped gracefully")
	return nil
}
