// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sapucc/sapsysinfo/pkg/config"
	"github.com/sapucc/sapsysinfo/pkg/logging"
	"github.com/sapucc/sapsysinfo/pkg/server"
	"github.com/sapucc/sapsysinfo/pkg/snapshotter"
	"golang.org/x/time/rate"
)

const (
	name           = "sapsysinfod"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/sapucc/sapsysinfo/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve builds the collector from cfg and serves the API until ctx is
// canceled or the process receives SIGINT or SIGTERM.
func Serve(ctx context.Context, cfg *config.Config) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s, err := NewServer(cfg)
	if err != nil {
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// NewServer wires the systems handler into a server configured from cfg.
func NewServer(cfg *config.Config) (*server.Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rt, err := cfg.Build(slog.Default())
	if err != nil {
		return nil, err
	}

	h := &SystemsHandler{
		Snapshotter: &snapshotter.SystemSnapshotter{
			Version:   version,
			Collector: rt.Collector,
			Facts:     rt.Facts,
			Timeout:   cfg.Collector.Timeout,
		},
	}

	return server.New(
		server.WithConfig(serverConfig(cfg)),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(h)),
	), nil
}

// Routes returns the API routes served by h.
func Routes(h *SystemsHandler) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/systems": h.HandleSystems,
	}
}

// serverConfig overlays the listener settings of cfg on the server defaults.
func serverConfig(cfg *config.Config) *server.Config {
	sc := server.NewConfig()
	if cfg.Server.Address != "" {
		sc.Address = cfg.Server.Address
	}
	if cfg.Server.Port > 0 {
		sc.Port = cfg.Server.Port
	}
	if cfg.Server.RateLimit > 0 {
		sc.RateLimit = rate.Limit(cfg.Server.RateLimit)
	}
	if cfg.Server.RateLimitBurst > 0 {
		sc.RateLimitBurst = cfg.Server.RateLimitBurst
	}
	return sc
}
