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

package config

import (
	"log/slog"
	"slices"

	"github.com/sapucc/sapsysinfo/pkg/defaults"
	"github.com/sapucc/sapsysinfo/pkg/engine"
	"github.com/sapucc/sapsysinfo/pkg/errors"
	"github.com/sapucc/sapsysinfo/pkg/hostfacts"
	"github.com/sapucc/sapsysinfo/pkg/httpclient"
	"github.com/sapucc/sapsysinfo/pkg/sap"
)

// Runtime is the set of collaborators built from a Config.
type Runtime struct {
	Collector *sap.Collector
	// Facts describes the host the snapshot is attributed to.
	Facts sap.HostFacts
}

// Build wires the engine client, HTTP getter and host facts selected by c
// into a collector.
func (c *Config) Build(logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var httpOpts []httpclient.Option
	if c.TLS.CABundle != "" {
		pool, err := httpclient.LoadCABundle(c.TLS.CABundle)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to load CA bundle", err)
		}
		httpOpts = append(httpOpts, httpclient.WithRootCAs(pool))
	}

	engineReader := httpclient.NewReader(slices.Concat(httpOpts,
		[]httpclient.Option{httpclient.WithTotalTimeout(c.Engine.Timeout)})...)
	client, err := engine.NewClient(engine.Config{
		URL:       c.Engine.URL,
		Target:    c.Engine.Target,
		Username:  c.Engine.Username,
		Password:  c.Engine.Password,
		EAuth:     c.Engine.EAuth,
		Timeout:   c.Engine.Timeout,
		RateLimit: c.Engine.RateLimit,
		Burst:     c.Engine.Burst,
	}, engine.WithLogger(logger), engine.WithReader(engineReader))
	if err != nil {
		return nil, err
	}

	caps := sap.Capabilities{
		HostControl: client,
		Control:     client,
		Files:       client,
		Facts:       client,
		HTTP: httpclient.NewGetter(slices.Concat(httpOpts,
			[]httpclient.Option{httpclient.WithTotalTimeout(defaults.LogonGroupProbeTimeout)})...),
	}
	if c.Facts.Source == FactsLocal {
		facts := hostfacts.NewFacts()
		if c.Facts.ResolvConf != "" {
			facts.ResolvConfPath = c.Facts.ResolvConf
		}
		caps.Facts = facts
		caps.Files = hostfacts.NewFiles()
	}

	opts := []sap.Option{
		sap.WithLogger(logger),
		sap.WithLegacyLogonGroupPort(c.Collector.LegacyLogonGroupPort),
	}
	if c.Collector.ServicesPath != "" {
		opts = append(opts, sap.WithServicesPath(c.Collector.ServicesPath))
	}

	coll, err := sap.NewCollector(caps, opts...)
	if err != nil {
		return nil, err
	}
	return &Runtime{Collector: coll, Facts: caps.Facts}, nil
}
