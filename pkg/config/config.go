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
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sapucc/sapsysinfo/pkg/defaults"
	"github.com/sapucc/sapsysinfo/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Fact sources.
const (
	// FactsLocal reads host facts and files on the machine running sapsysinfo.
	FactsLocal = "local"
	// FactsEngine reads host facts and files on the SAP host through the engine.
	FactsEngine = "engine"
)

// Environment variables that override file values.
const (
	EnvEngineURL       = "SAPSYSINFO_ENGINE_URL"
	EnvEngineTarget    = "SAPSYSINFO_ENGINE_TARGET"
	EnvEngineUsername  = "SAPSYSINFO_ENGINE_USERNAME"
	EnvEnginePassword  = "SAPSYSINFO_ENGINE_PASSWORD"
	EnvEngineEAuth     = "SAPSYSINFO_ENGINE_EAUTH"
	EnvEngineTimeout   = "SAPSYSINFO_ENGINE_TIMEOUT"
	EnvEngineRateLimit = "SAPSYSINFO_ENGINE_RATE_LIMIT"
	EnvCABundle        = "SAPSYSINFO_CA_BUNDLE"
	EnvFactsSource     = "SAPSYSINFO_FACTS_SOURCE"
	EnvServicesPath    = "SAPSYSINFO_SERVICES_PATH"
	EnvCollectTimeout  = "SAPSYSINFO_COLLECT_TIMEOUT"
	EnvServerAddress   = "SAPSYSINFO_SERVER_ADDRESS"
	EnvServerPort      = "SAPSYSINFO_SERVER_PORT"
)

// Config is the runtime configuration shared by the CLI and the API server.
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	TLS       TLSConfig       `yaml:"tls"`
	Facts     FactsConfig     `yaml:"facts"`
	Collector CollectorConfig `yaml:"collector"`
	Server    ServerConfig    `yaml:"server"`
}

// EngineConfig addresses the automation engine REST API.
type EngineConfig struct {
	URL       string        `yaml:"url"`
	Target    string        `yaml:"target"`
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	EAuth     string        `yaml:"eauth"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rateLimit"`
	Burst     int           `yaml:"burst"`
}

// TLSConfig holds trust settings for outbound HTTPS.
type TLSConfig struct {
	// CABundle is a PEM file added to the system roots. Empty uses the system pool.
	CABundle string `yaml:"caBundle"`
}

// FactsConfig selects where host facts and files are read.
type FactsConfig struct {
	Source     string `yaml:"source"`
	ResolvConf string `yaml:"resolvConf"`
}

// CollectorConfig tunes system collection.
type CollectorConfig struct {
	Timeout              time.Duration `yaml:"timeout"`
	ServicesPath         string        `yaml:"servicesPath"`
	LegacyLogonGroupPort bool          `yaml:"legacyLogonGroupPort"`
}

// ServerConfig configures the API server listener.
type ServerConfig struct {
	Address        string  `yaml:"address"`
	Port           int     `yaml:"port"`
	RateLimit      float64 `yaml:"rateLimit"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`
}

// Default returns a Config populated from pkg/defaults.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			EAuth:     "pam",
			Timeout:   defaults.EngineCallTimeout,
			RateLimit: defaults.EngineRateLimit,
			Burst:     defaults.EngineRateBurst,
		},
		Facts: FactsConfig{
			Source: FactsEngine,
		},
		Collector: CollectorConfig{
			Timeout: defaults.CollectorTimeout,
		},
		Server: ServerConfig{
			Port:           8080,
			RateLimit:      100,
			RateLimitBurst: 200,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply further overrides
// before calling Validate.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("failed to read config file %s", path), err)
		}
		if err := cfg.decode(b); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode merges YAML over c. Unknown keys are rejected.
func (c *Config) decode(b []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from environment variables using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvEngineURL, &c.Engine.URL)
	str(EnvEngineTarget, &c.Engine.Target)
	str(EnvEngineUsername, &c.Engine.Username)
	str(EnvEnginePassword, &c.Engine.Password)
	str(EnvEngineEAuth, &c.Engine.EAuth)
	str(EnvCABundle, &c.TLS.CABundle)
	str(EnvFactsSource, &c.Facts.Source)
	str(EnvServicesPath, &c.Collector.ServicesPath)
	str(EnvServerAddress, &c.Server.Address)

	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	dur(EnvEngineTimeout, &c.Engine.Timeout)
	dur(EnvCollectTimeout, &c.Collector.Timeout)

	if v, ok := lookup(EnvEngineRateLimit); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvEngineRateLimit, err))
		} else {
			c.Engine.RateLimit = f
		}
	}
	if v, ok := lookup(EnvServerPort); ok && v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvServerPort, err))
		} else {
			c.Server.Port = p
		}
	}

	if len(errs) > 0 {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid environment override", stderrors.Join(errs...))
	}
	return nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Facts.Source {
	case FactsLocal, FactsEngine:
	default:
		problems = append(problems, fmt.Sprintf("facts.source must be %q or %q, got %q", FactsLocal, FactsEngine, c.Facts.Source))
	}

	if c.Engine.URL == "" {
		problems = append(problems, "engine.url is required")
	} else if u, err := url.Parse(c.Engine.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("engine.url %q must be an http or https URL", c.Engine.URL))
	}
	if c.Engine.Target == "" {
		problems = append(problems, "engine.target is required")
	}
	if c.Engine.Timeout < 0 {
		problems = append(problems, "engine.timeout must not be negative")
	}
	if c.Engine.RateLimit < 0 || c.Engine.Burst < 0 {
		problems = append(problems, "engine rate limit and burst must not be negative")
	}
	if c.Collector.Timeout < 0 {
		problems = append(problems, "collector.timeout must not be negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}

	if len(problems) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"invalid configuration: "+strings.Join(problems, "; "),
			map[string]any{"problems": problems})
	}
	return nil
}
