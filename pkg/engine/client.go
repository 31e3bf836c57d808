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

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sapucc/sapsysinfo/pkg/defaults"
	"github.com/sapucc/sapsysinfo/pkg/errors"
	"github.com/sapucc/sapsysinfo/pkg/httpclient"
)

const (
	// DefaultEAuth is the external authentication backend of the engine API.
	DefaultEAuth = "pam"

	runPath     = "/run"
	clientLocal = "local"
)

// Config addresses the automation engine API and the minion running on the
// SAP host.
type Config struct {
	// URL is the base URL of the engine REST API.
	URL string
	// Target is the minion ID of the SAP host.
	Target   string
	Username string
	Password string
	EAuth    string

	// Timeout bounds each function call. Zero means defaults.EngineCallTimeout.
	Timeout time.Duration
	// RateLimit is the number of calls per second. Zero means defaults.EngineRateLimit.
	RateLimit float64
	// Burst zero means defaults.EngineRateBurst.
	Burst int
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for call diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithReader sets the HTTP reader used to reach the engine API.
func WithReader(reader *httpclient.Reader) Option {
	return func(c *Client) {
		c.reader = reader
	}
}

// Client calls execution functions on one minion through the engine REST API.
// It implements sap.HostControl, sap.Control, sap.FileGrepper and sap.HostFacts.
type Client struct {
	cfg     Config
	runURL  string
	reader  *httpclient.Reader
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "engine url is required")
	}
	base, err := url.Parse(cfg.URL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid engine url %q", cfg.URL), err)
	}
	if cfg.Target == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "engine target is required")
	}
	if cfg.EAuth == "" {
		cfg.EAuth = DefaultEAuth
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.EngineCallTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaults.EngineRateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.EngineRateBurst
	}

	c := &Client{
		cfg:     cfg,
		runURL:  strings.TrimRight(base.String(), "/") + runPath,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.reader == nil {
		c.reader = httpclient.NewReader(httpclient.WithTotalTimeout(cfg.Timeout))
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// lowstate is one command chunk of the engine run endpoint.
type lowstate struct {
	Client   string         `json:"client"`
	Target   string         `json:"tgt"`
	Function string         `json:"fun"`
	Args     []any          `json:"arg,omitempty"`
	Kwargs   map[string]any `json:"kwarg,omitempty"`
	Username string         `json:"username"`
	Password string         `json:"password"`
	EAuth    string         `json:"eauth"`
}

type runResponse struct {
	Return []map[string]json.RawMessage `json:"return"`
}

// call runs fun on the target minion and returns the minion's raw result.
func (c *Client) call(ctx context.Context, fun string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	start := time.Now()
	result, err := c.do(ctx, fun, args, kwargs)

	status := "success"
	if err != nil {
		status = string(errors.CodeOf(err))
	}
	engineCallsTotal.WithLabelValues(fun, status).Inc()
	engineCallDuration.WithLabelValues(fun).Observe(time.Since(start).Seconds())

	c.logger.Debug("engine call",
		"function", fun,
		"target", c.cfg.Target,
		"status", status,
		"duration", time.Since(start))
	return result, err
}

func (c *Client) do(ctx context.Context, fun string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "engine call throttled past deadline", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal([]lowstate{{
		Client:   clientLocal,
		Target:   c.cfg.Target,
		Function: fun,
		Args:     args,
		Kwargs:   kwargs,
		Username: c.cfg.Username,
		Password: c.cfg.Password,
		EAuth:    c.cfg.EAuth,
	}})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to encode engine request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.runURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create engine request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, data, err := c.reader.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, fmt.Sprintf("engine call %s timed out", fun), err)
		}
		return nil, errors.Wrap(errors.ErrCodeUnavailable, fmt.Sprintf("engine call %s failed", fun), err)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return nil, errors.NewWithContext(errors.ErrCodeUnauthorized,
			fmt.Sprintf("engine rejected credentials for %s", fun),
			map[string]any{"status": status})
	case status < 200 || status > 299:
		return nil, errors.NewWithContext(errors.ErrCodeUnavailable,
			fmt.Sprintf("engine call %s failed with status %d", fun, status),
			map[string]any{"status": status})
	}

	var resp runResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to decode engine response", err)
	}
	if len(resp.Return) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "engine response has no return value")
	}

	result, ok := resp.Return[0][c.cfg.Target]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("minion %s did not return for %s", c.cfg.Target, fun),
			map[string]any{"target": c.cfg.Target, "function": fun})
	}
	return result, nil
}

// decode unmarshals a minion result into out.
func decode(fun string, raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("unexpected result of %s", fun), err,
			map[string]any{"result": truncate(string(raw), 200)})
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
