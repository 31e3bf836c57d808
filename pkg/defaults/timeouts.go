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

package defaults

import "time"

// Collector timeouts for SAP system data collection.
const (
	// CollectorTimeout bounds a complete system collection. Every remote call
	// of a collection runs in sequence, so this covers all of them together.
	CollectorTimeout = 5 * time.Minute

	// EngineCallTimeout is the timeout for a single automation engine call.
	EngineCallTimeout = 60 * time.Second

	// LogonGroupProbeTimeout is the timeout for one message server probe.
	LogonGroupProbeTimeout = 10 * time.Second
)

// Engine client throttling.
const (
	// EngineRateLimit is the default number of engine calls per second.
	EngineRateLimit = 10

	// EngineRateBurst is the default burst size for engine calls.
	EngineRateBurst = 20
)

// Handler timeouts for HTTP request processing.
const (
	// SystemHandlerTimeout is the timeout for a system collection request.
	// Should be at least CollectorTimeout so the collector reports its own deadline.
	SystemHandlerTimeout = 6 * time.Minute
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Collections are slow, so this exceeds SystemHandlerTimeout.
	ServerWriteTimeout = 7 * time.Minute

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// ConfigMap timeouts for Kubernetes ConfigMap operations.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLICollectTimeout is the default timeout for the collect command.
	CLICollectTimeout = 10 * time.Minute
)
