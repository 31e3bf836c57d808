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

// Package defaults provides centralized configuration constants for sapsysinfo.
//
// This package defines timeout values and throttling parameters used across
// the codebase so they can be tuned in one place.
//
// # Timeout Categories
//
//   - Collector timeouts: a full SAP system collection and its individual calls
//   - Handler timeouts: HTTP request processing in the API server
//   - Server timeouts: HTTP server configuration
//   - HTTP client timeouts: outbound requests (engine, message server)
//   - ConfigMap and CLI timeouts
//
// # Usage
//
//	import "github.com/sapucc/sapsysinfo/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - A collection is a chain of sequential engine calls, so the collector
//     timeout is in minutes, not seconds.
//   - Server write timeout must exceed the system handler timeout, otherwise
//     clients see a dropped connection instead of a timeout error.
package defaults
