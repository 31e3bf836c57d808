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

// Package server provides the HTTP server shared by the sapsysinfo API.
//
// The server owns process concerns only: routing, the middleware chain,
// health and readiness probes, Prometheus metrics and graceful shutdown.
// API handlers are supplied by the caller with WithHandler.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("sapsysinfod"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/systems": handler.HandleSystems,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Endpoints
//
//	GET /         server name, version and route listing
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until the listener is up and during shutdown
//	GET /metrics  Prometheus metrics
//
// Handler routes run behind metrics, API version negotiation, request ID,
// panic recovery, rate limiting and logging middleware. System endpoints
// are registered without the chain.
//
// # Errors
//
// Every error response has the same JSON shape:
//
//	{
//	  "code": "INCONSISTENT_SYSTEM",
//	  "message": "message server reports 3 instances, host agent 2",
//	  "details": {"sid": "PRD"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-12T08:00:00Z",
//	  "retryable": true
//	}
//
// HTTPStatusFromCode maps error codes to statuses. INVALID_REQUEST is 400,
// UNAUTHORIZED 401, NOT_FOUND 404, RATE_LIMIT_EXCEEDED 429,
// INCONSISTENT_SYSTEM 502, SERVICE_UNAVAILABLE 503 and TIMEOUT 504.
//
// # Configuration
//
// PORT overrides the listen port. SHUTDOWN_TIMEOUT_SECONDS overrides the
// graceful shutdown window to match the pod termination grace period.
package server
