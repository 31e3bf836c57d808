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

// Package api serves system collections over HTTP.
//
// POST /v1/systems collects one SAP system and responds with a
// SystemSnapshot. The body is JSON or YAML:
//
//	{"sid": "PRD", "username": "prdadm", "password": "...", "verify": true}
//
// verify defaults to true. A missing sid is a 400. Collection errors keep
// their code: host-agent discovery failures are SERVICE_UNAVAILABLE (503),
// a mismatch between the host agent and the message server is
// INCONSISTENT_SYSTEM (502). A system without instances is not an error and
// returns 200 with an empty system object.
//
// Process concerns such as middleware, probes, metrics and shutdown are
// provided by pkg/server.
//
//	curl -s -X POST http://localhost:8080/v1/systems \
//	  -H 'Content-Type: application/json' \
//	  -d '{"sid":"PRD","username":"prdadm","password":"secret"}'
package api
