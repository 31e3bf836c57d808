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

// Package engine reaches the SAP host through the REST API of a Salt style
// automation engine.
//
// The SAP host agent, sapstartsrv, file and grain functions already exist as
// execution functions on the minion running on the SAP host. Client invokes
// them with the engine's run endpoint and decodes their results into the
// types of package sap, so one Client can stand in for the HostControl,
// Control, FileGrepper and HostFacts capabilities:
//
//	client, err := engine.NewClient(engine.Config{
//	    URL:      "https://salt.example.com:8000",
//	    Target:   "sapapp01",
//	    Username: "saltapi",
//	    Password: secret,
//	})
//	caps := sap.Capabilities{
//	    HostControl: client,
//	    Control:     client,
//	    Files:       client,
//	    HTTP:        httpclient.NewGetter(),
//	    Facts:       client,
//	}
//
// Every call is posted as a single lowstate chunk:
//
//	[{"client": "local", "tgt": "sapapp01", "fun": "sap_control.parameter_value",
//	  "kwarg": {...}, "username": "...", "password": "...", "eauth": "pam"}]
//
// and the result is read from {"return": [{"sapapp01": <result>}]}.
//
// # Errors
//
// Failures are returned as *errors.StructuredError:
//   - 401 and 403 responses: ErrCodeUnauthorized
//   - other non-2xx responses and transport failures: ErrCodeUnavailable
//   - target missing from the return: ErrCodeNotFound
//   - a function reporting failure: ErrCodeUnavailable
//   - results of an unexpected shape: ErrCodeInternal
//
// # Throttling and Metrics
//
// Calls share a token bucket limiter (golang.org/x/time/rate) and are
// counted per function and outcome in sapsysinfo_engine_calls_total.
package engine
