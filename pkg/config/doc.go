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

// Package config loads sapsysinfo runtime configuration.
//
// Values are resolved in order, later sources winning:
//   - built-in defaults from pkg/defaults
//   - a YAML file (unknown keys are rejected)
//   - SAPSYSINFO_* environment variables
//   - command line flags, applied by pkg/cli
//
// Example file:
//
//	engine:
//	  url: https://salt.example.com:8000
//	  target: sapascs.example.com
//	  username: saltapi
//	  password: secret
//	tls:
//	  caBundle: /etc/ssl/certs/corp-ca.pem
//	facts:
//	  source: engine   # or local
//	collector:
//	  timeout: 5m
//	server:
//	  port: 8080
//
// Build turns a validated Config into a ready sap.Collector.
package config
