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

// Package cli implements the sapsysinfo command-line interface.
//
// # Commands
//
// collect - capture a system snapshot:
//
//	sapsysinfo collect --sid PRD --username prdadm --output prd.yaml
//
// Discovers the instances of the system through the host agent, reads
// parameters, ports and software components over the control protocol and
// probes the message server for logon groups.
//
// show - re-render a saved snapshot:
//
//	sapsysinfo show --snapshot cm://sap/prd-snapshot --format table
//
// serve - run the HTTP API (see pkg/api):
//
//	sapsysinfo serve --config /etc/sapsysinfo/config.yaml --port 8080
//
// # Output
//
//	--output, -o   file path, cm://namespace/name, oci://registry/repo:tag, or stdout (default)
//	--format, -t   json, yaml, table (default: from the file extension, else yaml)
//
// # Configuration
//
// Engine access is read from --config and SAPSYSINFO_* environment
// variables, then overridden by --engine-* flags. SAPSYSINFO_SID,
// SAPSYSINFO_USERNAME and SAPSYSINFO_PASSWORD back the collect flags so
// credentials stay out of the process list.
//
// # Exit Codes
//
//	0  Success
//	1  Invalid arguments or collection failure
package cli
