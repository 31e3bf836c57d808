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

// Package sap assembles a consolidated description of an SAP system.
//
// A Collector queries the SAP host agent for the instances of a system,
// fetches each instance's profile parameters and properties through the
// SAP control protocol, and extracts type specific facts:
//
//   - ABAP instances: database host and name, installed software components,
//     and ICM HTTP/HTTPS ports
//   - ASCS instances: the message server endpoint and the system's logon groups
//   - other types (WEBDISP, JAVA, TREX, HDB): classification only
//
// The collector does not speak any SAP protocol itself. All remote operations
// go through a fixed Capabilities set supplied by the caller:
//
//	caps := sap.Capabilities{
//	    HostControl: engineClient,
//	    Control:     engineClient,
//	    Files:       engineClient,
//	    HTTP:        httpclient.NewGetter(),
//	    Facts:       engineClient,
//	}
//	c, err := sap.NewCollector(caps, sap.WithLogger(slog.Default()))
//	if err != nil {
//	    return err
//	}
//	data, err := c.Collect(ctx, sap.Request{SID: "S4H", Credentials: creds, Verify: true})
//
// # Failure Model
//
// Collection is best effort. Missing parameters, components, or unreachable
// message servers are logged and the corresponding fields are left empty or
// set to defaults. Only two situations end a collection early:
//
//   - discovery finds no instances: an empty SystemData is returned
//   - discovery finds instances but their details cannot be read: an error
//     with code INCONSISTENT_SYSTEM naming the system and host is returned
//
// Every call runs in sequence on the caller's goroutine; there are no retries.
package sap
