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

// Package header provides the common header of serialized resources.
//
// A Header follows Kubernetes style resource conventions:
//
//	kind: SystemSnapshot
//	apiVersion: sapsysinfo.sapucc.io/v1alpha1
//	metadata:
//	  timestamp: "2026-01-12T10:30:00Z"
//	  version: v0.4.0
//	  sid: S4H
//	  source: sapapp01.example.com
//	  run-id: 0b7a1c3e-5d7f-4b7e-9d0a-51a3f0f1b6c2
//
// Create a header with functional options:
//
//	h := header.New(
//	    header.WithKind(header.KindSystemSnapshot),
//	    header.WithAPIVersion(header.APIVersion),
//	    header.WithMetadata(header.MetadataSID, "S4H"),
//	)
//
// or reset an embedded header in place with Init, which also stamps the
// current time and producer version.
//
// Readers should check Kind with IsValid and compare APIVersion before
// interpreting the rest of a document.
package header
