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

// Package oci stores snapshots as OCI artifacts in container registries.
//
// A snapshot artifact is an OCI 1.1 image manifest with artifact type
// "application/vnd.sapsysinfo.snapshot.v1" and one layer holding the
// encoded snapshot. The layer media type carries the encoding, for example
// "application/vnd.sapsysinfo.snapshot.v1+yaml".
//
//	ref, err := oci.ParseReference("oci://ghcr.io/acme/sap-snapshots:prd")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.Push(ctx, ref, &oci.Artifact{
//	    Data:      data,
//	    MediaType: oci.LayerMediaType("yaml"),
//	}, oci.Options{})
//
// Credentials are read from the Docker configuration (~/.docker/config.json)
// through the ORAS credential helpers. PlainHTTP and InsecureTLS serve local
// development registries.
package oci
