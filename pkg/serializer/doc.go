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

// Package serializer reads and writes system snapshots.
//
// Three output formats are supported:
//   - json: indented JSON
//   - yaml: YAML
//   - table: a flattened FIELD/VALUE listing keyed by JSON field names
//
// Output destinations are chosen by NewOutput:
//
//	out, err := serializer.NewOutput(serializer.FormatYAML, "cm://sap/s4h")
//	if err != nil {
//	    return err
//	}
//	defer out.(serializer.Closer).Close()
//	err = out.Serialize(ctx, snap)
//
// ConfigMap destinations are written with server-side apply under the
// "sapsysinfo" field manager and carry the snapshot kind, version and SID as
// labels.
//
// FromFile reads a snapshot back from a local file, an http(s) URL or a
// ConfigMap:
//
//	snap, err := serializer.FromFile[snapshotter.Snapshot](ctx, "cm://sap/s4h")
//
// RespondJSON is the JSON writer used by the API server.
package serializer
