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

// Package snapshotter turns one SAP system collection into a Snapshot.
//
// A Snapshot is the collected sap.SystemData under a header carrying:
//   - kind SystemSnapshot and the sapsysinfo API version
//   - the SID, a random run ID and the collection timestamp
//   - the producer version and, when known, the FQDN of the collecting host
//
// SystemSnapshotter runs the collection and the metadata lookup side by side
// with errgroup. A failed metadata lookup is logged and ignored. A failed
// collection fails the snapshot with the collector's error unchanged.
//
//	s := &snapshotter.SystemSnapshotter{
//	    Version:    version,
//	    Collector:  collector,
//	    Facts:      facts,
//	    Serializer: out,
//	}
//	if err := s.Measure(ctx, sap.Request{SID: "S4H", Credentials: creds}); err != nil {
//	    return err
//	}
//
// The API server calls Snapshot instead of Measure and writes the result
// itself.
//
// # Metrics
//
//   - sapsysinfo_snapshot_collection_duration_seconds
//   - sapsysinfo_snapshot_collection_total{status}
//   - sapsysinfo_snapshot_step_duration_seconds{step}
//   - sapsysinfo_snapshot_instances
package snapshotter
