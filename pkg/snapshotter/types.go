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

package snapshotter

import (
	"context"

	"github.com/sapucc/sapsysinfo/pkg/header"
	"github.com/sapucc/sapsysinfo/pkg/sap"
)

// Snapshotter collects one SAP system and writes it out.
type Snapshotter interface {
	Measure(ctx context.Context, req sap.Request) error
}

// SystemCollector is the collection step of a snapshot. *sap.Collector
// implements it.
type SystemCollector interface {
	Collect(ctx context.Context, req sap.Request) (*sap.SystemData, error)
}

// Snapshot is a serialized SAP system description.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	// System is never nil. A system with no instances means the SID is not
	// installed on the host.
	System *sap.SystemData `json:"system" yaml:"system"`
}

// NewSnapshot returns a Snapshot with an empty system.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		System: &sap.SystemData{},
	}
}
