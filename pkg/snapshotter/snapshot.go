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
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sapucc/sapsysinfo/pkg/defaults"
	"github.com/sapucc/sapsysinfo/pkg/header"
	"github.com/sapucc/sapsysinfo/pkg/sap"
	"github.com/sapucc/sapsysinfo/pkg/serializer"
	"golang.org/x/sync/errgroup"
)

// SystemSnapshotter collects a single SAP system and wraps the result in a
// Snapshot carrying run metadata.
type SystemSnapshotter struct {
	// Version is recorded in the snapshot metadata.
	Version string

	// Collector performs the collection. Required.
	Collector SystemCollector

	// Facts resolves the source FQDN recorded in the metadata. Optional.
	Facts sap.HostFacts

	// Serializer receives the snapshot in Measure. Defaults to JSON on stdout.
	Serializer serializer.Serializer

	// Timeout bounds one collection. Defaults to defaults.CollectorTimeout.
	Timeout time.Duration
}

// Measure takes a snapshot and serializes it.
func (s *SystemSnapshotter) Measure(ctx context.Context, req sap.Request) error {
	snap, err := s.Snapshot(ctx, req)
	if err != nil {
		return err
	}

	if s.Serializer == nil {
		s.Serializer = serializer.NewWriter(serializer.FormatJSON, os.Stdout)
	}
	if err := s.Serializer.Serialize(ctx, snap); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}
	return nil
}

// Snapshot collects req.SID and returns the snapshot without writing it.
// Collection errors are returned unchanged so callers can read their codes.
func (s *SystemSnapshotter) Snapshot(ctx context.Context, req sap.Request) (*Snapshot, error) {
	if s.Collector == nil {
		return nil, fmt.Errorf("snapshotter has no collector")
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaults.CollectorTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	runID := uuid.NewString()
	log := slog.Default().With("sid", req.SID, "run_id", runID)
	log.Debug("starting system snapshot")

	snap := NewSnapshot()
	var source string

	// Metadata never fails the snapshot, so gctx is only canceled by the
	// collection itself.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stepStart := time.Now()
		defer func() {
			snapshotStepDuration.WithLabelValues("metadata").Observe(time.Since(stepStart).Seconds())
		}()
		if s.Facts == nil {
			return nil
		}
		fqdn, err := s.Facts.FQDN(gctx)
		if err != nil {
			log.Warn("failed to resolve source fqdn", "error", err)
			return nil
		}
		source = fqdn
		return nil
	})

	g.Go(func() error {
		stepStart := time.Now()
		defer func() {
			snapshotStepDuration.WithLabelValues("system").Observe(time.Since(stepStart).Seconds())
		}()
		data, err := s.Collector.Collect(gctx, req)
		if err != nil {
			log.Error("failed to collect system", "error", err)
			return err
		}
		if data != nil {
			snap.System = data
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	snap.Init(header.KindSystemSnapshot, header.APIVersion, s.Version)
	snap.Metadata[header.MetadataSID] = req.SID
	snap.Metadata[header.MetadataRunID] = runID
	if source != "" {
		snap.Metadata[header.MetadataSource] = source
	}

	status := "success"
	if snap.System.IsEmpty() {
		status = "empty"
	}
	snapshotCollectionTotal.WithLabelValues(status).Inc()
	snapshotInstanceCount.Set(float64(len(snap.System.Instances)))

	log.Debug("system snapshot complete", "instances", len(snap.System.Instances))
	return snap, nil
}
