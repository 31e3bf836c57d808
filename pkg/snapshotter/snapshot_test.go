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
	"testing"
	"time"

	"github.com/sapucc/sapsysinfo/pkg/errors"
	"github.com/sapucc/sapsysinfo/pkg/header"
	"github.com/sapucc/sapsysinfo/pkg/sap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCollector struct {
	data *sap.SystemData
	err  error
	wait bool
	got  sap.Request
}

func (f *fakeCollector) Collect(ctx context.Context, req sap.Request) (*sap.SystemData, error) {
	f.got = req
	if f.wait {
		<-ctx.Done()
		return nil, errors.Wrap(errors.ErrCodeTimeout, "collection canceled", ctx.Err())
	}
	return f.data, f.err
}

type fakeFacts struct {
	fqdn string
	err  error
}

func (f fakeFacts) Domain(context.Context) (string, error) { return "example.com", nil }
func (f fakeFacts) FQDN(context.Context) (string, error)   { return f.fqdn, f.err }

type captureSerializer struct {
	got any
	err error
}

func (c *captureSerializer) Serialize(_ context.Context, v any) error {
	c.got = v
	return c.err
}

func s4hData() *sap.SystemData {
	return &sap.SystemData{
		Instances: map[sap.InstanceNumber]*sap.InstanceRecord{
			0: {Hostname: "sapascs", FQDN: "sapascs.example.com", Type: sap.TypeASCS},
			1: {Hostname: "sappas", FQDN: "sappas.example.com", Type: sap.TypeABAP},
		},
		DBHost: "saphana",
	}
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot()
	require.NotNil(t, snap.System)
	assert.True(t, snap.System.IsEmpty())
}

func TestSystemSnapshotter_Snapshot(t *testing.T) {
	coll := &fakeCollector{data: s4hData()}
	s := &SystemSnapshotter{
		Version:   "v1.0.0",
		Collector: coll,
		Facts:     fakeFacts{fqdn: "controller.example.com"},
	}

	req := sap.Request{SID: "S4H", Credentials: sap.Credentials{Username: "s4hadm"}}
	snap, err := s.Snapshot(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, req, coll.got)
	assert.Equal(t, header.KindSystemSnapshot, snap.Kind)
	assert.Equal(t, header.APIVersion, snap.APIVersion)
	assert.Equal(t, "S4H", snap.Metadata[header.MetadataSID])
	assert.Equal(t, "v1.0.0", snap.Metadata[header.MetadataVersion])
	assert.Equal(t, "controller.example.com", snap.Metadata[header.MetadataSource])
	assert.NotEmpty(t, snap.Metadata[header.MetadataRunID])
	assert.NotEmpty(t, snap.Metadata[header.MetadataTimestamp])
	assert.Len(t, snap.System.Instances, 2)
	assert.Equal(t, "saphana", snap.System.DBHost)
}

func TestSystemSnapshotter_RunIDsDiffer(t *testing.T) {
	s := &SystemSnapshotter{Collector: &fakeCollector{data: s4hData()}}

	a, err := s.Snapshot(context.Background(), sap.Request{SID: "S4H"})
	require.NoError(t, err)
	b, err := s.Snapshot(context.Background(), sap.Request{SID: "S4H"})
	require.NoError(t, err)

	assert.NotEqual(t, a.Metadata[header.MetadataRunID], b.Metadata[header.MetadataRunID])
}

func TestSystemSnapshotter_EmptySystem(t *testing.T) {
	for name, data := range map[string]*sap.SystemData{
		"empty value": {},
		"nil value":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			s := &SystemSnapshotter{Collector: &fakeCollector{data: data}}
			snap, err := s.Snapshot(context.Background(), sap.Request{SID: "XYZ"})
			require.NoError(t, err)
			require.NotNil(t, snap.System)
			assert.True(t, snap.System.IsEmpty())
			assert.Equal(t, "XYZ", snap.Metadata[header.MetadataSID])
		})
	}
}

func TestSystemSnapshotter_FactsFailureIsNotFatal(t *testing.T) {
	s := &SystemSnapshotter{
		Collector: &fakeCollector{data: s4hData()},
		Facts:     fakeFacts{err: fmt.Errorf("no route")},
	}

	snap, err := s.Snapshot(context.Background(), sap.Request{SID: "S4H"})
	require.NoError(t, err)
	_, ok := snap.Metadata[header.MetadataSource]
	assert.False(t, ok)
}

func TestSystemSnapshotter_CollectError(t *testing.T) {
	cause := errors.New(errors.ErrCodeInconsistent, "no instance details")
	s := &SystemSnapshotter{Collector: &fakeCollector{err: cause}}

	snap, err := s.Snapshot(context.Background(), sap.Request{SID: "S4H"})
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, errors.ErrCodeInconsistent, errors.CodeOf(err))
}

func TestSystemSnapshotter_Timeout(t *testing.T) {
	s := &SystemSnapshotter{
		Collector: &fakeCollector{wait: true},
		Timeout:   20 * time.Millisecond,
	}

	_, err := s.Snapshot(context.Background(), sap.Request{SID: "S4H"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}

func TestSystemSnapshotter_NoCollector(t *testing.T) {
	s := &SystemSnapshotter{}
	_, err := s.Snapshot(context.Background(), sap.Request{SID: "S4H"})
	assert.Error(t, err)
}

func TestSystemSnapshotter_Measure(t *testing.T) {
	t.Run("serializes snapshot", func(t *testing.T) {
		out := &captureSerializer{}
		s := &SystemSnapshotter{Collector: &fakeCollector{data: s4hData()}, Serializer: out}

		require.NoError(t, s.Measure(context.Background(), sap.Request{SID: "S4H"}))
		snap, ok := out.got.(*Snapshot)
		require.True(t, ok, "serializer got %T", out.got)
		assert.Len(t, snap.System.Instances, 2)
	})

	t.Run("serializer failure", func(t *testing.T) {
		out := &captureSerializer{err: fmt.Errorf("disk full")}
		s := &SystemSnapshotter{Collector: &fakeCollector{data: s4hData()}, Serializer: out}

		err := s.Measure(context.Background(), sap.Request{SID: "S4H"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to serialize")
	})

	t.Run("collect failure skips serializer", func(t *testing.T) {
		out := &captureSerializer{}
		s := &SystemSnapshotter{
			Collector:  &fakeCollector{err: errors.New(errors.ErrCodeUnavailable, "engine down")},
			Serializer: out,
		}

		require.Error(t, s.Measure(context.Background(), sap.Request{SID: "S4H"}))
		assert.Nil(t, out.got)
	})
}
