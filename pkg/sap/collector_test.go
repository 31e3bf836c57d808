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

package sap

import (
	"context"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapucc/sapsysinfo/pkg/errors"
)

const abapParams = `SAPDBHOST = hanadb01
rsdb/dbid = S4H
SAPSYSTEMNAME = S4H
icm/server_port_0 = PROT=HTTP,PORT=8000,TIMEOUT=60
icm/server_port_1 = PROT=HTTPS,PORT=44300,PROCTIMEOUT=600`

const ascsParams = `SAPSYSTEMNAME = S4H
ms/server_port_0 = PROT=HTTP,PORT=8101
ms/server_port_1 = PROT=HTTPS,PORT=44301`

func newS4H() *fakeSAP {
	return &fakeSAP{
		hostInstances: []HostInstance{{Hostname: "sapapp01", Instance: 0}},
		details: []InstanceInfo{
			{Hostname: "sapapp01", Instance: 0, Features: []string{FeatureABAP, "GATEWAY", "ICMAN", "IGS"}},
			{Hostname: "sapascs", Instance: 1, Features: []string{FeatureMessageServer, "ENQUE"}},
		},
		params: map[InstanceNumber]string{
			0: abapParams,
			1: ascsParams,
		},
		components: []SoftwareComponent{
			{Component: "SAP_BASIS", Release: "757", PatchLevel: "0001", ComponentType: "S", Description: "SAP Basis Component"},
		},
		properties: map[InstanceNumber]map[string]string{
			0: {PropertyInstanceName: "D00"},
			1: {PropertyInstanceName: "ASCS01"},
		},
		grep: GrepResult{Retcode: 0, Stdout: "sapmsS4H\t3601/tcp\t# SAP System Message Server Port"},
		http: map[string]*HTTPResponse{
			"http://sapascs.example.com:8101/msgserver/text/lglist": {
				StatusCode: 200,
				Body:       "GROUP\tINFO\nPUBLIC\t1\nSPACE\t2\n",
			},
		},
		domain: "example.com",
		fqdn:   "sapapp01.example.com",
	}
}

func newTestCollector(t *testing.T, f *fakeSAP, opts ...Option) (*Collector, *recordingHandler) {
	t.Helper()
	logger, rec := newRecordingLogger()
	c, err := NewCollector(f.capabilities(), append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return c, rec
}

func TestCollect_FullSystem(t *testing.T) {
	f := newS4H()
	c, _ := newTestCollector(t, f)

	data, err := c.Collect(t.Context(), Request{SID: "S4H", Verify: true})
	require.NoError(t, err)

	require.Len(t, data.Instances, 2)

	app := data.Instances[0]
	require.NotNil(t, app)
	assert.Equal(t, "sapapp01", app.Hostname)
	assert.Equal(t, "sapapp01.example.com", app.FQDN)
	assert.Equal(t, TypeABAP, app.Type)
	assert.Equal(t, "D00", app.Name)
	assert.Equal(t, 8000, app.HTTPPort)
	assert.Equal(t, 44300, app.HTTPSPort)

	ascs := data.Instances[1]
	require.NotNil(t, ascs)
	assert.Equal(t, TypeASCS, ascs.Type)
	assert.Equal(t, "ASCS01", ascs.Name)
	assert.Equal(t, 8101, ascs.HTTPPort)
	assert.Equal(t, 44301, ascs.HTTPSPort)

	assert.Equal(t, "hanadb01", data.DBHost)
	assert.Equal(t, "S4H", data.DBInstance)
	assert.Equal(t, f.components, data.SoftwareComponents)

	require.Len(t, data.MessageServers, 1)
	assert.Equal(t, MessageServerRecord{
		Host:     "sapascs.example.com",
		MSPort:   3601,
		HTTPPort: 8101,
	}, data.MessageServers[0])
	assert.Equal(t, []string{"PUBLIC", "SPACE"}, data.LogonGroups)

	assert.Equal(t, []bool{false}, f.listFallback)
	require.Len(t, f.detailTarget, 1)
	assert.Equal(t, "sapapp01.example.com", f.detailTarget[0].FQDN)
	assert.Equal(t, []string{DefaultServicesPath + ":sapmsS4H"}, f.grepCalls)
	assert.Equal(t, []bool{false}, f.httpVerify)
}

func TestCollect_MessageServerListenerPortsStayOnInstance(t *testing.T) {
	f := newS4H()
	f.params[1] = "SAPSYSTEMNAME = S4H\nms/server_port_0 = PROT=HTTPS,PORT=44301"
	c, rec := newTestCollector(t, f)

	data, err := c.Collect(t.Context(), Request{SID: "S4H", Verify: true})
	require.NoError(t, err)

	ascs := data.Instances[1]
	require.NotNil(t, ascs)
	assert.Zero(t, ascs.HTTPPort)
	assert.Equal(t, 44301, ascs.HTTPSPort)

	require.Len(t, data.MessageServers, 1)
	assert.Equal(t, MessageServerRecord{
		Host:     "sapascs.example.com",
		MSPort:   3601,
		HTTPPort: 8101,
	}, data.MessageServers[0])
	assert.Equal(t, []string{"http://sapascs.example.com:8101/msgserver/text/lglist"}, f.httpCalls)
	assert.Zero(t, rec.count(slog.LevelWarn,
		"could not determine HTTP/HTTPS port of message server, using default"))
}

func TestCollect_PropertiesUseInstanceFQDN(t *testing.T) {
	f := newS4H()
	c, _ := newTestCollector(t, f)

	_, err := c.Collect(t.Context(), Request{SID: "S4H"})
	require.NoError(t, err)

	require.Len(t, f.propsTargets, 2)
	fqdns := map[InstanceNumber]string{}
	for _, pt := range f.propsTargets {
		fqdns[pt.Instance] = pt.FQDN
	}
	assert.Equal(t, "sapapp01.example.com", fqdns[0])
	assert.Equal(t, "sapascs.example.com", fqdns[1])
}

func TestCollect_FallbackFollowsVerify(t *testing.T) {
	f := newS4H()
	c, _ := newTestCollector(t, f)

	_, err := c.Collect(t.Context(), Request{SID: "S4H", Verify: false})
	require.NoError(t, err)
	_, err = c.Collect(t.Context(), Request{SID: "S4H", Verify: true})
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, f.listFallback)
}

func TestCollect_EmptyDiscovery(t *testing.T) {
	f := newS4H()
	f.hostInstances = nil
	c, rec := newTestCollector(t, f)

	data, err := c.Collect(t.Context(), Request{SID: "S4H"})
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.True(t, data.IsEmpty())
	assert.Empty(t, f.detailTarget)
	assert.Equal(t, 1, rec.count(slog.LevelWarn, "no instances found"))
}

func TestCollect_EmptyDetails(t *testing.T) {
	f := newS4H()
	f.details = nil
	c, _ := newTestCollector(t, f)

	data, err := c.Collect(t.Context(), Request{SID: "S4H"})
	require.Error(t, err)
	assert.Nil(t, data)
	assert.Contains(t, err.Error(), "S4H")
	assert.Contains(t, err.Error(), "sapapp01.example.com")
	assert.Equal(t, errors.ErrCodeInconsistent, errors.CodeOf(err))
}

func TestCollect_CapabilityFailures(t *testing.T) {
	boom := stderrors.New("boom")

	tests := []struct {
		name   string
		mutate func(f *fakeSAP)
		code   errors.ErrorCode
	}{
		{
			name:   "list instances",
			mutate: func(f *fakeSAP) { f.listErr = boom },
			code:   errors.ErrCodeUnavailable,
		},
		{
			name:   "instance details",
			mutate: func(f *fakeSAP) { f.detailsErr = boom },
			code:   errors.ErrCodeUnavailable,
		},
		{
			name:   "code of capability error kept",
			mutate: func(f *fakeSAP) { f.listErr = errors.Wrap(errors.ErrCodeUnauthorized, "denied", boom) },
			code:   errors.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newS4H()
			tt.mutate(f)
			c, _ := newTestCollector(t, f)

			_, err := c.Collect(t.Context(), Request{SID: "S4H"})
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestCollect_MissingSID(t *testing.T) {
	c, _ := newTestCollector(t, newS4H())

	_, err := c.Collect(t.Context(), Request{SID: " "})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestCollect_CanceledContext(t *testing.T) {
	c, _ := newTestCollector(t, newS4H())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := c.Collect(ctx, Request{SID: "S4H"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}

func TestCollect_ParameterFailureIsNotFatal(t *testing.T) {
	f := newS4H()
	f.paramsErr = map[InstanceNumber]error{0: stderrors.New("permission denied")}
	c, rec := newTestCollector(t, f)

	data, err := c.Collect(t.Context(), Request{SID: "S4H", Verify: true})
	require.NoError(t, err)

	app := data.Instances[0]
	require.NotNil(t, app)
	assert.Equal(t, TypeABAP, app.Type)
	assert.Zero(t, app.HTTPPort)
	assert.Zero(t, app.HTTPSPort)
	assert.Empty(t, data.DBHost)
	assert.Empty(t, data.DBInstance)
	assert.Equal(t, f.components, data.SoftwareComponents)
	assert.Equal(t, 1, rec.count(slog.LevelWarn, "could not retrieve parameters"))
	assert.Equal(t, 1, rec.count(slog.LevelWarn, "parameter SAPDBHOST does not exist"))
}

func TestCollect_InstanceNameDefault(t *testing.T) {
	f := newS4H()
	f.properties = map[InstanceNumber]map[string]string{
		0: {"SAPSYSTEMNAME": "S4H"},
	}
	c, _ := newTestCollector(t, f)

	data, err := c.Collect(t.Context(), Request{SID: "S4H"})
	require.NoError(t, err)
	assert.Equal(t, UnknownInstanceName, data.Instances[0].Name)
	assert.Equal(t, UnknownInstanceName, data.Instances[1].Name)
}

func TestCollect_MessageServerDefaults(t *testing.T) {
	f := newS4H()
	f.grep = GrepResult{Retcode: 1}
	f.params[1] = "SAPSYSTEMNAME = S4H"
	c, rec := newTestCollector(t, f)

	data, err := c.Collect(t.Context(), Request{SID: "S4H"})
	require.NoError(t, err)

	require.Len(t, data.MessageServers, 1)
	ms := data.MessageServers[0]
	assert.Equal(t, 3601, ms.MSPort)
	assert.Equal(t, 8101, ms.HTTPPort)
	assert.Zero(t, ms.HTTPSPort)

	// the default HTTP port is not written back to the instance
	assert.Zero(t, data.Instances[1].HTTPPort)

	assert.Equal(t, []string{"http://sapascs.example.com:8101/msgserver/text/lglist"}, f.httpCalls)
	assert.Equal(t, []string{DefaultLogonGroup}, data.LogonGroups)
	assert.Equal(t, 1, rec.count(slog.LevelWarn,
		"could not determine HTTP/HTTPS port of message server, using default"))
}

func TestCollect_LogonGroupFallback(t *testing.T) {
	tests := []struct {
		name string
		resp *HTTPResponse
	}{
		{name: "unreachable"},
		{name: "server error", resp: &HTTPResponse{StatusCode: 500, Body: "oops"}},
		{name: "empty body", resp: &HTTPResponse{StatusCode: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newS4H()
			f.http = map[string]*HTTPResponse{}
			if tt.resp != nil {
				f.http["http://sapascs.example.com:8101/msgserver/text/lglist"] = tt.resp
			}
			c, _ := newTestCollector(t, f)

			data, err := c.Collect(t.Context(), Request{SID: "S4H", Verify: true})
			require.NoError(t, err)
			assert.Equal(t, []string{"SPACE"}, data.LogonGroups)
		})
	}
}

func TestCollect_LegacyLogonGroupPort(t *testing.T) {
	f := newS4H()
	c, rec := newTestCollector(t, f, WithLegacyLogonGroupPort(true))

	data, err := c.Collect(t.Context(), Request{SID: "S4H", Verify: false})
	require.NoError(t, err)

	// the message server record has no HTTPS port, so nothing is probed
	assert.Empty(t, f.httpCalls)
	assert.Equal(t, []string{DefaultLogonGroup}, data.LogonGroups)
	assert.Equal(t, 1, rec.count(slog.LevelWarn,
		"could not reach any message server to retrieve logon groups, using default"))
}

func TestCollect_Idempotent(t *testing.T) {
	f := newS4H()
	c, _ := newTestCollector(t, f)

	first, err := c.Collect(t.Context(), Request{SID: "S4H", Verify: true})
	require.NoError(t, err)
	second, err := c.Collect(t.Context(), Request{SID: "S4H", Verify: true})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, second.MessageServers, 1)
}

func TestCollect_ServicesPathOption(t *testing.T) {
	f := newS4H()
	c, _ := newTestCollector(t, f, WithServicesPath("/usr/sap/services"))

	_, err := c.Collect(t.Context(), Request{SID: "S4H"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/sap/services:sapmsS4H"}, f.grepCalls)
}

func TestNewCollector_MissingCapabilities(t *testing.T) {
	f := newS4H()
	caps := f.capabilities()
	caps.HTTP = nil
	caps.Files = nil

	_, err := NewCollector(caps)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "http")
}

func TestJoinFQDN(t *testing.T) {
	assert.Equal(t, "host.example.com", JoinFQDN("host", "example.com"))
	assert.Equal(t, "host", JoinFQDN("host", ""))
}
