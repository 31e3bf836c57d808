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
	"fmt"
	"log/slog"
	"sync"
)

var errUnreachable = stderrors.New("connection refused")

// fakeSAP implements every capability with canned answers.
type fakeSAP struct {
	hostInstances []HostInstance
	listErr       error
	details       []InstanceInfo
	detailsErr    error
	params        map[InstanceNumber]string
	paramsErr     map[InstanceNumber]error
	components    []SoftwareComponent
	componentsErr error
	properties    map[InstanceNumber]map[string]string
	grep          GrepResult
	grepErr       error
	http          map[string]*HTTPResponse
	domain        string
	fqdn          string

	listFallback []bool
	detailTarget []Target
	propsTargets []Target
	grepCalls    []string
	httpCalls    []string
	httpVerify   []bool
}

func (f *fakeSAP) ListInstances(_ context.Context, _ string, _ Credentials, fallback bool) ([]HostInstance, error) {
	f.listFallback = append(f.listFallback, fallback)
	return f.hostInstances, f.listErr
}

func (f *fakeSAP) SystemInstanceList(_ context.Context, t Target) ([]InstanceInfo, error) {
	f.detailTarget = append(f.detailTarget, t)
	return f.details, f.detailsErr
}

func (f *fakeSAP) ParameterValue(_ context.Context, t Target, _ string) (string, error) {
	if err := f.paramsErr[t.Instance]; err != nil {
		return "", err
	}
	return f.params[t.Instance], nil
}

func (f *fakeSAP) ABAPComponentList(_ context.Context, _ Target) ([]SoftwareComponent, error) {
	return f.components, f.componentsErr
}

func (f *fakeSAP) InstanceProperties(_ context.Context, t Target) (map[string]string, error) {
	f.propsTargets = append(f.propsTargets, t)
	props, ok := f.properties[t.Instance]
	if !ok {
		return nil, fmt.Errorf("no properties for %s", t.Instance)
	}
	return props, nil
}

func (f *fakeSAP) Grep(_ context.Context, path, pattern string) (GrepResult, error) {
	f.grepCalls = append(f.grepCalls, path+":"+pattern)
	return f.grep, f.grepErr
}

func (f *fakeSAP) Get(_ context.Context, url string, verify bool) (*HTTPResponse, error) {
	f.httpCalls = append(f.httpCalls, url)
	f.httpVerify = append(f.httpVerify, verify)
	resp, ok := f.http[url]
	if !ok {
		return nil, errUnreachable
	}
	return resp, nil
}

func (f *fakeSAP) Domain(_ context.Context) (string, error) {
	return f.domain, nil
}

func (f *fakeSAP) FQDN(_ context.Context) (string, error) {
	return f.fqdn, nil
}

func (f *fakeSAP) capabilities() Capabilities {
	return Capabilities{HostControl: f, Control: f, Files: f, HTTP: f, Facts: f}
}

// recordingHandler keeps every log record for inspection.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

// count returns the number of records at level whose message is msg.
// An empty msg matches every message.
func (h *recordingHandler) count(level slog.Level, msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level && (msg == "" || r.Message == msg) {
			n++
		}
	}
	return n
}

func newRecordingLogger() (*slog.Logger, *recordingHandler) {
	h := &recordingHandler{}
	return slog.New(h), h
}
