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
	"fmt"
	"log/slog"
	"strings"

	"github.com/sapucc/sapsysinfo/pkg/errors"
)

const (
	// PropertyInstanceName is the instance property holding the instance name.
	PropertyInstanceName = "INSTANCE_NAME"

	// UnknownInstanceName is used when INSTANCE_NAME is not reported.
	UnknownInstanceName = "UNKNOWN_INSTANCE_NAME"

	// DefaultServicesPath is the network service name database on the SAP host.
	DefaultServicesPath = "/etc/services"
)

// extractor performs the type specific part of processing one instance.
type extractor func(ctx context.Context, run *collection, rec *InstanceRecord, t Target, params *Parameters, log *slog.Logger)

// extractors maps instance types to their extraction behavior. Types without
// an entry are classified only.
var extractors = map[InstanceType]extractor{
	TypeABAP: extractABAP,
	TypeASCS: extractMessageServer,
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger used for collection diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// WithServicesPath overrides the path of the service name database.
func WithServicesPath(path string) Option {
	return func(c *Collector) {
		c.servicesPath = path
	}
}

// WithLegacyLogonGroupPort makes plain HTTP logon group probes use the
// message server HTTPS port, matching older deployments that serve plain
// HTTP on that port.
func WithLegacyLogonGroupPort(enabled bool) Option {
	return func(c *Collector) {
		c.legacyLogonGroupPort = enabled
	}
}

// Collector assembles SystemData from the host agent and control protocol.
// A Collector holds no per-collection state and can be reused.
type Collector struct {
	caps                 Capabilities
	logger               *slog.Logger
	servicesPath         string
	legacyLogonGroupPort bool
}

// NewCollector validates the capability set and returns a Collector.
func NewCollector(caps Capabilities, opts ...Option) (*Collector, error) {
	if err := caps.Validate(); err != nil {
		return nil, err
	}

	c := &Collector{
		caps:         caps,
		logger:       slog.Default(),
		servicesPath: DefaultServicesPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// collection carries the state of a single Collect call.
type collection struct {
	*Collector
	req    Request
	domain string
	data   *SystemData
	log    *slog.Logger
}

// Collect gathers the description of the system req.SID.
// A system without instances yields an empty SystemData and no error.
func (c *Collector) Collect(ctx context.Context, req Request) (*SystemData, error) {
	if strings.TrimSpace(req.SID) == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "system id is required")
	}

	run := &collection{
		Collector: c,
		req:       req,
		data:      &SystemData{},
		log:       c.logger.With("sid", req.SID),
	}

	run.log.Debug("getting instances")
	hostInstances, err := c.caps.HostControl.ListInstances(ctx, req.SID, req.Credentials, !req.Verify)
	if err != nil {
		return nil, errors.Wrap(errors.CodeOr(err, errors.ErrCodeUnavailable),
			fmt.Sprintf("failed to list instances of %s", req.SID), err)
	}
	if len(hostInstances) == 0 {
		fqdn, _ := c.caps.Facts.FQDN(ctx)
		run.log.Warn("no instances found", "fqdn", fqdn)
		return run.data, nil
	}

	run.domain, err = c.caps.Facts.Domain(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeOr(err, errors.ErrCodeUnavailable), "failed to determine domain", err)
	}

	first := hostInstances[0]
	fqdn := JoinFQDN(first.Hostname, run.domain)
	run.log.Debug("getting instance details", "fqdn", fqdn, "instance", first.Instance.String())

	details, err := c.caps.Control.SystemInstanceList(ctx, Target{
		Instance:    first.Instance,
		FQDN:        fqdn,
		Credentials: req.Credentials,
		Verify:      req.Verify,
	})
	if err != nil {
		return nil, errors.WrapWithContext(errors.CodeOr(err, errors.ErrCodeUnavailable),
			fmt.Sprintf("failed to get instance details for %s on %s", req.SID, fqdn), err,
			map[string]any{"sid": req.SID, "fqdn": fqdn})
	}
	if len(details) == 0 {
		msg := fmt.Sprintf("no instances found for %s on %s", req.SID, fqdn)
		run.log.Error(msg)
		return nil, errors.NewWithContext(errors.ErrCodeInconsistent, msg,
			map[string]any{"sid": req.SID, "fqdn": fqdn})
	}

	run.data.Instances = make(map[InstanceNumber]*InstanceRecord, len(details))
	for _, info := range details {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "collection interrupted", err)
		}
		run.processInstance(ctx, info)
	}

	return run.data, nil
}

// processInstance builds the record for one instance and stores it.
func (run *collection) processInstance(ctx context.Context, info InstanceInfo) {
	rec := &InstanceRecord{
		Hostname: info.Hostname,
		FQDN:     JoinFQDN(info.Hostname, run.domain),
		Features: info.Features,
	}
	t := Target{
		Instance:    info.Instance,
		FQDN:        rec.FQDN,
		Credentials: run.req.Credentials,
		Verify:      run.req.Verify,
	}
	log := run.log.With("instance", info.Instance.String(), "fqdn", rec.FQDN)

	raw, err := run.caps.Control.ParameterValue(ctx, t, "")
	if err != nil {
		log.Warn("could not retrieve parameters", "error", err)
		raw = ""
	}
	params := ParseParameters(raw, log)

	rec.Type = Classify(info.Features)
	log.Debug("classified instance", "type", rec.Type)
	if extract, ok := extractors[rec.Type]; ok {
		extract(ctx, run, rec, t, params, log)
	}

	rec.Name = UnknownInstanceName
	props, err := run.caps.Control.InstanceProperties(ctx, t)
	if err != nil {
		log.Warn("could not retrieve instance properties", "error", err)
	} else if name, ok := props[PropertyInstanceName]; ok && name != "" {
		rec.Name = name
	}

	run.data.Instances[info.Instance] = rec
	log.Debug("added instance", "name", rec.Name, "type", rec.Type)
}

// extractABAP reads database coordinates, software components and ICM ports.
func extractABAP(ctx context.Context, run *collection, rec *InstanceRecord, t Target, params *Parameters, log *slog.Logger) {
	if host, ok := params.Get("SAPDBHOST"); ok {
		run.data.DBHost = host
	} else {
		log.Warn("parameter SAPDBHOST does not exist")
	}

	// rsdb/dbid is the database name, or the tenant name for HANA.
	if dbid, ok := params.Get("rsdb/dbid"); ok {
		run.data.DBInstance = dbid
	} else {
		log.Warn("parameter rsdb/dbid does not exist")
	}

	comps, err := run.caps.Control.ABAPComponentList(ctx, t)
	switch {
	case err != nil:
		log.Warn("could not retrieve ABAP component list", "error", err)
	case len(comps) == 0:
		log.Warn("ABAP component list is empty")
	default:
		run.data.SoftwareComponents = comps
	}

	applyListenerPorts(rec, params, ICMPortPrefix, log)
}

// JoinFQDN appends domain to host unless domain is empty.
func JoinFQDN(host, domain string) string {
	if domain == "" {
		return host
	}
	return host + "." + domain
}
