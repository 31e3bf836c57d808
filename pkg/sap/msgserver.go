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
	"strconv"
	"strings"
)

const (
	// DefaultLogonGroup is the logon group every ABAP system has.
	DefaultLogonGroup = "SPACE"

	// LogonGroupPath is the message server text endpoint listing logon groups.
	LogonGroupPath = "/msgserver/text/lglist"

	// base values of the default port scheme: base + instance number
	defaultMSPortBase     = 3600
	defaultMSHTTPPortBase = 8100
)

// extractMessageServer records the message server endpoint of an ASCS
// instance and refreshes the logon groups of the system.
func extractMessageServer(ctx context.Context, run *collection, rec *InstanceRecord, t Target, params *Parameters, log *slog.Logger) {
	ms := MessageServerRecord{
		Host:   rec.FQDN,
		MSPort: run.messageServerPort(ctx, t.Instance, log),
	}

	// ms/server_port_* describe the instance; the message server record
	// only ever carries the 81<NN> HTTP port.
	applyListenerPorts(rec, params, MessageServerPortPrefix, log)
	ms.HTTPPort = defaultMSHTTPPortBase + int(t.Instance)
	if rec.HTTPPort == 0 && rec.HTTPSPort == 0 {
		log.Warn("could not determine HTTP/HTTPS port of message server, using default",
			"httpport", ms.HTTPPort)
	}

	run.data.MessageServers = append(run.data.MessageServers, ms)
	run.data.LogonGroups = run.logonGroups(ctx, log)
	log.Debug("got logon groups", "logon_groups", run.data.LogonGroups)
}

// messageServerPort looks up sapms<SID> in the service name database and
// falls back to 36<NN>.
func (run *collection) messageServerPort(ctx context.Context, n InstanceNumber, log *slog.Logger) int {
	service := "sapms" + run.req.SID

	res, err := run.caps.Files.Grep(ctx, run.servicesPath, service)
	switch {
	case err != nil:
		log.Debug("service lookup failed", "service", service, "error", err)
	case res.Retcode != 0:
		log.Debug("service not defined", "service", service, "path", run.servicesPath)
	default:
		if port, ok := ParseServicesPort(res.Stdout, service); ok {
			log.Debug("got message server port", "service", service, "port", port)
			return port
		}
		log.Warn("cannot parse service definition", "service", service, "line", res.Stdout)
	}

	port := defaultMSPortBase + int(n)
	log.Debug("using default message server port", "port", port)
	return port
}

// ParseServicesPort returns the port of service from service database lines
// such as "sapmsS4H\t3601/tcp\t# SAP System Message Server Port".
func ParseServicesPort(lines, service string) (int, bool) {
	for _, line := range strings.Split(lines, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != service {
			continue
		}
		portProto, _, _ := strings.Cut(fields[1], "/")
		port, err := strconv.Atoi(portProto)
		if err != nil || port <= 0 {
			continue
		}
		return port, true
	}
	return 0, false
}

// logonGroups probes message servers one at a time and returns the groups
// reported by the first that answers successfully.
func (run *collection) logonGroups(ctx context.Context, log *slog.Logger) []string {
	var body string
	for _, ms := range run.data.MessageServers {
		url, verify, ok := run.logonGroupURL(ms)
		if !ok {
			log.Debug("no usable port to retrieve logon groups", "host", ms.Host)
			continue
		}

		resp, err := run.caps.HTTP.Get(ctx, url, verify)
		if err != nil {
			log.Debug("cannot reach message server to retrieve logon groups", "host", ms.Host, "error", err)
			continue
		}
		if !resp.OK() {
			continue
		}
		body = resp.Body
		break
	}

	if body == "" {
		log.Warn("could not reach any message server to retrieve logon groups, using default",
			"logon_group", DefaultLogonGroup)
		return []string{DefaultLogonGroup}
	}
	return ParseLogonGroups(body)
}

// logonGroupURL builds the lglist URL for ms. HTTPS is used when verification
// is requested and an HTTPS port is known.
func (run *collection) logonGroupURL(ms MessageServerRecord) (string, bool, bool) {
	if run.req.Verify && ms.HTTPSPort != 0 {
		return fmt.Sprintf("https://%s:%d%s", ms.Host, ms.HTTPSPort, LogonGroupPath), true, true
	}

	port := ms.HTTPPort
	if run.legacyLogonGroupPort {
		port = ms.HTTPSPort
	}
	if port == 0 {
		return "", false, false
	}
	return fmt.Sprintf("http://%s:%d%s", ms.Host, port, LogonGroupPath), false, true
}

// ParseLogonGroups extracts group names from an lglist response: the first
// line is a header, empty lines are skipped, the name is the first tab field.
func ParseLogonGroups(body string) []string {
	groups := make([]string, 0)
	lines := strings.Split(body, "\n")
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		name, _, _ := strings.Cut(line, "\t")
		groups = append(groups, name)
	}
	return groups
}
