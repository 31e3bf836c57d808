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
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Parameter prefixes carrying PROT/PORT listener definitions.
const (
	ICMPortPrefix           = "icm/server_port_"
	MessageServerPortPrefix = "ms/server_port_"
)

// Protocols recognized in listener definitions.
const (
	ProtocolHTTP  = "HTTP"
	ProtocolHTTPS = "HTTPS"
)

// ErrIncompletePortSpec is returned when a listener definition lacks PROT or PORT.
var ErrIncompletePortSpec = stderrors.New("protocol or port not defined")

// PortSpec is a parsed listener definition such as "PROT=HTTP,PORT=8000".
type PortSpec struct {
	Protocol string
	Port     int
	// Unknown holds sub-fields other than PROT and PORT, verbatim.
	Unknown []string
}

// NormalizedProtocol returns the protocol upper-cased for comparison.
func (s PortSpec) NormalizedProtocol() string {
	return cases.Upper(language.Und).String(s.Protocol)
}

// ParsePortSpec parses a comma separated list of KEY=VALUE sub-fields and
// collects PROT and PORT. Other sub-fields are returned in Unknown.
func ParsePortSpec(value string) (PortSpec, error) {
	var spec PortSpec
	var port string

	for _, field := range strings.Split(value, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		k, v, found := strings.Cut(field, "=")
		if !found {
			spec.Unknown = append(spec.Unknown, strings.TrimSpace(field))
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		switch k {
		case "PROT":
			spec.Protocol = v
		case "PORT":
			port = v
		default:
			spec.Unknown = append(spec.Unknown, k+"="+v)
		}
	}

	if spec.Protocol == "" || port == "" {
		return spec, ErrIncompletePortSpec
	}

	n, err := strconv.Atoi(port)
	if err != nil {
		return spec, fmt.Errorf("invalid port %q: %w", port, err)
	}
	if n <= 0 {
		return spec, ErrIncompletePortSpec
	}
	spec.Port = n
	return spec, nil
}

// applyListenerPorts reads every parameter starting with prefix and sets the
// HTTP and HTTPS port of rec. Problems are logged and the entry is skipped.
func applyListenerPorts(rec *InstanceRecord, params *Parameters, prefix string, logger *slog.Logger) {
	for _, key := range params.WithPrefix(prefix) {
		value, _ := params.Get(key)
		logger.Debug("processing listener definition", "parameter", key, "value", value)

		spec, err := ParsePortSpec(value)
		for _, u := range spec.Unknown {
			logger.Warn("unknown listener sub-parameter", "parameter", key, "field", u)
		}
		if err != nil {
			logger.Warn("skipping listener definition", "parameter", key, "error", err)
			continue
		}

		switch spec.NormalizedProtocol() {
		case ProtocolHTTPS:
			rec.HTTPSPort = spec.Port
			logger.Debug("got HTTPS port", "parameter", key, "port", spec.Port)
		case ProtocolHTTP:
			rec.HTTPPort = spec.Port
			logger.Debug("got HTTP port", "parameter", key, "port", spec.Port)
		default:
			logger.Error("unknown protocol, skipping", "parameter", key, "protocol", spec.NormalizedProtocol())
		}
	}
}
