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
	"net/http"
	"strings"

	"github.com/sapucc/sapsysinfo/pkg/errors"
)

// HostControl discovers instances through the SAP host agent.
type HostControl interface {
	// ListInstances returns the instances of sid installed on the host.
	// fallback allows the host agent call to drop to plain HTTP.
	ListInstances(ctx context.Context, sid string, creds Credentials, fallback bool) ([]HostInstance, error)
}

// Control performs SAP control protocol (sapstartsrv) calls against one instance.
type Control interface {
	// SystemInstanceList returns every instance of the system the target belongs to.
	SystemInstanceList(ctx context.Context, t Target) ([]InstanceInfo, error)

	// ParameterValue returns profile parameters as "key=value" lines.
	// An empty parameter name returns all parameters.
	ParameterValue(ctx context.Context, t Target, parameter string) (string, error)

	// ABAPComponentList returns the installed ABAP software components.
	ABAPComponentList(ctx context.Context, t Target) ([]SoftwareComponent, error)

	// InstanceProperties returns instance properties such as INSTANCE_NAME.
	InstanceProperties(ctx context.Context, t Target) (map[string]string, error)
}

// GrepResult mirrors the outcome of running grep on a file:
// Retcode 0 means at least one match, 1 no match, anything else an error.
type GrepResult struct {
	Retcode int
	Stdout  string
	Stderr  string
}

// FileGrepper searches files on the SAP host.
type FileGrepper interface {
	Grep(ctx context.Context, path, pattern string) (GrepResult, error)
}

// HTTPResponse is the part of an HTTP response the collector looks at.
type HTTPResponse struct {
	StatusCode int
	Body       string
}

// OK reports whether the status code is below 400.
func (r *HTTPResponse) OK() bool {
	return r != nil && r.StatusCode < http.StatusBadRequest
}

// HTTPGetter performs plain GET requests. With verify set, TLS certificates are
// checked against the system CA bundle; otherwise verification is disabled.
// Connection level failures are returned as errors, unsuccessful statuses are not.
type HTTPGetter interface {
	Get(ctx context.Context, url string, verify bool) (*HTTPResponse, error)
}

// HostFacts exposes facts about the controlling host.
type HostFacts interface {
	Domain(ctx context.Context) (string, error)
	FQDN(ctx context.Context) (string, error)
}

// Capabilities is the fixed set of collaborators a Collector works with.
type Capabilities struct {
	HostControl HostControl
	Control     Control
	Files       FileGrepper
	HTTP        HTTPGetter
	Facts       HostFacts
}

// Validate returns an error naming every missing capability.
func (c Capabilities) Validate() error {
	var missing []string
	if c.HostControl == nil {
		missing = append(missing, "host control")
	}
	if c.Control == nil {
		missing = append(missing, "control")
	}
	if c.Files == nil {
		missing = append(missing, "file grep")
	}
	if c.HTTP == nil {
		missing = append(missing, "http")
	}
	if c.Facts == nil {
		missing = append(missing, "host facts")
	}
	if len(missing) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"incomplete capability set: missing "+strings.Join(missing, ", "),
			map[string]any{"missing": missing})
	}
	return nil
}
