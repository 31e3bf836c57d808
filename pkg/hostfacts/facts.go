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

package hostfacts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sapucc/sapsysinfo/pkg/sap"
)

// DefaultResolvConfPath is the resolver configuration consulted for the
// domain when the hostname is not qualified.
const DefaultResolvConfPath = "/etc/resolv.conf"

// Facts implements sap.HostFacts for the local host.
type Facts struct {
	// Hostname returns the host name. Defaults to os.Hostname.
	Hostname func() (string, error)

	// ResolvConfPath defaults to DefaultResolvConfPath.
	ResolvConfPath string

	parser *Parser
}

var _ sap.HostFacts = (*Facts)(nil)

// NewFacts returns Facts reading from the local host.
func NewFacts() *Facts {
	return &Facts{
		Hostname:       os.Hostname,
		ResolvConfPath: DefaultResolvConfPath,
		parser:         NewParser(),
	}
}

// A zero Facts reads the local host with the defaults of NewFacts.
func (f *Facts) hostname() (string, error) {
	if f.Hostname == nil {
		return os.Hostname()
	}
	return f.Hostname()
}

func (f *Facts) resolvConf() (string, *Parser) {
	path := f.ResolvConfPath
	if path == "" {
		path = DefaultResolvConfPath
	}
	p := f.parser
	if p == nil {
		p = NewParser()
	}
	return path, p
}

// FQDN returns the qualified name of the local host.
func (f *Facts) FQDN(ctx context.Context) (string, error) {
	host, err := f.hostname()
	if err != nil {
		return "", fmt.Errorf("failed to get hostname: %w", err)
	}
	if strings.Contains(host, ".") {
		return host, nil
	}
	domain, err := f.Domain(ctx)
	if err != nil {
		return "", err
	}
	return sap.JoinFQDN(host, domain), nil
}

// Domain returns the DNS domain of the local host: the hostname suffix if
// the hostname is qualified, else the resolver's domain or first search
// entry. An unknown domain is the empty string, not an error.
func (f *Facts) Domain(_ context.Context) (string, error) {
	host, err := f.hostname()
	if err != nil {
		return "", fmt.Errorf("failed to get hostname: %w", err)
	}
	if _, domain, ok := strings.Cut(host, "."); ok && domain != "" {
		return domain, nil
	}

	path, parser := f.resolvConf()
	fields, err := parser.GetFields(path)
	if err != nil {
		slog.Debug("resolver configuration not readable", "path", path, "error", err)
		return "", nil
	}
	if d := fields["domain"]; len(d) > 0 {
		return d[0], nil
	}
	if s := fields["search"]; len(s) > 0 {
		return s[0], nil
	}
	return "", nil
}
