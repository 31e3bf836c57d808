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
	"errors"
	"path/filepath"
	"testing"
)

func newTestFacts(t *testing.T, hostname, resolvConf string) *Facts {
	t.Helper()
	f := NewFacts()
	f.Hostname = func() (string, error) { return hostname, nil }
	if resolvConf == "" {
		f.ResolvConfPath = filepath.Join(t.TempDir(), "missing")
	} else {
		f.ResolvConfPath = writeFile(t, resolvConf)
	}
	return f
}

func TestFacts(t *testing.T) {
	tests := []struct {
		name       string
		hostname   string
		resolvConf string
		wantDomain string
		wantFQDN   string
	}{
		{
			name:       "qualified hostname",
			hostname:   "sapapp01.corp.example.com",
			resolvConf: "domain other.example.com\n",
			wantDomain: "corp.example.com",
			wantFQDN:   "sapapp01.corp.example.com",
		},
		{
			name:       "domain from resolver",
			hostname:   "sapapp01",
			resolvConf: "# generated\nnameserver 10.0.0.1\ndomain example.com\nsearch other.example.com\n",
			wantDomain: "example.com",
			wantFQDN:   "sapapp01.example.com",
		},
		{
			name:       "search from resolver",
			hostname:   "sapapp01",
			resolvConf: "search lab.example.com example.com\n",
			wantDomain: "lab.example.com",
			wantFQDN:   "sapapp01.lab.example.com",
		},
		{
			name:       "no resolver configuration",
			hostname:   "sapapp01",
			wantDomain: "",
			wantFQDN:   "sapapp01",
		},
		{
			name:       "trailing dot",
			hostname:   "sapapp01.",
			resolvConf: "domain example.com\n",
			wantDomain: "example.com",
			wantFQDN:   "sapapp01.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFacts(t, tt.hostname, tt.resolvConf)

			domain, err := f.Domain(context.Background())
			if err != nil {
				t.Fatalf("Domain() failed: %v", err)
			}
			if domain != tt.wantDomain {
				t.Errorf("Domain() = %q, want %q", domain, tt.wantDomain)
			}

			fqdn, err := f.FQDN(context.Background())
			if err != nil {
				t.Fatalf("FQDN() failed: %v", err)
			}
			if fqdn != tt.wantFQDN {
				t.Errorf("FQDN() = %q, want %q", fqdn, tt.wantFQDN)
			}
		})
	}
}

func TestFacts_HostnameError(t *testing.T) {
	f := NewFacts()
	f.Hostname = func() (string, error) { return "", errors.New("uts namespace gone") }

	if _, err := f.Domain(context.Background()); err == nil {
		t.Error("expected Domain() error")
	}
	if _, err := f.FQDN(context.Background()); err == nil {
		t.Error("expected FQDN() error")
	}
}

func TestFacts_ZeroValue(t *testing.T) {
	f := &Facts{
		Hostname:       func() (string, error) { return "sapapp01", nil },
		ResolvConfPath: writeFile(t, "domain example.com\n"),
	}

	fqdn, err := f.FQDN(context.Background())
	if err != nil {
		t.Fatalf("FQDN() failed: %v", err)
	}
	if fqdn != "sapapp01.example.com" {
		t.Errorf("FQDN() = %q, want %q", fqdn, "sapapp01.example.com")
	}

	var zero Facts
	if _, err := zero.Domain(context.Background()); err != nil {
		t.Errorf("Domain() on zero Facts failed: %v", err)
	}
}
