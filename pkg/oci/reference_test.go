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

package oci

import (
	"testing"

	"github.com/sapucc/sapsysinfo/pkg/errors"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantReg  string
		wantRepo string
		wantTag  string
		wantErr  bool
	}{
		{
			name:     "with tag",
			input:    "oci://ghcr.io/acme/sap-snapshots:prd",
			wantReg:  "ghcr.io",
			wantRepo: "acme/sap-snapshots",
			wantTag:  "prd",
		},
		{
			name:     "without tag defaults",
			input:    "oci://ghcr.io/acme/sap-snapshots",
			wantReg:  "ghcr.io",
			wantRepo: "acme/sap-snapshots",
			wantTag:  DefaultTag,
		},
		{
			name:     "registry with port",
			input:    "oci://localhost:5000/sap/prd:v1",
			wantReg:  "localhost:5000",
			wantRepo: "sap/prd",
			wantTag:  "v1",
		},
		{
			name:    "missing scheme",
			input:   "ghcr.io/acme/sap-snapshots:prd",
			wantErr: true,
		},
		{
			name:    "uppercase repository",
			input:   "oci://ghcr.io/Acme/PRD:v1",
			wantErr: true,
		},
		{
			name:    "digest",
			input:   "oci://ghcr.io/acme/prd@sha256:" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "oci://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseReference(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %+v", tt.input, ref)
				}
				if errors.CodeOf(err) != errors.ErrCodeInvalidRequest {
					t.Errorf("expected INVALID_REQUEST, got %s", errors.CodeOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref.Registry != tt.wantReg {
				t.Errorf("Registry = %q, want %q", ref.Registry, tt.wantReg)
			}
			if ref.Repository != tt.wantRepo {
				t.Errorf("Repository = %q, want %q", ref.Repository, tt.wantRepo)
			}
			if ref.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", ref.Tag, tt.wantTag)
			}
		})
	}
}

func TestReference_Strings(t *testing.T) {
	ref := &Reference{Registry: "localhost:5000", Repository: "sap/prd", Tag: "v1"}

	if got := ref.String(); got != "oci://localhost:5000/sap/prd:v1" {
		t.Errorf("String() = %q", got)
	}
	if got := ref.ImageReference(); got != "localhost:5000/sap/prd:v1" {
		t.Errorf("ImageReference() = %q", got)
	}
	if got := ref.RepositoryReference(); got != "localhost:5000/sap/prd" {
		t.Errorf("RepositoryReference() = %q", got)
	}

	other := ref.WithTag("v2")
	if other.Tag != "v2" || ref.Tag != "v1" {
		t.Errorf("WithTag changed the original or failed: %+v %+v", ref, other)
	}
}

func TestIsReference(t *testing.T) {
	if !IsReference("oci://ghcr.io/a/b") {
		t.Error("expected oci:// to be a reference")
	}
	for _, s := range []string{"cm://ns/name", "prd.yaml", "https://example.com/x.json"} {
		if IsReference(s) {
			t.Errorf("did not expect %q to be a reference", s)
		}
	}
}
