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

package serializer

import (
	"context"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/sapucc/sapsysinfo/pkg/oci"
	"oras.land/oras-go/v2/content/memory"
)

func TestOCIWriter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	registry := memory.New()
	opt := WithRegistryOptions(oci.Options{Target: registry})

	s, err := NewOutput(FormatYAML, "oci://localhost:5000/sap/s4h:v1", opt)
	if err != nil {
		t.Fatalf("NewOutput() error = %v", err)
	}
	if _, ok := s.(*OCIWriter); !ok {
		t.Fatalf("expected *OCIWriter, got %T", s)
	}
	if err := s.Serialize(ctx, newSnapDoc("v1.2.0")); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	a, err := oci.Unpack(ctx, registry, "v1")
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	if a.MediaType != oci.LayerMediaType("yaml") {
		t.Errorf("media type = %q", a.MediaType)
	}
	if a.Title != "snapshot.yaml" {
		t.Errorf("title = %q", a.Title)
	}
	wantAnnotations := map[string]string{
		oci.AnnotationSID:       "S4H",
		oci.AnnotationKind:      "SystemSnapshot",
		ociv1.AnnotationVersion: "v1.2.0",
	}
	for k, v := range wantAnnotations {
		if a.Annotations[k] != v {
			t.Errorf("annotation %s = %q, want %q", k, a.Annotations[k], v)
		}
	}

	got, err := FromFile[snapDoc](ctx, "oci://localhost:5000/sap/s4h:v1", opt)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if got.Metadata["sid"] != "S4H" || len(got.Hosts) != 2 {
		t.Errorf("unexpected document: %+v", got)
	}
}

func TestFromFile_OCITableIsUnreadable(t *testing.T) {
	ctx := context.Background()
	registry := memory.New()
	opt := WithRegistryOptions(oci.Options{Target: registry})

	w := NewOCIWriter(&oci.Reference{Registry: "localhost:5000", Repository: "sap/s4h", Tag: "table"}, FormatTable, opt)
	if err := w.Serialize(ctx, newSnapDoc("v1")); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	if _, err := FromFile[snapDoc](ctx, "oci://localhost:5000/sap/s4h:table", opt); err == nil {
		t.Error("expected error reading a table artifact")
	}
}

func TestNewOutput_InvalidOCIReference(t *testing.T) {
	if _, err := NewOutput(FormatJSON, "oci://Not/Valid"); err == nil {
		t.Error("expected error for invalid reference")
	}
}
