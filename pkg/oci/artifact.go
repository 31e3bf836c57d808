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
	"context"
	"encoding/json"
	"fmt"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
)

// ArtifactType identifies sapsysinfo snapshot artifacts.
const ArtifactType = "application/vnd.sapsysinfo.snapshot.v1"

// Annotation keys set on snapshot manifests in addition to the standard
// org.opencontainers.image ones.
const (
	AnnotationSID  = "io.sapucc.sapsysinfo.sid"
	AnnotationKind = "io.sapucc.sapsysinfo.kind"
)

// LayerMediaType returns the layer media type for an encoding such as
// "json" or "yaml".
func LayerMediaType(encoding string) string {
	return ArtifactType + "+" + encoding
}

// Artifact is a single-layer snapshot artifact.
type Artifact struct {
	// Data is the encoded snapshot.
	Data []byte
	// MediaType is the layer media type, see LayerMediaType.
	MediaType string
	// Title is the layer file name shown by registries.
	Title string
	// Annotations are set on the manifest.
	Annotations map[string]string
}

// Pack stores a as a tagged OCI 1.1 manifest in store and returns the
// manifest descriptor.
func Pack(ctx context.Context, store oras.Target, tag string, a *Artifact) (ociv1.Descriptor, error) {
	if tag == "" {
		return ociv1.Descriptor{}, fmt.Errorf("tag is required to pack an artifact")
	}
	if len(a.Data) == 0 {
		return ociv1.Descriptor{}, fmt.Errorf("artifact has no data")
	}

	layer, err := oras.PushBytes(ctx, store, a.MediaType, a.Data)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to store layer: %w", err)
	}
	if a.Title != "" {
		layer.Annotations = map[string]string{ociv1.AnnotationTitle: a.Title}
	}

	manifest, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, ArtifactType,
		oras.PackManifestOptions{
			Layers:              []ociv1.Descriptor{layer},
			ManifestAnnotations: a.Annotations,
		})
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to pack manifest: %w", err)
	}

	if err := store.Tag(ctx, manifest, tag); err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to tag manifest: %w", err)
	}
	return manifest, nil
}

// Unpack reads the snapshot artifact tagged ref from src.
func Unpack(ctx context.Context, src oras.ReadOnlyTarget, ref string) (*Artifact, error) {
	_, b, err := oras.FetchBytes(ctx, src, ref, oras.DefaultFetchBytesOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest %s: %w", ref, err)
	}

	var manifest ociv1.Manifest
	if err := json.Unmarshal(b, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", ref, err)
	}
	if manifest.ArtifactType != ArtifactType {
		return nil, fmt.Errorf("%s is not a snapshot artifact (artifact type %q)", ref, manifest.ArtifactType)
	}
	if len(manifest.Layers) != 1 {
		return nil, fmt.Errorf("snapshot artifact %s has %d layers, want 1", ref, len(manifest.Layers))
	}

	layer := manifest.Layers[0]
	data, err := content.FetchAll(ctx, src, layer)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot layer: %w", err)
	}

	return &Artifact{
		Data:        data,
		MediaType:   layer.MediaType,
		Title:       layer.Annotations[ociv1.AnnotationTitle],
		Annotations: manifest.Annotations,
	}, nil
}

// Encoding returns the encoding suffix of a layer media type, or "" when
// the media type is not a snapshot layer.
func (a *Artifact) Encoding() string {
	prefix := ArtifactType + "+"
	if len(a.MediaType) <= len(prefix) || a.MediaType[:len(prefix)] != prefix {
		return ""
	}
	return a.MediaType[len(prefix):]
}
