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
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/sapucc/sapsysinfo/pkg/header"
	"github.com/sapucc/sapsysinfo/pkg/oci"
)

// OCIWriter pushes serialized values to an OCI registry as single-layer
// artifacts.
type OCIWriter struct {
	ref    *oci.Reference
	format Format
	opts   *options
}

// NewOCIWriter returns a writer for ref. Unknown formats fall back to JSON.
func NewOCIWriter(ref *oci.Reference, format Format, opts ...Option) *OCIWriter {
	return &OCIWriter{
		ref:    ref,
		format: knownOrJSON(format),
		opts:   newOptions(opts),
	}
}

// Serialize pushes v. Values carrying a header.Header add the kind, sid,
// version and creation time as manifest annotations.
func (w *OCIWriter) Serialize(ctx context.Context, v any) error {
	content, err := Marshal(w.format, v)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	annotations := map[string]string{
		ociv1.AnnotationTitle:   "SAP system snapshot",
		ociv1.AnnotationCreated: time.Now().UTC().Format(time.RFC3339),
	}
	if h, ok := v.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		setAnnotation(annotations, oci.AnnotationKind, h.GetKind().String())
		md := h.GetMetadata()
		setAnnotation(annotations, oci.AnnotationSID, md[header.MetadataSID])
		setAnnotation(annotations, ociv1.AnnotationVersion, md[header.MetadataVersion])
		setAnnotation(annotations, ociv1.AnnotationCreated, md[header.MetadataTimestamp])
	}

	res, err := oci.Push(ctx, w.ref, &oci.Artifact{
		Data:        content,
		MediaType:   oci.LayerMediaType(w.format.Extension()),
		Title:       snapshotKey(w.format),
		Annotations: annotations,
	}, w.opts.registry)
	if err != nil {
		return err
	}

	slog.Info("pushed snapshot", "reference", res.Reference, "digest", res.Digest)
	return nil
}

// Close is a no-op.
func (w *OCIWriter) Close() error {
	return nil
}

func setAnnotation(annotations map[string]string, key, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	annotations[key] = value
}

func fromOCI[T any](ctx context.Context, o *options, uri string) (*T, error) {
	ref, err := oci.ParseReference(uri)
	if err != nil {
		return nil, err
	}

	a, err := oci.Pull(ctx, ref, o.registry)
	if err != nil {
		return nil, err
	}

	format := Format(a.Encoding())
	switch format {
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("artifact %s has unreadable media type %q", ref.ImageReference(), a.MediaType)
	}

	slog.Debug("reading from OCI artifact",
		"reference", ref.ImageReference(),
		"format", format,
		"size", len(a.Data))

	r, err := NewReader(format, bytes.NewReader(a.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for artifact data: %w", err)
	}

	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize artifact data: %w", err)
	}
	return &out, nil
}
