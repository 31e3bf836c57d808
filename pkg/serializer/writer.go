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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sapucc/sapsysinfo/pkg/oci"
)

// Writer serializes values to an io.Writer.
// Close must be called when the Writer was created for a file.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter returns a Writer for output, or os.Stdout when output is nil.
// Unknown formats fall back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{
		format: knownOrJSON(format),
		output: output,
	}
}

// NewOutput returns a Serializer for dest:
//   - "" or "-" writes to stdout
//   - cm://namespace/name applies a ConfigMap
//   - oci://registry/repository:tag pushes an OCI artifact
//   - anything else creates or truncates a file
//
// The caller closes the result when it implements Closer.
func NewOutput(format Format, dest string, opts ...Option) (Serializer, error) {
	dest = strings.TrimSpace(dest)
	switch {
	case dest == "" || dest == "-":
		return NewWriter(format, os.Stdout), nil
	case strings.HasPrefix(dest, ConfigMapURIScheme):
		namespace, name, err := parseConfigMapURI(dest)
		if err != nil {
			return nil, err
		}
		return NewConfigMapWriter(namespace, name, format, opts...), nil
	case oci.IsReference(dest):
		ref, err := oci.ParseReference(dest)
		if err != nil {
			return nil, err
		}
		return NewOCIWriter(ref, format, opts...), nil
	}

	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", dest, err)
	}
	return &Writer{
		format: knownOrJSON(format),
		output: f,
		closer: f,
	}, nil
}

// Serialize writes v in the configured format.
func (w *Writer) Serialize(_ context.Context, v any) error {
	b, err := Marshal(w.format, v)
	if err != nil {
		return err
	}
	if _, err := w.output.Write(b); err != nil {
		return fmt.Errorf("failed to write %s output: %w", w.format, err)
	}
	return nil
}

// Close releases the underlying file, if any. It is safe to call more than once.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

func knownOrJSON(format Format) Format {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		return FormatJSON
	}
	return format
}
