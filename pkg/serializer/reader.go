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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sapucc/sapsysinfo/pkg/oci"
	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Reader decodes JSON or YAML from an io.Reader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader returns a Reader for input. Table output cannot be read back.
// If input is an io.Closer, Close closes it.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if c, ok := input.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
	return nil
}

// Close closes the input when it is closeable. Safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile loads a T from a local path, an http(s) URL, a
// cm://namespace/name ConfigMap or an oci:// artifact. Files and URLs are
// decoded by extension, ConfigMaps by their format key and artifacts by
// their layer media type.
func FromFile[T any](ctx context.Context, path string, opts ...Option) (*T, error) {
	o := newOptions(opts)

	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, err
		}
		return fromConfigMap[T](ctx, o, namespace, name)
	}
	if oci.IsReference(path) {
		return fromOCI[T](ctx, o, path)
	}

	format := FormatFromPath(path)
	var input io.Reader
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		b, err := o.http().Read(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
		}
		input = bytes.NewReader(b)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		input = f
	}

	r, err := NewReader(format, input)
	if err != nil {
		if c, ok := input.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			slog.Warn("failed to close reader", "path", path, "error", cerr)
		}
	}()

	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}
	slog.Debug("loaded object", "path", path, "format", format)
	return &out, nil
}

func fromConfigMap[T any](ctx context.Context, o *options, namespace, name string) (*T, error) {
	cs, err := o.kube()
	if err != nil {
		return nil, err
	}

	cm, err := cs.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := FormatYAML
	if f, ok := cm.Data[DataKeyFormat]; ok && !Format(f).IsUnknown() {
		format = Format(f)
	}

	content, ok := cm.Data[snapshotKey(format)]
	if !ok {
		for _, f := range []Format{FormatYAML, FormatJSON} {
			if c, found := cm.Data[snapshotKey(f)]; found {
				content, format, ok = c, f, true
				break
			}
		}
	}
	if !ok || content == "" {
		return nil, fmt.Errorf("ConfigMap %s/%s has no snapshot data", namespace, name)
	}

	slog.Debug("reading from ConfigMap",
		"namespace", namespace,
		"name", name,
		"format", format,
		"size", len(content))

	r, err := NewReader(format, strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for ConfigMap data: %w", err)
	}

	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize ConfigMap data: %w", err)
	}
	return &out, nil
}
