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
	"log/slog"
	"strings"
	"time"

	"github.com/sapucc/sapsysinfo/pkg/defaults"
	"github.com/sapucc/sapsysinfo/pkg/header"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
)

// ConfigMap labels and data keys.
const (
	LabelName      = "app.kubernetes.io/name"
	LabelComponent = "app.kubernetes.io/component"
	LabelVersion   = "app.kubernetes.io/version"
	LabelSID       = "sapsysinfo.sapucc.io/sid"

	DataKeyFormat    = "format"
	DataKeyTimestamp = "timestamp"

	// FieldManager owns the fields written by server-side apply.
	FieldManager = "sapsysinfo"

	appName = "sapsysinfo"
)

// ConfigMapWriter stores serialized values in a Kubernetes ConfigMap using
// server-side apply, so repeated writes update the same object.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	opts      *options
}

// NewConfigMapWriter returns a writer for the ConfigMap namespace/name.
// Unknown formats fall back to JSON.
func NewConfigMapWriter(namespace, name string, format Format, opts ...Option) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    knownOrJSON(format),
		opts:      newOptions(opts),
	}
}

// Serialize applies a ConfigMap holding:
//   - snapshot.<ext>: the encoded value
//   - format: the format name
//   - timestamp: the header timestamp, or now
//
// Values carrying a header.Header also set the component, version and sid labels.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs, err := w.opts.kube()
	if err != nil {
		return err
	}

	content, err := Marshal(w.format, v)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	labels := map[string]string{
		LabelName:      appName,
		LabelComponent: header.KindSystemSnapshot.String(),
	}
	timestamp := ""
	if h, ok := v.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		if k := h.GetKind(); k != "" {
			labels[LabelComponent] = k.String()
		}
		md := h.GetMetadata()
		setLabel(labels, LabelVersion, md[header.MetadataVersion])
		setLabel(labels, LabelSID, md[header.MetadataSID])
		timestamp = md[header.MetadataTimestamp]
	}
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(labels).
		WithData(map[string]string{
			snapshotKey(w.format): string(content),
			DataKeyFormat:         string(w.format),
			DataKeyTimestamp:      timestamp,
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format,
		"bytes", len(content))

	// Force takes over fields last written by another manager (CLI vs server).
	_, err = cs.CoreV1().ConfigMaps(w.namespace).Apply(ctx, cm, metav1.ApplyOptions{
		FieldManager: FieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

func setLabel(labels map[string]string, key, value string) {
	if value == "" {
		return
	}
	if errs := validation.IsValidLabelValue(value); len(errs) > 0 {
		slog.Debug("skipping invalid label value", "key", key, "value", value, "reason", strings.Join(errs, "; "))
		return
	}
	labels[key] = value
}

func snapshotKey(format Format) string {
	return "snapshot." + format.Extension()
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	namespace, name, ok := strings.Cut(strings.TrimPrefix(uri, ConfigMapURIScheme), "/")
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}
	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
