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

	"github.com/sapucc/sapsysinfo/pkg/httpclient"
	"github.com/sapucc/sapsysinfo/pkg/k8s/client"
	"github.com/sapucc/sapsysinfo/pkg/oci"
)

// ConfigMapURIScheme prefixes snapshot locations stored in Kubernetes
// ConfigMaps, as in cm://namespace/name.
const ConfigMapURIScheme = "cm://"

// Serializer writes a value to some destination.
//
// The context bounds destinations that do I/O beyond the local process,
// such as ConfigMap writes.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is implemented by Serializers that hold resources.
type Closer interface {
	Close() error
}

// Option configures the Kubernetes and HTTP access used by serializers and
// readers.
type Option func(*options)

type options struct {
	kubeconfig string
	kubeClient client.Interface
	httpReader *httpclient.Reader
	registry   oci.Options
}

// WithKubeconfig sets the kubeconfig used for cm:// locations. Empty means
// automatic discovery.
func WithKubeconfig(path string) Option {
	return func(o *options) {
		o.kubeconfig = path
	}
}

// WithKubeClient sets the clientset used for cm:// locations.
func WithKubeClient(c client.Interface) Option {
	return func(o *options) {
		o.kubeClient = c
	}
}

// WithHTTPReader sets the reader used for http and https locations.
func WithHTTPReader(r *httpclient.Reader) Option {
	return func(o *options) {
		o.httpReader = r
	}
}

// WithRegistryOptions sets the registry access used for oci:// locations.
func WithRegistryOptions(ro oci.Options) Option {
	return func(o *options) {
		o.registry = ro
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) kube() (client.Interface, error) {
	if o.kubeClient != nil {
		return o.kubeClient, nil
	}
	c, err := client.ForKubeconfig(o.kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
	}
	return c, nil
}

func (o *options) http() *httpclient.Reader {
	if o.httpReader == nil {
		o.httpReader = httpclient.NewReader()
	}
	return o.httpReader
}
