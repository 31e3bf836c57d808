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

package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/sapucc/sapsysinfo/pkg/sap"
)

// Getter implements sap.HTTPGetter with one Reader that verifies server
// certificates and one that does not.
type Getter struct {
	verifying *Reader
	insecure  *Reader
}

var _ sap.HTTPGetter = (*Getter)(nil)

// NewGetter builds both Readers from the same options. Verification settings
// in options are overridden per Reader. Options must not include WithClient,
// the Readers would then share one transport.
func NewGetter(options ...Option) *Getter {
	return &Getter{
		verifying: NewReader(slices.Concat(options, []Option{WithInsecureSkipVerify(false)})...),
		insecure:  NewReader(slices.Concat(options, []Option{WithInsecureSkipVerify(true)})...),
	}
}

// Get performs a GET request against url. Non-2xx responses are returned,
// not treated as errors.
func (g *Getter) Get(ctx context.Context, url string, verify bool) (*sap.HTTPResponse, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}

	reader := g.insecure
	if verify {
		reader = g.verifying
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}

	status, body, err := reader.Do(req)
	if err != nil {
		return nil, err
	}
	return &sap.HTTPResponse{StatusCode: status, Body: string(body)}, nil
}
