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

// Package httpclient provides the outbound HTTP client used for message
// server probes, the automation engine API and remote snapshot files.
//
// A Reader wraps an http.Client with connection pooling, per-phase timeouts
// and TLS settings configured through functional options:
//
//	reader := httpclient.NewReader(
//	    httpclient.WithTotalTimeout(10*time.Second),
//	    httpclient.WithRootCAs(pool),
//	)
//	data, err := reader.Read(ctx, "https://example.com/snapshot.yaml")
//
// A Getter holds a verifying and a non-verifying Reader and implements
// sap.HTTPGetter, selecting the Reader per request:
//
//	getter := httpclient.NewGetter(httpclient.WithUserAgent("probe/1.0"))
//	resp, err := getter.Get(ctx, url, false)
//
// Transport failures are returned as errors. Responses with any status code
// are returned as-is so callers can decide what counts as success.
//
// TLS 1.2 is the minimum version for every client built by this package.
package httpclient
