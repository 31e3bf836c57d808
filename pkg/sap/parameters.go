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

package sap

import (
	"log/slog"
	"strings"
)

// Parameters holds instance profile parameters in the order they were reported.
type Parameters struct {
	keys   []string
	values map[string]string
}

// NewParameters returns an empty parameter set.
func NewParameters() *Parameters {
	return &Parameters{values: make(map[string]string)}
}

// Set stores a value. A repeated key keeps its original position.
func (p *Parameters) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key.
func (p *Parameters) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of parameters.
func (p *Parameters) Len() int {
	return len(p.keys)
}

// Keys returns all keys in report order.
func (p *Parameters) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// WithPrefix returns the keys starting with prefix, in report order.
func (p *Parameters) WithPrefix(prefix string) []string {
	var out []string
	for _, k := range p.keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

// ParseParameters parses a newline separated "key=value" dump. Lines are split
// on the first '='; keys and values are trimmed. Non-empty lines without '='
// are logged and skipped.
func ParseParameters(raw string, logger *slog.Logger) *Parameters {
	if logger == nil {
		logger = slog.Default()
	}

	params := NewParameters()
	for _, line := range strings.Split(raw, "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			if line != "" {
				logger.Warn("cannot determine key/value of parameter", "line", line)
			}
			continue
		}
		params.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return params
}
