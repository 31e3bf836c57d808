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

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/sapucc/sapsysinfo/pkg/defaults"
	"github.com/sapucc/sapsysinfo/pkg/errors"
	"github.com/sapucc/sapsysinfo/pkg/sap"
	"github.com/sapucc/sapsysinfo/pkg/serializer"
	"github.com/sapucc/sapsysinfo/pkg/server"
	"github.com/sapucc/sapsysinfo/pkg/snapshotter"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"
)

// maxRequestBody caps the size of a system request body.
const maxRequestBody = 64 << 10

// Snapshotter produces a snapshot for one system.
type Snapshotter interface {
	Snapshot(ctx context.Context, req sap.Request) (*snapshotter.Snapshot, error)
}

// SystemRequest is the body of POST /v1/systems.
type SystemRequest struct {
	SID      string `json:"sid" yaml:"sid"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Verify   *bool  `json:"verify,omitempty" yaml:"verify,omitempty"`
}

// toRequest validates r and converts it. Verify defaults to true.
func (r *SystemRequest) toRequest() (sap.Request, error) {
	sid := strings.ToUpper(strings.TrimSpace(r.SID))
	if sid == "" {
		return sap.Request{}, errors.New(errors.ErrCodeInvalidRequest, "sid is required")
	}
	return sap.Request{
		SID: sid,
		Credentials: sap.Credentials{
			Username: r.Username,
			Password: r.Password,
		},
		Verify: ptr.Deref(r.Verify, true),
	}, nil
}

// SystemsHandler serves system collections.
type SystemsHandler struct {
	Snapshotter Snapshotter
	// Timeout bounds one request. Defaults to defaults.SystemHandlerTimeout.
	Timeout time.Duration
}

// HandleSystems collects the system named in a POST body and responds with
// the snapshot. JSON and YAML bodies are accepted.
func (h *SystemsHandler) HandleSystems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodPost},
			})
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaults.SystemHandlerTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	body, err := parseSystemRequest(r)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Invalid system request", false, map[string]any{"error": err.Error()})
		return
	}

	req, err := body.toRequest()
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid system request", nil)
		return
	}

	slog.Debug("system request",
		"sid", req.SID,
		"username", req.Credentials.Username,
		"verify", req.Verify,
		"requestID", server.RequestID(r.Context()),
	)

	snap, err := h.Snapshotter.Snapshot(ctx, req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to collect system", map[string]any{"sid": req.SID})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, snap)
}

// parseSystemRequest decodes the body by content type. JSON is assumed when
// the content type is missing.
func parseSystemRequest(r *http.Request) (*SystemRequest, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	b, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(b) > maxRequestBody {
		return nil, fmt.Errorf("request body exceeds %d bytes", maxRequestBody)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("request body is empty")
	}

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, perr := mime.ParseMediaType(ct); perr == nil {
			mediaType = mt
		}
	}

	var req SystemRequest
	switch mediaType {
	case "application/x-yaml", "application/yaml", "text/yaml":
		if err := yaml.Unmarshal(b, &req); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}
	return &req, nil
}
