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
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
)

// certPEM returns the PEM encoded certificate of a TLS test server.
func certPEM(t *testing.T, server *httptest.Server) []byte {
	t.Helper()
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
}

func TestGetter_Get(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/msgserver/text/lglist" {
			_, _ = w.Write([]byte("GROUP\tINFO\nPUBLIC\tx\n"))
			return
		}
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("denied"))
	}))
	defer server.Close()

	getter := NewGetter()

	t.Run("insecure accepts self-signed certificate", func(t *testing.T) {
		resp, err := getter.Get(context.Background(), server.URL+"/msgserver/text/lglist", false)
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if !resp.OK() {
			t.Errorf("expected OK response, got status %d", resp.StatusCode)
		}
		if resp.Body != "GROUP\tINFO\nPUBLIC\tx\n" {
			t.Errorf("unexpected body %q", resp.Body)
		}
	})

	t.Run("verifying rejects unknown certificate", func(t *testing.T) {
		if _, err := getter.Get(context.Background(), server.URL+"/msgserver/text/lglist", true); err == nil {
			t.Error("expected certificate verification error")
		}
	})

	t.Run("error status is a response", func(t *testing.T) {
		resp, err := getter.Get(context.Background(), server.URL+"/other", false)
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if resp.OK() {
			t.Error("expected non-OK response")
		}
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", resp.StatusCode)
		}
	})

	t.Run("empty url", func(t *testing.T) {
		if _, err := getter.Get(context.Background(), "", false); err == nil {
			t.Error("expected error for empty url")
		}
	})
}

func TestGetter_VerifyWithRootCAs(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	getter := NewGetter(WithRootCAs(server.Client().Transport.(*http.Transport).TLSClientConfig.RootCAs))

	resp, err := getter.Get(context.Background(), server.URL, true)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if resp.Body != "ok" {
		t.Errorf("expected ok, got %q", resp.Body)
	}
}
