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
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sapucc/sapsysinfo/pkg/httpclient"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

type closeTracker struct {
	io.Reader
	closed int
}

func (c *closeTracker) Close() error {
	c.closed++
	return nil
}

func TestNewReader(t *testing.T) {
	if _, err := NewReader(FormatTable, strings.NewReader("")); err == nil {
		t.Error("table reader should be rejected")
	}
	if _, err := NewReader(Format("xml"), strings.NewReader("")); err == nil {
		t.Error("unknown format should be rejected")
	}

	ct := &closeTracker{Reader: strings.NewReader(`{"sid":"S4H"}`)}
	r, err := NewReader(FormatJSON, ct)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	var v map[string]string
	if err := r.Deserialize(&v); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if v["sid"] != "S4H" {
		t.Errorf("sid = %q", v["sid"])
	}
	_ = r.Close()
	_ = r.Close()
	if ct.closed != 1 {
		t.Errorf("closed %d times, want 1", ct.closed)
	}
}

func TestReader_DeserializeErrors(t *testing.T) {
	var r *Reader
	if err := r.Deserialize(&struct{}{}); err == nil {
		t.Error("nil reader should fail")
	}

	r, _ = NewReader(FormatYAML, strings.NewReader("hosts: [unterminated"))
	var v map[string]any
	if err := r.Deserialize(&v); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestFromFile_Local(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "snap.yaml")
	if err := os.WriteFile(yamlPath, []byte("kind: SystemSnapshot\nhosts:\n  - sapascs\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	doc, err := FromFile[snapDoc](ctx, yamlPath)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if doc.Kind != "SystemSnapshot" || len(doc.Hosts) != 1 {
		t.Errorf("FromFile() = %+v", doc)
	}

	if _, err := FromFile[snapDoc](ctx, filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should fail")
	}

	txt := filepath.Join(dir, "snap.txt")
	if err := os.WriteFile(txt, []byte("FIELD VALUE\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile[snapDoc](ctx, txt); err == nil {
		t.Error("table file should fail")
	}
}

func TestFromFile_Roundtrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snap.json")

	out, err := NewOutput(FormatJSON, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := out.Serialize(ctx, newSnapDoc("v1")); err != nil {
		t.Fatal(err)
	}
	_ = out.(Closer).Close()

	doc, err := FromFile[snapDoc](ctx, path)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if doc.Metadata["sid"] != "S4H" || doc.Metadata["version"] != "v1" {
		t.Errorf("metadata = %v", doc.Metadata)
	}
}

func TestFromFile_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/snap.yaml":
			_, _ = w.Write([]byte("hosts: [sapascs, sappas]\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	opt := WithHTTPReader(httpclient.NewReader())

	doc, err := FromFile[snapDoc](ctx, srv.URL+"/snap.yaml", opt)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if len(doc.Hosts) != 2 {
		t.Errorf("hosts = %v", doc.Hosts)
	}

	if _, err := FromFile[snapDoc](ctx, srv.URL+"/missing.yaml", opt); err == nil {
		t.Error("404 should fail")
	}
}

func TestFromFile_ConfigMap(t *testing.T) {
	ctx := context.Background()

	t.Run("written by ConfigMapWriter", func(t *testing.T) {
		cs := fake.NewClientset()
		w := NewConfigMapWriter("sap", "s4h", FormatJSON, WithKubeClient(cs))
		if err := w.Serialize(ctx, newSnapDoc("v1")); err != nil {
			t.Fatal(err)
		}

		doc, err := FromFile[snapDoc](ctx, "cm://sap/s4h", WithKubeClient(cs))
		if err != nil {
			t.Fatalf("FromFile() error = %v", err)
		}
		if len(doc.Hosts) != 2 || doc.Metadata["sid"] != "S4H" {
			t.Errorf("FromFile() = %+v", doc)
		}
	})

	t.Run("format key missing falls back", func(t *testing.T) {
		cs := fake.NewClientset(&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "legacy", Namespace: "sap"},
			Data:       map[string]string{"snapshot.json": `{"hosts":["a"]}`},
		})
		doc, err := FromFile[snapDoc](ctx, "cm://sap/legacy", WithKubeClient(cs))
		if err != nil {
			t.Fatalf("FromFile() error = %v", err)
		}
		if len(doc.Hosts) != 1 {
			t.Errorf("hosts = %v", doc.Hosts)
		}
	})

	t.Run("no snapshot data", func(t *testing.T) {
		cs := fake.NewClientset(&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "empty", Namespace: "sap"},
			Data:       map[string]string{"other": "x"},
		})
		if _, err := FromFile[snapDoc](ctx, "cm://sap/empty", WithKubeClient(cs)); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("not found", func(t *testing.T) {
		cs := fake.NewClientset()
		if _, err := FromFile[snapDoc](ctx, "cm://sap/none", WithKubeClient(cs)); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("bad uri", func(t *testing.T) {
		if _, err := FromFile[snapDoc](ctx, "cm://sap"); err == nil {
			t.Error("expected error")
		}
	})
}
