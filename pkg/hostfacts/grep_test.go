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

package hostfacts

import (
	"context"
	"path/filepath"
	"testing"
)

const services = `# Network services, Internet style
ssh		22/tcp
sapmsS4H	3601/tcp	# SAP System Message Server Port
sapmsT20	3620/tcp
`

func TestFiles_Grep(t *testing.T) {
	path := writeFile(t, services)
	files := NewFiles()

	tests := []struct {
		name        string
		path        string
		pattern     string
		wantRetcode int
		wantStdout  string
	}{
		{
			name:        "match",
			path:        path,
			pattern:     "sapmsS4H",
			wantRetcode: 0,
			wantStdout:  "sapmsS4H\t3601/tcp\t# SAP System Message Server Port",
		},
		{
			name:        "multiple matches",
			path:        path,
			pattern:     "^sapms",
			wantRetcode: 0,
			wantStdout:  "sapmsS4H\t3601/tcp\t# SAP System Message Server Port\nsapmsT20\t3620/tcp",
		},
		{
			name:        "comments are searched",
			path:        path,
			pattern:     "Internet style",
			wantRetcode: 0,
			wantStdout:  "# Network services, Internet style",
		},
		{
			name:        "no match",
			path:        path,
			pattern:     "sapmsXYZ",
			wantRetcode: 1,
		},
		{
			name:        "missing file",
			path:        filepath.Join(t.TempDir(), "services"),
			pattern:     "sapms",
			wantRetcode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := files.Grep(context.Background(), tt.path, tt.pattern)
			if err != nil {
				t.Fatalf("Grep() failed: %v", err)
			}
			if res.Retcode != tt.wantRetcode {
				t.Errorf("Retcode = %d, want %d", res.Retcode, tt.wantRetcode)
			}
			if res.Stdout != tt.wantStdout {
				t.Errorf("Stdout = %q, want %q", res.Stdout, tt.wantStdout)
			}
			if tt.wantRetcode == 2 && res.Stderr == "" {
				t.Error("expected Stderr for unreadable file")
			}
		})
	}
}

func TestFiles_Grep_InvalidPattern(t *testing.T) {
	path := writeFile(t, services)
	if _, err := NewFiles().Grep(context.Background(), path, "("); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestFiles_Grep_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFiles().Grep(ctx, writeFile(t, services), "ssh"); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestFiles_Grep_ZeroValue(t *testing.T) {
	var f Files
	res, err := f.Grep(context.Background(), writeFile(t, services), "^sapmsS4H")
	if err != nil {
		t.Fatalf("Grep() failed: %v", err)
	}
	if res.Retcode != 0 || res.Stdout != "sapmsS4H\t3601/tcp\t# SAP System Message Server Port" {
		t.Errorf("Grep() = %+v", res)
	}
}
