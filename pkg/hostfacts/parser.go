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
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// Parser reads line oriented system files such as /etc/services and
// /etc/resolv.conf.
type Parser struct {
	maxSize        int
	skipComments   bool
	commentMarkers []string
}

// WithMaxSize sets the maximum size (in bytes) of a file to be parsed.
// Default is 4MB.
func WithMaxSize(size int) ParserOption {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether comment lines are dropped.
// Default is true.
func WithSkipComments(skip bool) ParserOption {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithCommentMarkers sets the prefixes that start a comment line.
// Default is "#" and ";".
func WithCommentMarkers(markers ...string) ParserOption {
	return func(p *Parser) {
		p.commentMarkers = markers
	}
}

// NewParser creates a new file parser with the provided options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		maxSize:        4 << 20,
		skipComments:   true,
		commentMarkers: []string{"#", ";"},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetLines reads the file at path and returns its non-empty lines with
// surrounding whitespace removed.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	parts := strings.Split(string(b), "\n")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if line == "" {
			continue
		}
		if p.skipComments && p.isComment(line) {
			continue
		}
		result = append(result, line)
	}

	slog.Debug("parsed file", "path", path, "lines", len(result))
	return result, nil
}

// GetFields reads the file at path and maps the first whitespace separated
// field of every line to the remaining fields. Later lines win.
func (p *Parser) GetFields(path string) (map[string][]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]string, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		result[fields[0]] = fields[1:]
	}
	return result, nil
}

func (p *Parser) isComment(line string) bool {
	for _, m := range p.commentMarkers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}
