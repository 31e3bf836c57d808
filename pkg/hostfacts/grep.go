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
	"fmt"
	"regexp"
	"strings"

	"github.com/sapucc/sapsysinfo/pkg/sap"
)

// grep exit codes
const (
	retcodeMatch   = 0
	retcodeNoMatch = 1
	retcodeError   = 2
)

// Files implements sap.FileGrepper over local files.
type Files struct {
	parser *Parser
}

var _ sap.FileGrepper = (*Files)(nil)

// NewFiles returns a FileGrepper reading local files. Comment lines are
// searched like any other line.
func NewFiles(opts ...ParserOption) *Files {
	return &Files{
		parser: NewParser(append([]ParserOption{WithSkipComments(false)}, opts...)...),
	}
}

// Grep returns the lines of path matching the regular expression pattern.
// A file that cannot be read yields retcode 2 and no error, mirroring grep.
func (f *Files) Grep(ctx context.Context, path, pattern string) (sap.GrepResult, error) {
	if err := ctx.Err(); err != nil {
		return sap.GrepResult{}, err
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return sap.GrepResult{}, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	parser := f.parser
	if parser == nil {
		parser = NewParser(WithSkipComments(false))
	}
	lines, err := parser.GetLines(path)
	if err != nil {
		return sap.GrepResult{Retcode: retcodeError, Stderr: err.Error()}, nil
	}

	var matched []string
	for _, line := range lines {
		if re.MatchString(line) {
			matched = append(matched, line)
		}
	}
	if len(matched) == 0 {
		return sap.GrepResult{Retcode: retcodeNoMatch}, nil
	}
	return sap.GrepResult{Retcode: retcodeMatch, Stdout: strings.Join(matched, "\n")}, nil
}
