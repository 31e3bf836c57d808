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

package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
	"github.com/sapucc/sapsysinfo/pkg/errors"
)

// URIScheme prefixes snapshot locations in OCI registries, as in
// oci://registry/repository:tag.
const URIScheme = "oci://"

// DefaultTag is used when a location has no tag.
const DefaultTag = "latest"

// Reference is a parsed oci:// location.
type Reference struct {
	// Registry is the registry host, e.g. "ghcr.io" or "localhost:5000".
	Registry string
	// Repository is the repository path, e.g. "sap/prd-snapshots".
	Repository string
	// Tag names the artifact within the repository.
	Tag string
}

// ParseReference parses oci://registry/repository[:tag]. A missing tag
// becomes DefaultTag. Digest references are rejected because snapshots are
// always addressed by tag.
func ParseReference(uri string) (*Reference, error) {
	if !strings.HasPrefix(uri, URIScheme) {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid OCI location %q: must start with %s", uri, URIScheme))
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(uri, URIScheme))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}
	if _, ok := ref.(reference.Digested); ok {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid OCI location %q: digest references are not supported", uri))
	}

	tag := DefaultTag
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	return &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        tag,
	}, nil
}

// IsReference reports whether s is an oci:// location.
func IsReference(s string) bool {
	return strings.HasPrefix(s, URIScheme)
}

// String returns the oci:// form of r.
func (r *Reference) String() string {
	return URIScheme + r.ImageReference()
}

// ImageReference returns registry/repository:tag without the scheme.
func (r *Reference) ImageReference() string {
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// RepositoryReference returns registry/repository.
func (r *Reference) RepositoryReference() string {
	return r.Registry + "/" + r.Repository
}

// WithTag returns a copy of r with tag.
func (r *Reference) WithTag(tag string) *Reference {
	c := *r
	c.Tag = tag
	return &c
}
