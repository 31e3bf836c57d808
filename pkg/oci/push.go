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
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"

	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/memory"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/sapucc/sapsysinfo/pkg/errors"
)

// Options configures registry access.
type Options struct {
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Target replaces the remote repository. Used with in-memory stores.
	Target oras.Target
}

// PushResult describes a pushed artifact.
type PushResult struct {
	// Digest is the manifest digest.
	Digest string
	// Reference is registry/repository:tag.
	Reference string
}

// Push packs a in memory and copies it to the repository of ref.
func Push(ctx context.Context, ref *Reference, a *Artifact, opts Options) (*PushResult, error) {
	store := memory.New()
	if _, err := Pack(ctx, store, ref.Tag, a); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to package snapshot artifact", err)
	}

	dst, err := target(ref, opts)
	if err != nil {
		return nil, err
	}

	slog.Info("pushing snapshot artifact", "reference", ref.ImageReference(), "bytes", len(a.Data))

	desc, err := oras.Copy(ctx, store, ref.Tag, dst, ref.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to push artifact to registry", err,
			map[string]any{"reference": ref.ImageReference()})
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: ref.ImageReference(),
	}, nil
}

// Pull fetches the snapshot artifact at ref.
func Pull(ctx context.Context, ref *Reference, opts Options) (*Artifact, error) {
	src, err := target(ref, opts)
	if err != nil {
		return nil, err
	}

	a, err := Unpack(ctx, src, ref.Tag)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to pull artifact from registry", err,
			map[string]any{"reference": ref.ImageReference()})
	}
	return a, nil
}

func target(ref *Reference, opts Options) (oras.Target, error) {
	if opts.Target != nil {
		return opts.Target, nil
	}

	repo, err := remote.NewRepository(ref.RepositoryReference())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = newAuthClient(opts.PlainHTTP, opts.InsecureTLS)
	return repo, nil
}

// newAuthClient returns a registry client using Docker credential helpers
// when available.
func newAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credentials unavailable, using anonymous access", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	c := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		c.Credential = credentials.Credential(credStore)
	}
	return c
}
