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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sapucc/sapsysinfo/pkg/header"
	"github.com/sapucc/sapsysinfo/pkg/serializer"
	"github.com/sapucc/sapsysinfo/pkg/snapshotter"
	"github.com/urfave/cli/v3"
)

func showCmd() *cli.Command {
	return &cli.Command{
		Name:                  "show",
		EnableShellCompletion: true,
		Usage:                 "Render a previously captured snapshot",
		Description: `Load a snapshot and write it in another format or to another destination.
Supports file paths, HTTP/HTTPS URLs, ConfigMap URIs (cm://namespace/name)
and OCI artifacts (oci://registry/repository:tag).

  sapsysinfo show --snapshot cm://sap/prd-snapshot --format table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "snapshot",
				Aliases:  []string{"f"},
				Usage:    "Path/URI of the snapshot to load",
				Required: true,
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
			plainHTTPFlag,
			insecureTLSFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			opts := serializerOptions(cmd)

			src := cmd.String("snapshot")
			snap, err := serializer.FromFile[snapshotter.Snapshot](ctx, src, opts...)
			if err != nil {
				return fmt.Errorf("failed to load snapshot from %q: %w", src, err)
			}
			if err := checkSnapshot(snap); err != nil {
				return fmt.Errorf("invalid snapshot %q: %w", src, err)
			}

			ser, err := serializer.NewOutput(outFormat, cmd.String("output"), opts...)
			if err != nil {
				return err
			}
			defer func() {
				if closer, ok := ser.(serializer.Closer); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			return ser.Serialize(ctx, snap)
		},
	}
}

// checkSnapshot rejects documents that are not system snapshots.
func checkSnapshot(snap *snapshotter.Snapshot) error {
	if snap.Kind != header.KindSystemSnapshot {
		return fmt.Errorf("unexpected kind %q, want %q", snap.Kind, header.KindSystemSnapshot)
	}
	if snap.System == nil {
		snap.System = snapshotter.NewSnapshot().System
	}
	return nil
}
