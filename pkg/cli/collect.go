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
	"strings"

	"github.com/sapucc/sapsysinfo/pkg/defaults"
	"github.com/sapucc/sapsysinfo/pkg/sap"
	"github.com/sapucc/sapsysinfo/pkg/serializer"
	"github.com/sapucc/sapsysinfo/pkg/snapshotter"
	"github.com/urfave/cli/v3"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Capture a snapshot of one SAP system",
		Description: `Discover the instances of an SAP system through the host agent and describe them:
  - Instance type, features and hostnames
  - Profile parameters and derived ports
  - Database host and instance
  - Installed ABAP software components
  - Message servers and logon groups

Remote calls run through the automation engine configured with --config or
the SAPSYSINFO_ENGINE_* environment variables.

# Examples

Collect PRD and print YAML, reading the password from the environment:
  SAPSYSINFO_PASSWORD=... sapsysinfo collect --sid PRD --username prdadm

Store the snapshot in a ConfigMap:
  sapsysinfo collect --sid PRD --output cm://sap/prd-snapshot

Push the snapshot to a registry:
  sapsysinfo collect --sid PRD --output oci://ghcr.io/acme/sap-snapshots:prd`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "sid",
				Aliases:  []string{"s"},
				Usage:    "SAP system ID",
				Required: true,
				Sources:  cli.EnvVars("SAPSYSINFO_SID"),
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "SAP control user (usually <sid>adm)",
				Sources: cli.EnvVars("SAPSYSINFO_USERNAME"),
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "SAP control password",
				Sources: cli.EnvVars("SAPSYSINFO_PASSWORD"),
			},
			&cli.BoolFlag{
				Name:    "verify",
				Usage:   "Verify TLS certificates of SAP endpoints; when false, discovery may fall back to plain HTTP",
				Value:   true,
				Sources: cli.EnvVars("SAPSYSINFO_VERIFY"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for the whole collection",
				Value: defaults.CLICollectTimeout,
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
			plainHTTPFlag,
			insecureTLSFlag,
		}, engineFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			req, err := buildRequest(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			rt, err := cfg.Build(slog.Default())
			if err != nil {
				return fmt.Errorf("failed to build collector: %w", err)
			}

			ser, err := serializer.NewOutput(outFormat, cmd.String("output"), serializerOptions(cmd)...)
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

			ss := &snapshotter.SystemSnapshotter{
				Version:    version,
				Collector:  rt.Collector,
				Facts:      rt.Facts,
				Serializer: ser,
				Timeout:    cmd.Duration("timeout"),
			}
			return ss.Measure(ctx, req)
		},
	}
}

// buildRequest reads the system and credential flags.
func buildRequest(cmd *cli.Command) (sap.Request, error) {
	sid := strings.ToUpper(strings.TrimSpace(cmd.String("sid")))
	if sid == "" {
		return sap.Request{}, fmt.Errorf("--sid is required")
	}
	return sap.Request{
		SID: sid,
		Credentials: sap.Credentials{
			Username: cmd.String("username"),
			Password: cmd.String("password"),
		},
		Verify: cmd.Bool("verify"),
	}, nil
}
