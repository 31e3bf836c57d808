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

	"github.com/sapucc/sapsysinfo/pkg/api"
	"github.com/sapucc/sapsysinfo/pkg/config"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Description: `Serve POST /v1/systems with the collector built from the configuration.
/health, /ready and /metrics are served alongside.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "Listen address (overrides server.address)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides server.port)",
			},
		}, engineFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyServerFlags(cmd, cfg)

			s, err := api.NewServer(cfg)
			if err != nil {
				return err
			}
			return s.Run(ctx)
		},
	}
}

func applyServerFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("address") {
		cfg.Server.Address = cmd.String("address")
	}
	if cmd.IsSet("port") {
		cfg.Server.Port = int(cmd.Int("port"))
	}
}
