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
	"fmt"
	"strings"

	"github.com/sapucc/sapsysinfo/pkg/config"
	"github.com/sapucc/sapsysinfo/pkg/oci"
	"github.com/sapucc/sapsysinfo/pkg/serializer"
	"github.com/urfave/cli/v3"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination: file path, ConfigMap URI (cm://namespace/name),
	OCI artifact (oci://registry/repository:tag), or stdout (default).
	The format is taken from the file extension unless --format is set.`,
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig for cm:// locations (default: KUBECONFIG, ~/.kube/config, in-cluster)",
	}

	plainHTTPFlag = &cli.BoolFlag{
		Name:  "plain-http",
		Usage: "Use HTTP instead of HTTPS for oci:// registries",
	}

	insecureTLSFlag = &cli.BoolFlag{
		Name:  "insecure-tls",
		Usage: "Skip TLS certificate verification for oci:// registries",
	}

	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to YAML configuration file",
		Sources: cli.EnvVars("SAPSYSINFO_CONFIG"),
	}
)

// outputFormat resolves --format, falling back to the output file extension
// and then to YAML for stdout, ConfigMaps and OCI artifacts.
func outputFormat(cmd *cli.Command) (serializer.Format, error) {
	if f := cmd.String("format"); f != "" {
		return serializer.ParseFormat(f)
	}
	out := strings.TrimSpace(cmd.String("output"))
	if out == "" || out == "-" || strings.HasPrefix(out, serializer.ConfigMapURIScheme) || oci.IsReference(out) {
		return serializer.FormatYAML, nil
	}
	return serializer.FormatFromPath(out), nil
}

// serializerOptions collects the Kubernetes and registry flags.
func serializerOptions(cmd *cli.Command) []serializer.Option {
	return []serializer.Option{
		serializer.WithKubeconfig(cmd.String("kubeconfig")),
		serializer.WithRegistryOptions(oci.Options{
			PlainHTTP:   cmd.Bool("plain-http"),
			InsecureTLS: cmd.Bool("insecure-tls"),
		}),
	}
}

// loadConfig reads --config and applies the engine flags shared by collect
// and serve. The result is validated.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Read(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("engine-url") {
		cfg.Engine.URL = cmd.String("engine-url")
	}
	if cmd.IsSet("engine-target") {
		cfg.Engine.Target = cmd.String("engine-target")
	}
	if cmd.IsSet("engine-username") {
		cfg.Engine.Username = cmd.String("engine-username")
	}
	if cmd.IsSet("engine-password") {
		cfg.Engine.Password = cmd.String("engine-password")
	}
	if cmd.IsSet("ca-bundle") {
		cfg.TLS.CABundle = cmd.String("ca-bundle")
	}
	if cmd.IsSet("facts") {
		cfg.Facts.Source = cmd.String("facts")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		configFlag,
		&cli.StringFlag{
			Name:  "engine-url",
			Usage: "Automation engine API URL (overrides engine.url)",
		},
		&cli.StringFlag{
			Name:  "engine-target",
			Usage: "Engine target of the SAP host (overrides engine.target)",
		},
		&cli.StringFlag{
			Name:  "engine-username",
			Usage: "Engine API user (overrides engine.username)",
		},
		&cli.StringFlag{
			Name:  "engine-password",
			Usage: "Engine API password (overrides engine.password)",
		},
		&cli.StringFlag{
			Name:  "ca-bundle",
			Usage: "PEM bundle added to the system roots for TLS verification",
		},
		&cli.StringFlag{
			Name:  "facts",
			Usage: fmt.Sprintf("Where host facts are read (%s or %s)", config.FactsEngine, config.FactsLocal),
		},
	}
}
