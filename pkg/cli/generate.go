package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/netfabric/aclmgr/pkg/config"
	"github.com/netfabric/aclmgr/pkg/device"
	"github.com/netfabric/aclmgr/pkg/render"
	"github.com/netfabric/aclmgr/pkg/ruleset"
	"github.com/netfabric/aclmgr/pkg/version"
)

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "generate",
		Aliases:               []string{"gen"},
		EnableShellCompletion: true,
		Usage:                 "Render vendor configuration from a ruleset configuration",
		ArgsUsage:             "<config.yaml>",
		Description: `Runs the full pipeline: batch-validate the embedded rule lines, expand
multi-valued port fields, validate every deployment device against the
naming convention and its platform's interface patterns, then render one
configuration file per device and deployable direction.

# Examples

Render into the current directory:
  aclmgr generate ruleset.yaml

Render into a target directory with platform definitions elsewhere:
  aclmgr generate --output ./rendered --platforms /etc/aclmgr/platforms ruleset.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "Output directory for rendered configuration files",
			},
			&cli.StringFlag{
				Name:    "platforms",
				Value:   "./platforms",
				Usage:   "Directory containing platform definition files",
				Sources: cli.EnvVars("ACLMGR_PLATFORMS_PATH"),
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	path, err := configArg(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	rs, err := ruleset.Parse(cfg.Ruleset.Generic)
	if err != nil {
		return reportRuleErrors(cmd.Root().ErrWriter, path, err)
	}
	rs = rs.Expand()

	deployment := cfg.Ruleset.Deployment
	platformsDir := cmd.String("platforms")

	devices := make([]*device.Device, 0, len(deployment.DeviceList))
	for _, name := range deployment.DeviceList {
		dev, err := device.Build(platformsDir, cfg.Defaults.DeviceRegex,
			name, deployment.Platform, deployment.Model,
			deployment.Ingress.Interfaces, deployment.Egress.Interfaces)
		if err != nil {
			return fmt.Errorf("device %s: %w", name, err)
		}
		devices = append(devices, dev)
	}

	renderer, err := render.New(version.Version)
	if err != nil {
		return err
	}

	outputs, err := renderer.RenderAll(ctx, deployment, devices, rs)
	if err != nil {
		return err
	}

	outDir := cmd.String("output")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, out := range outputs {
		target := filepath.Join(outDir, out.Filename)
		if err := os.WriteFile(target, []byte(out.Config), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		slog.Info("configuration written",
			"device", out.Device,
			"direction", out.Direction,
			"file", target)
	}

	slog.Info("generation complete",
		"generation_id", renderer.GenerationID(),
		"rules", len(rs),
		"files", len(outputs))
	return nil
}
