package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/netfabric/aclmgr/pkg/config"
	"github.com/netfabric/aclmgr/pkg/ruleset"
	"github.com/netfabric/aclmgr/pkg/serializer"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Validate the ACL rules in a ruleset configuration",
		ArgsUsage:             "<config.yaml>",
		Description: `Loads a ruleset configuration and batch-validates every embedded rule
line. All lines are checked regardless of earlier failures; every
diagnostic is reported with its 1-based line and column.

On success the validated ruleset is written in the requested format,
optionally after expansion.

# Examples

Validate only:
  aclmgr check ruleset.yaml

Validate, expand, and emit the result as YAML:
  aclmgr check --expand --format yaml ruleset.yaml

Write expanded rules to a file:
  aclmgr check --expand --output rules.json ruleset.yaml`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "expand",
				Usage: "Expand multi-valued port fields before output",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "yaml",
				Usage: "Output format (yaml, json)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "-",
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: runCheck,
	}
}

func runCheck(_ context.Context, cmd *cli.Command) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

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
	slog.Info("ruleset is valid", "path", path, "rules", len(rs))

	if cmd.Bool("expand") {
		rs = rs.Expand()
		slog.Info("ruleset expanded", "rules", len(rs))
	}

	w, closer, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	if err != nil {
		return err
	}
	defer closer()

	return w.Serialize(rs)
}
