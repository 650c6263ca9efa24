package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/netfabric/aclmgr/pkg/version"
)

// New builds the aclmgr root command.
func New() *cli.Command {
	return &cli.Command{
		Name:    "aclmgr",
		Usage:   "Validate, expand, and render network access-control rulesets",
		Version: version.String(),
		Description: `aclmgr processes ruleset configuration documents: small allow/deny rule
lines embedded in YAML, plus the deployment targets they apply to. Rules
are validated against a closed grammar with exact line/column diagnostics,
port lists and ranges are expanded into single-valued rules, and the result
is rendered into vendor configuration text.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Print debug information",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Print verbose information",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureLogging(cmd.Bool("debug"), cmd.Bool("verbose"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			checkCmd(),
			generateCmd(),
			versionCmd(),
		},
	}
}
