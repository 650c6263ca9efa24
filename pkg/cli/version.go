package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/netfabric/aclmgr/pkg/version"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the aclmgr version",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintln(cmd.Root().Writer, "aclmgr", version.String())
			return err
		},
	}
}
