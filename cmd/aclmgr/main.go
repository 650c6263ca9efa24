package main

import (
	"context"
	"fmt"
	"os"

	"github.com/netfabric/aclmgr/pkg/cli"
)

func main() {
	if err := cli.New().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
