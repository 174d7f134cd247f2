package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kast7n/PurrfectMatchPublic-sub003/cmd/purrfectmatch/cli"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewServeCommand())
	root.AddCommand(cli.NewMigrateCommand())
	root.AddCommand(cli.NewSeedCommand())
	root.AddCommand(cli.NewStatsCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
