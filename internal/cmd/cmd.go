// Package cmd implements cdlint's CLI.
package cmd

import (
	"context"
	"fmt"

	"go.followtheprocess.codes/cli"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the cdlint CLI.
func Build(ctx context.Context) (*cli.Command, error) {
	return cli.New(
		"cdlint",
		cli.Short("A linter for Deep Rock Galactic Custom Difficulty files"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Check a single Custom Difficulty file", "cdlint check ./hazard6.json"),
		cli.Example("Check a whole directory of files (recursively)", "cdlint check ./difficulties"),
		cli.Example("Get the findings as JSON", "cdlint check ./hazard6.json --format json"),
		cli.Example(
			"Allow descriptors added by other mods",
			"cdlint check ./hazard6.json --config ./cdlint.toml",
		),
		cli.Allow(cli.NoArgs()),
		cli.SubCommands(check(ctx)),
		cli.Run(func(cmd *cli.Command, args []string) error {
			fmt.Fprintln(cmd.Stdout(), "Run 'cdlint check <path>' to check a Custom Difficulty file, or 'cdlint --help' for usage")
			return nil
		}),
	)
}
