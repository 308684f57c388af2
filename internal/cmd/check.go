package cmd

import (
	"context"

	"go.followtheprocess.codes/cdlint/internal/cdlint"
	"go.followtheprocess.codes/cli"
)

const checkLong = `
The path argument may be a directory or a file.

If it is the name of a .json file, then this file alone is checked.

If it is a directory, this directory is scanned recursively for all
files with the '.json' extension and any matching files will be checked.

Problems are reported to stdout; a run that completes exits 0 no matter
how many problems it found. A file that cannot be checked at all, e.g.
one whose top level JSON value is not an object, stops the run with a
non-zero exit. The --format flag switches the output between human
readable diagnostics and machine readable reports.
`

// check returns the check subcommand.
func check(ctx context.Context) func() (*cli.Command, error) {
	return func() (*cli.Command, error) {
		var options cdlint.CheckOptions

		return cli.New(
			"check",
			cli.Short("Check Custom Difficulty files for problems"),
			cli.Long(checkLong),
			cli.OptionalArg("path", "Path to check, may be directory or file", "."),
			cli.Flag(&options.Config, "config", 'c', "cdlint.toml", "Path to the cdlint config file"),
			cli.Flag(
				&options.Format,
				"format",
				'f',
				"pretty",
				"Output format, one of pretty, json, yaml or toml",
			),
			cli.Flag(&options.Debug, "debug", 'd', false, "Enable debug logging"),
			cli.Run(func(cmd *cli.Command, args []string) error {
				options.Path = cmd.Arg("path")

				app := cdlint.New(options.Debug, cmd.Stdout(), cmd.Stderr())

				return app.Check(ctx, options)
			}),
		)
	}
}
