package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/newstack-cloud/celerity-docs/cmd/celerity-docs/commands"
	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("celerity-docs"),
		kong.Description("Plain-text export, search and link checking for the Celerity documentation."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
