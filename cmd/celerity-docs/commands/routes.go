package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/routes"
)

// RoutesCmd implements the 'routes' command.
type RoutesCmd struct {
	JSON bool `help:"Print params as JSON"`
}

func (r *RoutesCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	src, err := loadSource(cfg)
	if err != nil {
		return err
	}

	params := routes.ResolveParents(src.GenerateParams())
	slog.Debug("Resolved route params", logfields.Routes(len(params)))
	if r.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(params)
	}
	for _, p := range params {
		fmt.Printf("%s\t%s\n", "/"+p.Slug.Join(), p.Meta["file"])
	}
	return nil
}
