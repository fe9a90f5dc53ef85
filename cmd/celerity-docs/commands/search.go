package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/newstack-cloud/celerity-docs/internal/search"
)

// SearchCmd implements the 'search' command.
type SearchCmd struct {
	Query []string `arg:"" help:"Search terms"`
}

func (s *SearchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	svc, closeFn, err := newSearchService(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Search.TimeoutDuration()*2)
	defer cancel()

	result, err := svc.Search(ctx, strings.Join(s.Query, " "))
	if err != nil {
		return err
	}
	if result.Empty {
		fmt.Println("Empty query.")
		return nil
	}
	if len(result.Entries) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for _, e := range result.Entries {
		printEntry(e)
	}
	return nil
}

func printEntry(e search.Entry) {
	switch e.Kind {
	case search.EntryPage:
		fmt.Printf("\n%s\n  %s\n", e.Display(), e.URL)
	case search.EntryHeading:
		fmt.Printf("  # %s  (%s)\n", e.Display(), e.URL)
	default:
		fmt.Printf("    %s\n", e.Display())
	}
}
