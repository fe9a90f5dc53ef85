package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/newstack-cloud/celerity-docs/internal/search"
)

// SyncCmd implements the 'sync' command.
type SyncCmd struct {
	DryRun bool `name:"dry-run" help:"Build records without uploading them"`
}

func (s *SyncCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	src, err := loadSource(cfg)
	if err != nil {
		return err
	}

	records := search.BuildRecords(src.Pages(), cfg.Site.DocsRoute)
	if s.DryRun {
		fmt.Printf("Built %d search records from %d pages\n", len(records), src.Len())
		return nil
	}

	svc, closeFn, err := newSearchService(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := svc.Sync(ctx, records); err != nil {
		return err
	}
	fmt.Printf("Synced %d search records to %s\n", len(records), svc.Backend().Name())
	return nil
}
