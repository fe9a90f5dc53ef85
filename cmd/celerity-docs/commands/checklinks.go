package commands

import (
	"fmt"

	"github.com/newstack-cloud/celerity-docs/internal/linkcheck"
)

// CheckLinksCmd implements the 'check-links' command.
type CheckLinksCmd struct{}

func (c *CheckLinksCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	src, err := loadSource(cfg)
	if err != nil {
		return err
	}

	report, err := linkcheck.Check(src, linkcheck.Options{DocsRoute: cfg.Site.DocsRoute, SiteURL: cfg.Site.URL})
	for _, b := range report.Broken {
		fmt.Println(b.String())
	}
	fmt.Printf("Checked %d links across %d pages, %d broken\n", report.Checked, report.Pages, len(report.Broken))
	return err
}
