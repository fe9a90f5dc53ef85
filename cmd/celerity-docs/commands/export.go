package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/llmtext"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/publish"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Output  string `short:"o" help:"Output directory (overrides export.output_dir)" type:"path"`
	Clean   bool   `help:"Remove a previous export before writing"`
	Publish bool   `help:"Upload the export to the bucket in export.publish"`
}

func (e *ExportCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	src, err := loadSource(cfg)
	if err != nil {
		return err
	}

	outDir := cfg.Export.OutputDir
	if e.Output != "" {
		outDir = e.Output
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	exporter := &llmtext.Exporter{
		Renderer: llmtext.Renderer{SiteURL: cfg.Site.URL, DocsRoute: cfg.Site.DocsRoute},
		Title:    cfg.Site.Title,
		Summary:  cfg.Site.Tagline,
		Clean:    cfg.Export.Clean || e.Clean,
	}
	report, err := exporter.Export(ctx, src, outDir)
	if err != nil {
		return err
	}
	slog.Info("Export complete", logfields.Path(outDir), logfields.Pages(report.Pages),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	fmt.Printf("Exported %d pages to %s\n", report.Pages, outDir)

	if !e.Publish {
		return nil
	}
	pub := cfg.Export.Publish
	if pub == nil {
		return errors.ConfigError("--publish requires export.publish in the configuration").Build()
	}
	store, err := publish.NewS3Store(pub)
	if err != nil {
		return err
	}
	uploaded, err := publish.Upload(ctx, store, outDir, pub.Prefix, report.Files)
	if err != nil {
		return err
	}
	slog.Info("Publish complete", slog.String("bucket", pub.Bucket), slog.Int("objects", uploaded.Objects),
		logfields.DurationMS(float64(uploaded.Duration.Milliseconds())))
	fmt.Printf("Published %d objects to s3://%s/%s\n", uploaded.Objects, pub.Bucket, pub.Prefix)
	return nil
}
