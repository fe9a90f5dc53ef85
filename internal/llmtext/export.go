package llmtext

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/metrics"
	"github.com/newstack-cloud/celerity-docs/internal/routes"
	"github.com/newstack-cloud/celerity-docs/internal/source"
)

const (
	// RouteDir is the directory (and URL prefix) of exported page texts.
	RouteDir = "llms.mdx"
	// IndexFile is the file name of the page listing.
	IndexFile = "llms.txt"
)

// Exporter writes the plain-text route as static files.
type Exporter struct {
	Renderer Renderer
	Title    string // heading of llms.txt
	Summary  string
	// Clean removes a previous export of the route before writing.
	Clean    bool
	Recorder metrics.Recorder
}

// ExportReport summarizes a finished export.
type ExportReport struct {
	Pages    int
	Files    []string // written files relative to the output directory, slash separated
	Duration time.Duration
}

// Export writes one file per route under <outDir>/llms.mdx and the llms.txt
// index. Route params come from src and pass through routes.ResolveParents, so
// a page with children is written as <slug>/index instead of colliding with
// its children's directory. The root page is written as llms.mdx/index.
func (e *Exporter) Export(ctx context.Context, src *source.Source, outDir string) (*ExportReport, error) {
	start := time.Now()
	recorder := metrics.OrNoop(e.Recorder)
	routeDir := filepath.Join(outDir, RouteDir)

	if e.Clean {
		if err := os.RemoveAll(routeDir); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to clean export directory").
				WithContext("path", routeDir).
				Build()
		}
	}

	params := routes.ResolveParents(src.GenerateParams())
	report := &ExportReport{}
	for _, param := range params {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapError(err, errors.CategoryRuntime, "export canceled").Build()
		}

		page, err := Lookup(src, param.Slug)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryExport, "route does not resolve to a page").
				WithContext("slug", param.Slug.Join()).
				Build()
		}

		slug := param.Slug
		if len(slug) == 0 {
			slug = routes.Path{routes.IndexSegment}
		}
		rel := RouteDir + "/" + slug.Join()
		if err := writeFile(filepath.Join(outDir, filepath.FromSlash(rel)), e.Renderer.Render(page)); err != nil {
			return nil, err
		}
		report.Files = append(report.Files, rel)
		report.Pages++
		slog.Debug("Exported page", logfields.Slug(slug.Join()), logfields.File(param.Meta["file"]))
	}

	index := e.Renderer.Index(e.Title, e.Summary, src.Pages())
	if err := writeFile(filepath.Join(outDir, IndexFile), index); err != nil {
		return nil, err
	}
	report.Files = append(report.Files, IndexFile)
	report.Duration = time.Since(start)

	recorder.IncExportedPages(report.Pages)
	slog.Info("Export complete", logfields.Path(outDir), logfields.Pages(report.Pages),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create export directory").
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write export file").
			WithContext("path", path).
			Build()
	}
	return nil
}
