package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ukechug/pkg/pipeline"
	"ukechug/pkg/resource"
)

// documentOpts are the flags that shape how a document is loaded.
type documentOpts struct {
	css    []string // extra stylesheet files
	width  float64
	height float64
}

// loadDocument reads the markup at path and builds a renderer for it from
// the config in ctx. Linked stylesheets resolve against the document's
// directory; --css files resolve against the working directory.
func loadDocument(ctx context.Context, path string, opts documentOpts) (*pipeline.Renderer, string, error) {
	cfg := configFromContext(ctx)
	logger := loggerFromContext(ctx)

	markup, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}

	ropts := cfg.Options()
	if opts.width > 0 {
		ropts.Width = opts.width
	}
	if opts.height > 0 {
		ropts.Height = opts.height
	}

	local := resource.NewFileFetcher("")
	for _, sheet := range opts.css {
		src, err := local.FetchCSS(sheet)
		if err != nil {
			return nil, "", fmt.Errorf("loading stylesheet: %w", err)
		}
		ropts.ExtraCSS = append(ropts.ExtraCSS, src)
	}

	font, err := cfg.Font()
	if err != nil {
		return nil, "", err
	}

	r, err := pipeline.NewRenderer(font, ropts,
		pipeline.WithLogger(logger),
		pipeline.WithFetcher(resource.NewFileFetcher(filepath.Dir(path))),
	)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("loaded document", "path", path, "bytes", len(markup), "viewport", fmt.Sprintf("%gx%g", ropts.Width, ropts.Height))
	return r, string(markup), nil
}
