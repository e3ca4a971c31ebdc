package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type renderOpts struct {
	documentOpts
	output string
}

func addDocumentFlags(cmd *cobra.Command, opts *documentOpts) {
	cmd.Flags().StringArrayVar(&opts.css, "css", nil, "extra stylesheet file (repeatable)")
	cmd.Flags().Float64VarP(&opts.width, "width", "W", 0, "viewport width (default from config)")
	cmd.Flags().Float64VarP(&opts.height, "height", "H", 0, "viewport height (default from config)")
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file.html>",
		Short: "Render a document to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG (default: input name with .png)")
	addDocumentFlags(cmd, &opts.documentOpts)
	return cmd
}

func runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	r, markup, err := loadDocument(ctx, input, opts.documentOpts)
	if err != nil {
		return err
	}
	raster, res, err := r.RenderRaster(ctx, markup)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}
	if err := raster.SavePNG(output); err != nil {
		return err
	}
	prog.done("Rendered " + input)

	printFile(out(cmd), input, output)
	printDetail(out(cmd), "%d draw commands", len(res.Display))
	return nil
}
