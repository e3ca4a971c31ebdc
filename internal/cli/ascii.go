package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type asciiOpts struct {
	documentOpts
	cellWidth  float64
	cellHeight float64
}

func newASCIICmd() *cobra.Command {
	var opts asciiOpts

	cmd := &cobra.Command{
		Use:   "ascii <file.html>",
		Short: "Paint a document as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			if opts.cellWidth <= 0 {
				opts.cellWidth = cfg.Canvas.CellWidth
			}
			if opts.cellHeight <= 0 {
				opts.cellHeight = cfg.Canvas.CellHeight
			}

			r, markup, err := loadDocument(ctx, args[0], opts.documentOpts)
			if err != nil {
				return err
			}
			canvas, _, err := r.RenderCanvas(ctx, markup, opts.cellWidth, opts.cellHeight)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out(cmd), canvas.String())
			return err
		},
	}

	cmd.Flags().Float64Var(&opts.cellWidth, "cell-width", 0, "pixels per character column (default from config)")
	cmd.Flags().Float64Var(&opts.cellHeight, "cell-height", 0, "pixels per character row (default from config)")
	addDocumentFlags(cmd, &opts.documentOpts)
	return cmd
}
