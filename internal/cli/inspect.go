package cli

import (
	"github.com/spf13/cobra"
)

func newBoxesCmd() *cobra.Command {
	var opts documentOpts

	cmd := &cobra.Command{
		Use:   "boxes <file.html>",
		Short: "Print the solved box tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, markup, err := loadDocument(ctx, args[0], opts)
			if err != nil {
				return err
			}
			res, err := r.Run(ctx, markup)
			if err != nil {
				return err
			}
			if res.Root == nil {
				printDetail(out(cmd), "root element is not displayed")
				return nil
			}
			res.Root.Dump(out(cmd))
			return nil
		},
	}

	addDocumentFlags(cmd, &opts)
	return cmd
}

func newDOMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dom <file.html>",
		Short: "Print the document tree after scripts run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, markup, err := loadDocument(ctx, args[0], documentOpts{})
			if err != nil {
				return err
			}
			res, err := r.Run(ctx, markup)
			if err != nil {
				return err
			}
			res.Document.Root.Dump(out(cmd))
			return nil
		},
	}
	return cmd
}
