// Package cli implements the ukechug command-line interface.
//
// Every command takes one markup file and runs it through the rendering
// pipeline:
//   - render: paint to a PNG
//   - ascii: paint to a character canvas on stdout
//   - boxes: print the solved box tree
//   - dom: print the document tree after scripts have run
//
// Settings come from an optional TOML file (--config); flags override it.
// --verbose (-v) switches logging to debug level, which reports each
// pipeline stage.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"ukechug/internal/config"
)

var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

// globalOpts holds flags shared by every command.
type globalOpts struct {
	configPath string
	verbose    bool
	noScripts  bool
	noUA       bool
}

// Execute runs the ukechug CLI and reports a failure on stderr.
func Execute() error {
	root := NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		printError(root.ErrOrStderr(), "%v", err)
		return err
	}
	return nil
}

func NewRootCommand() *cobra.Command {
	var g globalOpts

	root := &cobra.Command{
		Use:           "ukechug",
		Short:         "ukechug lays out and paints markup documents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			if g.noScripts {
				cfg.Document.Scripts = false
			}
			if g.noUA {
				cfg.Document.UserAgent = false
			}

			level := cfg.LogLevel()
			if g.verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("ukechug %s\n", version))
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVar(&g.noScripts, "no-scripts", false, "do not run document scripts")
	root.PersistentFlags().BoolVar(&g.noUA, "no-ua", false, "do not apply the user-agent stylesheet")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newASCIICmd())
	root.AddCommand(newBoxesCmd())
	root.AddCommand(newDOMCmd())

	return root
}

// out is where a command writes its result.
func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
