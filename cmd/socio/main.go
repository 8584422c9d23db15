// Command socio renders and checks sociograms without the interactive
// editor.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/sociogram/internal/config"
	"github.com/ha1tch/sociogram/internal/logging"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app holds the persistent flags shared by every subcommand.
type app struct {
	cfgPath string
	verbose bool
}

// loadConfig reads the config named by --config.
func (a *app) loadConfig() (*config.Config, error) {
	return config.Load(a.cfgPath)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "socio",
		Short:        "Render and check sociograms",
		Long:         `socio lays entities out on a circle, links them and writes the diagram as a JPEG. Names and defaults come from flags or the sociogram config file.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A broken config is reported by the subcommand that reads it.
			name := config.Default().Log.Level
			if cfg, err := a.loadConfig(); err == nil {
				name = cfg.Log.Level
			}
			level, err := logging.Level(name, a.verbose)
			if err != nil {
				return err
			}
			ctx := logging.WithLogger(cmd.Context(), logging.New(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", config.Path(), "config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newConfigCmd(a))
	return root
}
