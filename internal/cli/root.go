// Package cli implements the commands of namelookup.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/npillmayer/bstmap/internal/config"
	"github.com/npillmayer/bstmap/internal/names"
	"github.com/npillmayer/bstmap/persistent/bst"
)

// nolint: gochecknoglobals
var Version = "master"

// app is the state shared by all commands of one invocation.
type app struct {
	conf config.Config
	log  zerolog.Logger
}

// NewRootCommand creates the namelookup command with all its subcommands.
func NewRootCommand() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "namelookup",
		Short:         "Look up census name frequencies in a persistent binary search tree",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
	}
	root.PersistentFlags().StringP("config", "c", "", "Config file")
	root.PersistentFlags().StringP("data", "d", "", "Name data file")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(newLookupCommand(a))
	root.AddCommand(newDrawCommand(a))
	root.AddCommand(newShellCommand(a))
	return root
}

// Execute runs the namelookup command. This is called by main.main().
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		root.PrintErrln(err)
		os.Exit(-1)
	}
}

func (a *app) configure(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	conf, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		conf.Data = data
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		conf.Log.Level = level
	}
	a.conf = conf
	a.log = NewLogger(conf.Log.Level, cmd.ErrOrStderr())
	a.log.Debug().Str("data", conf.Data).Str("draw", conf.Draw.Format).Msg("configured")
	return nil
}

func (a *app) loadNames() (*bst.Map[string, names.Info], error) {
	m, err := names.LoadFile(a.conf.Data)
	if err != nil {
		a.log.Error().Err(err).Msg("cannot load name data")
		return nil, err
	}
	a.log.Info().Str("file", a.conf.Data).Int("height", m.Height()).Msg("name data loaded")
	return m, nil
}
