package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/npillmayer/bstmap/internal/names"
	"github.com/npillmayer/bstmap/persistent/bst"
)

func newLookupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup NAME...",
		Short: "Look up names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadNames()
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := lookup(cmd.OutOrStdout(), m, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func lookup(w io.Writer, m *bst.Map[string, names.Info], name string) error {
	key := names.Normalize(name)
	info, found, err := m.TryGetValue(key)
	if err != nil {
		return err
	}
	if !found {
		_, err = fmt.Fprintf(w, "%s: not found\n", key)
		return err
	}
	_, err = fmt.Fprintln(w, info)
	return err
}
