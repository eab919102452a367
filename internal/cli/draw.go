package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/npillmayer/bstmap/internal/config"
	"github.com/npillmayer/bstmap/internal/names"
	"github.com/npillmayer/bstmap/persistent/bst"
	"github.com/npillmayer/bstmap/persistent/bst/bstdbg"
)

func newDrawCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw the binary search tree holding the name data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format, _ := cmd.Flags().GetString("format"); format != "" {
				a.conf.Draw.Format = format
			}
			m, err := a.loadNames()
			if err != nil {
				return err
			}
			return draw(cmd.OutOrStdout(), m.Root(), a.conf.Draw.Format)
		},
	}
	cmd.Flags().StringP("format", "f", "", "Output format (text, dot)")
	return cmd
}

func draw(w io.Writer, root *bst.Node[string, names.Info], format string) error {
	switch format {
	case config.DrawText:
		return bstdbg.Print(w, root)
	case config.DrawDot:
		return bstdbg.ToGraphViz(root, w)
	}
	return errors.Errorf("unknown draw format %q", format)
}
