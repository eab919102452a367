package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/npillmayer/bstmap/internal/config"
	"github.com/npillmayer/bstmap/internal/names"
	"github.com/npillmayer/bstmap/persistent/bst"
)

const shellHelp = `commands:
  lookup NAME              look up a name
  add NAME FREQ CUM RANK   add a name
  remove NAME              remove a name
  draw [text|dot]          draw the tree
  height                   print the height of the tree
  undo                     go back to the version before the last change
  quit                     leave the shell
`

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactively look up, add and remove names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadNames()
			if err != nil {
				return err
			}
			s := newSession(m, cmd.OutOrStdout(), a.log)
			s.drawFormat = a.conf.Draw.Format
			return s.run(cmd.InOrStdin())
		},
	}
}

// session is an interactive shell on a name map. Every successful change of the
// map pushes the previous version onto a history, enabling undo.
type session struct {
	names      *bst.Map[string, names.Info]
	history    []bst.Version[string, names.Info]
	out        io.Writer
	log        zerolog.Logger
	drawFormat string
}

func newSession(m *bst.Map[string, names.Info], out io.Writer, log zerolog.Logger) *session {
	return &session{names: m, out: out, log: log, drawFormat: config.DrawText}
}

func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		quit, err := s.exec(scanner.Text())
		if err != nil {
			s.log.Debug().Err(err).Msg("command failed")
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// exec executes a single command line. It returns true if the session should end.
func (s *session) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		_, err := io.WriteString(s.out, shellHelp)
		return false, err
	case "lookup":
		if len(args) != 1 {
			return false, errors.New("usage: lookup NAME")
		}
		return false, lookup(s.out, s.names, args[0])
	case "add":
		info, err := names.Parse(strings.Join(args, " "))
		if err != nil {
			return false, errors.Wrap(err, "usage: add NAME FREQ CUM RANK")
		}
		prev := s.names.Snapshot()
		if err = s.names.Add(info.Name, info); err != nil {
			return false, err
		}
		s.history = append(s.history, prev)
		fmt.Fprintf(s.out, "added %s\n", info.Name)
	case "remove":
		if len(args) != 1 {
			return false, errors.New("usage: remove NAME")
		}
		prev := s.names.Snapshot()
		key := names.Normalize(args[0])
		removed, err := s.names.Remove(key)
		if err != nil {
			return false, err
		}
		if !removed {
			fmt.Fprintf(s.out, "%s: not found\n", key)
			return false, nil
		}
		s.history = append(s.history, prev)
		fmt.Fprintf(s.out, "removed %s\n", key)
	case "draw":
		format := s.drawFormat
		if len(args) > 0 {
			format = args[0]
		}
		return false, draw(s.out, s.names.Root(), format)
	case "height":
		fmt.Fprintf(s.out, "height %d\n", s.names.Height())
	case "undo":
		if len(s.history) == 0 {
			return false, errors.New("nothing to undo")
		}
		last := len(s.history) - 1
		s.names.Restore(s.history[last])
		s.history = s.history[:last]
		fmt.Fprintln(s.out, "undone")
	default:
		return false, errors.Errorf("unknown command %q, try help", cmd)
	}
	return false, nil
}
