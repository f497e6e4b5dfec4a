// Package shell implements the interactive note editor behind `scribble shell`.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/scribble/pkg/core"
)

// Prompt is printed before each command.
const Prompt = "scribble> "

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

const helpText = `Commands:
  new, :n            create a note and select it
  list, ls           list notes matching the current search
  select <id>        select a note
  title <text>       set the title of the selected note
  content <text>     set the content of the selected note
  search [query]     filter notes by title and content (no query clears)
  show               print the selected note
  delete, :d         delete the selected note (asks first)
  help               show this help
  quit, exit         leave the shell`

// Shell reads commands line by line and applies them to a Service.
type Shell struct {
	svc    *core.Service
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
}

// New creates a shell reading commands from in and writing to out.
func New(svc *core.Service, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	return &Shell{
		svc:    svc,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
}

// Run executes commands until quit, end of input or ctx is done.
// Command errors are printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(s.out, Prompt)

		line, err := s.in.ReadString('\n')
		if line == "" && err != nil {
			if err == io.EOF {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		if execErr := s.Exec(ctx, line); execErr != nil {
			if errors.Is(execErr, ErrQuit) {
				return nil
			}
			fmt.Fprintf(s.out, "Error: %v\n", execErr)
		}
	}
}

// Exec runs a single command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	if s.logger != nil && cmd != "" {
		s.logger.Debug("shell command", "cmd", cmd)
	}

	switch cmd {
	case "":
		return nil
	case "new", ":n":
		st, err := s.svc.Dispatch(ctx, core.Created{})
		if err != nil {
			return err
		}
		s.status(st)
	case "list", "ls":
		st := s.svc.Snapshot()
		return WriteList(s.out, st.Visible(), st.SelectedID, st.EmptyMessage())
	case "select":
		if arg == "" {
			return errors.New("usage: select <id>")
		}
		st, err := s.svc.Dispatch(ctx, core.Selected{ID: arg})
		if err != nil {
			return err
		}
		s.status(st)
	case "title":
		return s.patch(ctx, core.TitlePatch(arg))
	case "content":
		return s.patch(ctx, core.ContentPatch(arg))
	case "search":
		st, err := s.svc.Dispatch(ctx, core.Searched{Query: arg})
		if err != nil {
			return err
		}
		return WriteList(s.out, st.Visible(), st.SelectedID, st.EmptyMessage())
	case "show":
		n, ok := s.svc.Snapshot().Selected()
		if !ok {
			fmt.Fprintln(s.out, core.MsgNotSelected)
			return nil
		}
		return WriteNote(s.out, n)
	case "delete", ":d":
		return s.delete(ctx)
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "quit", "exit", ":q":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

func (s *Shell) patch(ctx context.Context, p core.Patch) error {
	st, err := s.svc.Dispatch(ctx, core.Patched{Patch: p})
	if err != nil {
		return err
	}
	s.status(st)
	return nil
}

func (s *Shell) delete(ctx context.Context) error {
	n, ok := s.svc.Snapshot().Selected()
	if !ok {
		fmt.Fprintln(s.out, core.MsgNotSelected)
		return nil
	}

	yes, err := Confirm(s.in, s.out, DeletePrompt(n))
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(s.out, "Cancelled.")
		return nil
	}

	st, err := s.svc.Dispatch(ctx, core.Deleted{ID: n.ID})
	if err != nil {
		return err
	}
	s.status(st)
	return nil
}

func (s *Shell) status(st core.State) {
	if st.Message != "" {
		fmt.Fprintln(s.out, st.Message)
	}
}
