package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/metrics"
	"todolist/internal/output"
	"todolist/internal/service"
	"todolist/internal/todo"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd runs an interactive session over one controller. The page is
// redrawn after every action that can change it.
type ShellCmd struct {
	in io.Reader
}

// SetInput sets the reader commands are read from (for testing).
func (c *ShellCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Interactive session" }
func (c *ShellCmd) Usage() string     { return "todolist shell" }
func (c *ShellCmd) NeedsStore() bool  { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}

	s := &session{
		cfg:    cfg,
		out:    out,
		errOut: errOut,
	}
	s.ctrl = newController(svc, todo.WithBusyHook(s.busy))

	// A failed first load leaves an empty page; refresh can retry.
	if err := s.ctrl.Load(ctx); err != nil {
		reportError(errOut, err)
	}
	s.render()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := readLines(ctx, in)

	for {
		s.prompt()
		var line inputLine
		var open bool
		select {
		case <-ctx.Done():
			return exitcode.Success
		case line, open = <-lines:
		}
		if !open {
			return exitcode.Success
		}
		if line.err != nil {
			fmt.Fprintf(errOut, "error: reading input: %v\n", line.err)
			return exitcode.UserError
		}
		if quit := s.exec(ctx, line.text); quit {
			return exitcode.Success
		}
	}
}

// inputLine is one line read from the shell's input, or the read error that
// ended it.
type inputLine struct {
	text string
	err  error
}

// readLines feeds lines from r until EOF, a read error, or ctx is done, so
// the session can stop on cancellation while a read is blocked. Lines have
// no length limit.
func readLines(ctx context.Context, r io.Reader) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			text, err := br.ReadString('\n')
			if text != "" {
				select {
				case lines <- inputLine{text: strings.TrimRight(text, "\r\n")}:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					select {
					case lines <- inputLine{err: err}:
					case <-ctx.Done():
					}
				}
				return
			}
		}
	}()
	return lines
}

type session struct {
	cfg    *config.Config
	ctrl   *todo.Controller
	out    io.Writer
	errOut io.Writer
}

func (s *session) busy(busy bool) {
	if busy && !s.cfg.Quiet {
		fmt.Fprintln(s.out, output.LoadingLine)
	}
}

func (s *session) prompt() {
	if !s.cfg.Quiet {
		fmt.Fprint(s.out, "> ")
	}
}

func (s *session) render() {
	output.RenderPage(s.out, output.PageFrom(s.ctrl, s.cfg.DateLayout))
}

// exec runs one input line and reports whether the session should end.
func (s *session) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	var err error
	switch strings.ToLower(verb) {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprint(s.out, shellHelpText)
		return false
	case "stats":
		counts, serr := metrics.Snapshot()
		if serr != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", serr)
			return false
		}
		output.FormatStats(s.out, counts)
		return false
	case "add":
		s.ctrl.SetInput(rest)
		err = s.ctrl.Submit(ctx)
	case "done", "toggle":
		err = s.withItem(rest, func(item service.TaskItem) error {
			return s.ctrl.Toggle(ctx, item.ID)
		})
	case "edit":
		err = s.withItem(rest, func(item service.TaskItem) error {
			s.ctrl.BeginEdit(item.ID, item.Title)
			return nil
		})
	case "draft":
		if s.ctrl.State().EditID == "" {
			err = todo.ErrNotEditing
			break
		}
		s.ctrl.SetDraft(rest)
	case "save":
		err = s.ctrl.SaveEdit(ctx)
	case "cancel":
		s.ctrl.CancelEdit()
	case "rm", "delete":
		err = s.withItem(rest, func(item service.TaskItem) error {
			return s.ctrl.Remove(ctx, item.ID)
		})
	case "next":
		s.ctrl.NextPage()
	case "prev", "previous":
		s.ctrl.PrevPage()
	case "completed":
		s.ctrl.ToggleShowCompleted()
	case "refresh":
		err = s.ctrl.Load(ctx)
	default:
		fmt.Fprintf(s.errOut, "error: unknown command: %s\n", verb)
		return false
	}

	if err != nil && !shownInline(err) {
		reportError(s.errOut, err)
	}
	s.render()
	return false
}

// withItem resolves the item number in arg and runs fn on it.
func (s *session) withItem(arg string, fn func(service.TaskItem) error) error {
	num, err := ParseItemRef(strings.Fields(arg))
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return nil
	}
	item, ok := itemAt(s.ctrl, num, s.errOut)
	if !ok {
		return nil
	}
	return fn(item)
}

// shownInline reports whether err is already on the page as the input
// error line.
func shownInline(err error) bool {
	var verr *todo.ValidationError
	var rerr *todo.RemoteError
	if errors.As(err, &verr) {
		return true
	}
	return errors.As(err, &rerr) && rerr.Op == "create"
}

const shellHelpText = `Commands:
  add <title...>     Create an item
  done <n>           Toggle completion (alias: toggle)
  edit <n>           Start editing an item
  draft <text...>    Replace the draft title
  save               Save the draft
  cancel             Leave edit mode
  rm <n>             Delete an item
  next, prev         Change page
  completed          Show or hide completed items
  refresh            Reload the list
  stats              Show store call counts
  quit               Leave the shell
`
