package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It flips completion, so running it
// twice reopens the item.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle completion of an item" }
func (c *DoneCmd) Usage() string     { return "todolist done <n>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, code := parseItemArg(args, errOut)
	if code != exitcode.Success {
		return code
	}

	ctrl, code := loadController(ctx, svc, errOut)
	if ctrl == nil {
		return code
	}
	item, ok := itemAt(ctrl, num, errOut)
	if !ok {
		return exitcode.UserError
	}

	if err := ctrl.Toggle(ctx, item.ID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		if msg, ok := ctrl.Notification(); ok {
			fmt.Fprintln(out, msg)
		}
	}
	return exitcode.Success
}
