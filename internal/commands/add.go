package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create an item" }
func (c *AddCmd) Usage() string     { return "todolist add <title...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ctrl := newController(svc)
	ctrl.SetInput(strings.Join(args, " "))
	if err := ctrl.Submit(ctx); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		items := ctrl.State().Items
		added := items[len(items)-1]
		fmt.Fprintf(out, "ok: added %q\n", added.Title)
	}
	return exitcode.Success
}
