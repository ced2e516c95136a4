package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/output"
	"todolist/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todolist` (no args) and `todolist list`.
type ListCmd struct {
	page          int
	hideCompleted bool
}

// SetPage sets the page number (for testing).
func (c *ListCmd) SetPage(page int) {
	c.page = page
}

// SetHideCompleted sets the completed-items filter (for testing).
func (c *ListCmd) SetHideCompleted(hide bool) {
	c.hideCompleted = hide
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Show one page of items" }
func (c *ListCmd) Usage() string     { return "todolist list [--page <n>] [--hide-completed]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 1, "")
	fs.BoolVar(&c.hideCompleted, "hide-completed", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}

	ctrl, code := loadController(ctx, svc, errOut)
	if ctrl == nil {
		return code
	}
	ctrl.SetPage(c.page)
	ctrl.SetShowCompleted(!c.hideCompleted)

	output.RenderPage(out, output.PageFrom(ctrl, cfg.DateLayout))
	return exitcode.Success
}
