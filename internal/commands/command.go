// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
	"todolist/internal/todo"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command talks to the remote store.
	// Commands like help and version return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, settings).
	// svc is nil if NeedsStore() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// newController builds a controller that logs through the default logger.
func newController(svc service.Service, opts ...todo.Option) *todo.Controller {
	opts = append([]todo.Option{todo.WithLogger(slog.Default())}, opts...)
	return todo.NewController(svc, opts...)
}

// loadController builds a controller and fetches the list. On failure the
// error has already been reported and the exit code is returned.
func loadController(ctx context.Context, svc service.Service, errOut io.Writer) (*todo.Controller, int) {
	ctrl := newController(svc)
	if err := ctrl.Load(ctx); err != nil {
		return nil, reportError(errOut, err)
	}
	return ctrl, exitcode.Success
}

// itemAt resolves a 1-based item number against the loaded list.
func itemAt(ctrl *todo.Controller, num int, errOut io.Writer) (service.TaskItem, bool) {
	item, err := ctrl.ItemAt(num)
	if err != nil {
		fmt.Fprintf(errOut, "error: item number out of range: %d\n", num)
		return service.TaskItem{}, false
	}
	return item, true
}

// reportError prints err in the CLI's error format and maps it to an exit
// code.
func reportError(errOut io.Writer, err error) int {
	var verr *todo.ValidationError
	var rerr *todo.RemoteError

	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(errOut, "error: %s\n", verr.Message)
		return exitcode.UserError
	case errors.Is(err, todo.ErrUnknownItem), errors.Is(err, todo.ErrNotEditing):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.As(err, &rerr) && rerr.Op == "create":
		fmt.Fprintf(errOut, "error: %s (%v)\n", todo.MsgCreateFailed, rerr.Err)
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
