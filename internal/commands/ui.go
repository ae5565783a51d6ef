package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"todo/internal/exitcode"
	"todo/internal/store"
	"todo/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd opens the interactive terminal UI.
type UICmd struct {
	in io.Reader
}

// SetInput overrides the terminal input (for testing).
func (c *UICmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Interactive task list" }
func (c *UICmd) Usage() string     { return "todo ui" }
func (c *UICmd) NeedsTasks() bool  { return true }
func (c *UICmd) NeedsAuth() bool   { return false }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(errOut, "error: ui requires a terminal (use list, add, rm, done instead)")
			return exitcode.UserError
		}
		in = os.Stdin
	}

	err := tui.Run(ctx, env.Session, in, out)
	if err == nil {
		return exitcode.Success
	}
	var saveErr *store.SaveError
	if errors.As(err, &saveErr) {
		return reportMutationError(errOut, err, 0)
	}
	fmt.Fprintf(errOut, "error: terminal ui: %v\n", err)
	return exitcode.UserError
}
