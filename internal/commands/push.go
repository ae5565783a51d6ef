package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/remote"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd copies local tasks into a Google Tasks list. Tasks whose title is
// already present in the list are skipped, so repeated pushes do not duplicate.
type PushCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>]" }
func (c *PushCmd) NeedsTasks() bool  { return true }
func (c *PushCmd) NeedsAuth() bool   { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	listName := c.listName
	if listName == "" {
		listName = env.Config.RemoteList
	}

	// Resolve list
	var list remote.List
	var err error
	if listName != "" {
		list, err = env.Remote.ResolveList(ctx, listName)
		if err != nil {
			if errors.Is(err, remote.ErrNotFound) {
				fmt.Fprintf(errOut, "error: list not found: %s\n", listName)
				return exitcode.UserError
			}
			if errors.Is(err, remote.ErrAmbiguous) {
				fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", listName)
				return exitcode.UserError
			}
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
	} else {
		list, err = env.Remote.DefaultList(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
	}

	report, err := remote.Push(ctx, env.Remote, list, env.Session.Tasks())
	if err != nil {
		env.Logger.Debug("push stopped", "created", report.Created, "err", err)
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Config.Quiet {
		output.FormatPushReport(out, list, report)
	}
	return exitcode.Success
}
