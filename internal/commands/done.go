package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. Running it twice on the same task
// reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "todo done <n>" }
func (c *DoneCmd) NeedsTasks() bool  { return true }
func (c *DoneCmd) NeedsAuth() bool   { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	num, code := parseRefOrReport(args, errOut)
	if code != exitcode.Success {
		return code
	}

	res, err := env.Session.ToggleAt(num - 1)
	if err != nil {
		return reportMutationError(errOut, err, num)
	}

	if !env.Config.Quiet {
		if res.Task.Completed {
			fmt.Fprintln(out, "ok: done")
		} else {
			fmt.Fprintln(out, "ok: reopened")
		}
	}
	return exitcode.Success
}
