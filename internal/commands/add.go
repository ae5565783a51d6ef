package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/exitcode"
	"todo/internal/store"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Append a task" }
func (c *AddCmd) Usage() string     { return "todo add <description...>" }
func (c *AddCmd) NeedsTasks() bool  { return true }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	description := strings.Join(args, " ")

	res, err := env.Session.Add(description)
	if err != nil {
		return reportMutationError(errOut, err, 0)
	}

	// The delimiter cannot be escaped; tell the user what will come back.
	if strings.Contains(res.Task.Description, store.Delimiter) {
		reloaded, _ := store.ParseLine(store.FormatLine(res.Task))
		fmt.Fprintf(errOut, "warning: %q cannot be stored in a description; task will reload as %q\n",
			store.Delimiter, reloaded.Description)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
