// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"

	"todo/internal/config"
	"todo/internal/remote"
	"todo/internal/session"
)

// Env carries what a command may use.
type Env struct {
	// Config is always provided (config dir, task file, flags).
	Config *config.Config

	// Session is the loaded task list; nil if NeedsTasks() returns false.
	Session *session.Session

	// Remote is the hosted task backend; nil if NeedsAuth() returns false.
	Remote remote.Service

	// Logger is never nil.
	Logger *slog.Logger
}

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

	// NeedsTasks returns true if the command reads or changes the task file.
	NeedsTasks() bool

	// NeedsAuth returns true if the command requires Google credentials.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
