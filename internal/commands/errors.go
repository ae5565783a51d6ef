package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/store"
	"todo/internal/task"
)

// reportMutationError prints err for a failed add/rm/done and returns the exit
// code. num is the 1-based task number the user gave, or 0.
func reportMutationError(errOut io.Writer, err error, num int) int {
	var saveErr *store.SaveError
	switch {
	case errors.Is(err, task.ErrEmptyDescription):
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	case errors.Is(err, task.ErrIndexOutOfRange):
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return exitcode.UserError
	case errors.As(err, &saveErr):
		fmt.Fprintf(errOut, "error: %v\n", saveErr)
		return exitcode.StorageError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
}
