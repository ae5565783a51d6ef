// Package store persists tasks to a plain-text file, one task per line.
//
// Line format: "<description>:<completed>". The delimiter is not escapable: a
// description containing ':' loads back as the text before the first ':' with
// the remainder parsed as the completion flag.
//
// Saves keep the permission bits of an existing file and write through a
// symlinked path to its target.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"todo/internal/logging"
	"todo/internal/task"
)

const (
	// Delimiter separates description and completion flag.
	Delimiter = ":"

	// DefaultFile is the task file used when nothing else is configured.
	DefaultFile = "tasks.txt"

	// fileMode applies to files created by Save.
	fileMode fs.FileMode = 0o644
)

// SaveError reports a failed save.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save tasks to %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Store reads and writes a task file.
// No file handle is held between calls.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a store for path. A nil logger discards diagnostics.
func New(path string, logger *slog.Logger) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{path: path, logger: logging.OrDiscard(logger)}
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the tasks in the file, in file order.
// A missing or unreadable file yields an empty list; the cause is logged only.
func (s *Store) Load() []task.Task {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("task file not found, starting empty", "path", s.path)
		} else {
			s.logger.Warn("cannot open task file, starting empty", "path", s.path, "err", err)
		}
		return []task.Task{}
	}
	defer f.Close()

	tasks, err := Decode(f)
	if err != nil {
		s.logger.Warn("cannot read task file, starting empty", "path", s.path, "err", err)
		return []task.Task{}
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks
}

// Save replaces the file content with tasks.
// Data is written to a temporary file in the same directory and renamed over
// the target, so a failed save leaves the previous file in place.
func (s *Store) Save(tasks []task.Task) error {
	for i, t := range tasks {
		if strings.Contains(t.Description, Delimiter) {
			s.logger.Warn("description contains the delimiter and will not reload intact",
				"index", i, "description", t.Description)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}

	target, mode := s.target()
	dir := filepath.Dir(target)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := Encode(tmp, tasks); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	committed = true

	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// target resolves the file Save replaces and the mode it gets.
// A symlinked path resolves to the link target; an existing file keeps its
// permission bits.
func (s *Store) target() (string, fs.FileMode) {
	target := s.path
	if resolved, err := filepath.EvalSymlinks(s.path); err == nil {
		target = resolved
	}
	if fi, err := os.Stat(target); err == nil && fi.Mode().IsRegular() {
		return target, fi.Mode().Perm()
	}
	return target, fileMode
}

// Decode parses task lines from r. Lines without a delimiter are skipped.
// Lines have no length limit.
func Decode(r io.Reader) ([]task.Task, error) {
	tasks := []task.Task{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if t, ok := ParseLine(strings.TrimSuffix(line, "\n")); ok {
				tasks = append(tasks, t)
			}
		}
		if errors.Is(err, io.EOF) {
			return tasks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read tasks: %w", err)
		}
	}
}

// Encode writes one line per task, terminated by '\n'.
func Encode(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		if _, err := bw.WriteString(FormatLine(t) + "\n"); err != nil {
			return fmt.Errorf("write tasks: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// ParseLine parses a single line. ok is false when the line has no delimiter.
// The completion flag is true only for a case-insensitive "true".
func ParseLine(line string) (t task.Task, ok bool) {
	line = strings.TrimSuffix(line, "\r")
	description, flag, found := strings.Cut(line, Delimiter)
	if !found {
		return task.Task{}, false
	}
	return task.Task{
		Description: description,
		Completed:   strings.EqualFold(flag, "true"),
	}, true
}

// FormatLine renders a task as a file line without the terminator.
func FormatLine(t task.Task) string {
	return t.Description + Delimiter + strconv.FormatBool(t.Completed)
}
