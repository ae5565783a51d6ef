// Package session owns the in-memory task list for a front end and maps user
// intents onto list mutations, saving a snapshot after each one.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"todo/internal/logging"
	"todo/internal/task"
)

// ErrUnknownIntent is returned by Apply for an intent kind with no handler.
var ErrUnknownIntent = errors.New("unknown intent")

// Store is the persistence the session needs.
type Store interface {
	Load() []task.Task
	Save(tasks []task.Task) error
}

// Kind names a user intent.
type Kind string

const (
	Add    Kind = "add"
	Remove Kind = "remove"
	Toggle Kind = "toggle"
	Close  Kind = "close"
)

// Intent is one user action. Text is used by Add, Index by Remove and Toggle.
type Intent struct {
	Kind  Kind
	Text  string
	Index int
}

// Result describes what an intent changed.
type Result struct {
	Kind  Kind
	Task  task.Task
	Index int
}

type handler func(s *Session, in Intent) (Result, error)

var handlers = map[Kind]handler{
	Add: func(s *Session, in Intent) (Result, error) {
		t, err := s.list.Add(in.Text)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: Add, Task: t, Index: s.list.Len() - 1}, nil
	},
	Remove: func(s *Session, in Intent) (Result, error) {
		t, err := s.list.RemoveAt(in.Index)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: Remove, Task: t, Index: in.Index}, nil
	},
	Toggle: func(s *Session, in Intent) (Result, error) {
		t, err := s.list.ToggleAt(in.Index)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: Toggle, Task: t, Index: in.Index}, nil
	},
	Close: func(s *Session, in Intent) (Result, error) {
		return Result{Kind: Close}, nil
	},
}

// Session holds the task list of one front end.
type Session struct {
	store  Store
	list   *task.List
	logger *slog.Logger
}

// Open loads the task list from st.
func Open(st Store, logger *slog.Logger) *Session {
	return &Session{
		store:  st,
		list:   task.NewList(st.Load()),
		logger: logging.OrDiscard(logger),
	}
}

// Tasks returns a snapshot of the current list.
func (s *Session) Tasks() []task.Task {
	return s.list.Tasks()
}

// Len returns the number of tasks.
func (s *Session) Len() int {
	return s.list.Len()
}

// Apply performs the intent and saves the list.
//
// Validation errors (blank text, bad index) leave the list untouched and skip
// the save. A save error is returned as-is with the mutation kept in memory;
// the next successful save persists it.
func (s *Session) Apply(in Intent) (Result, error) {
	h, ok := handlers[in.Kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownIntent, in.Kind)
	}

	res, err := h(s, in)
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("applied intent", "kind", in.Kind, "index", res.Index)

	if err := s.store.Save(s.list.Tasks()); err != nil {
		s.logger.Error("save failed", "kind", in.Kind, "err", err)
		return res, err
	}
	return res, nil
}

// Add appends a task.
func (s *Session) Add(description string) (Result, error) {
	return s.Apply(Intent{Kind: Add, Text: description})
}

// RemoveAt removes the task at a zero-based index.
func (s *Session) RemoveAt(index int) (Result, error) {
	return s.Apply(Intent{Kind: Remove, Index: index})
}

// ToggleAt flips completion of the task at a zero-based index.
func (s *Session) ToggleAt(index int) (Result, error) {
	return s.Apply(Intent{Kind: Toggle, Index: index})
}

// Close performs the final save.
func (s *Session) Close() error {
	_, err := s.Apply(Intent{Kind: Close})
	return err
}
