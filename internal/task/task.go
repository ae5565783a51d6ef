// Package task defines the task record and the ordered task collection.
package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDescription is returned when a task description is blank after trimming.
var ErrEmptyDescription = errors.New("description required")

// ErrIndexOutOfRange is wrapped by IndexError.
var ErrIndexOutOfRange = errors.New("task index out of range")

// IndexError reports a position that does not address a task.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("task index out of range: %d (have %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// Task is a single to-do item.
type Task struct {
	Description string
	Completed   bool
}

// New creates an incomplete task.
// The description is trimmed and line breaks are folded to spaces so the
// task always fits on one line of the task file.
func New(description string) (Task, error) {
	description = strings.ReplaceAll(description, "\r\n", " ")
	description = strings.ReplaceAll(description, "\r", " ")
	description = strings.ReplaceAll(description, "\n", " ")
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, ErrEmptyDescription
	}
	return Task{Description: description}, nil
}

// Toggle flips the completion flag.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// List is an ordered task collection. Position is the only identity a task has.
type List struct {
	tasks []Task
}

// NewList creates a list holding a copy of tasks.
func NewList(tasks []Task) *List {
	l := &List{}
	l.tasks = append(l.tasks, tasks...)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// At returns the task at index.
func (l *List) At(index int) (Task, error) {
	if err := l.check(index); err != nil {
		return Task{}, err
	}
	return l.tasks[index], nil
}

// Tasks returns a snapshot of the list. Callers may keep or modify it freely.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Add appends a new incomplete task.
func (l *List) Add(description string) (Task, error) {
	t, err := New(description)
	if err != nil {
		return Task{}, err
	}
	l.tasks = append(l.tasks, t)
	return t, nil
}

// RemoveAt removes the task at index and returns it.
func (l *List) RemoveAt(index int) (Task, error) {
	if err := l.check(index); err != nil {
		return Task{}, err
	}
	removed := l.tasks[index]
	l.tasks = append(l.tasks[:index], l.tasks[index+1:]...)
	return removed, nil
}

// ToggleAt flips the completion flag of the task at index and returns the
// updated task.
func (l *List) ToggleAt(index int) (Task, error) {
	if err := l.check(index); err != nil {
		return Task{}, err
	}
	l.tasks[index].Toggle()
	return l.tasks[index], nil
}

func (l *List) check(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return &IndexError{Index: index, Len: len(l.tasks)}
	}
	return nil
}
