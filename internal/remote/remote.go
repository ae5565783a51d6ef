// Package remote defines the backend-agnostic interface used to copy local
// tasks into a hosted task list, and the push operation built on it.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo/internal/task"
)

// ErrNotFound is returned when a list name matches nothing.
var ErrNotFound = errors.New("list not found")

// ErrAmbiguous is returned when a list name matches more than one list.
var ErrAmbiguous = errors.New("ambiguous list name")

// List is a hosted task list.
type List struct {
	ID        string
	Title     string
	IsDefault bool
}

// Service is implemented by hosted task backends.
// Commands never import a backend SDK directly.
type Service interface {
	// DefaultList returns the user's default list.
	DefaultList(ctx context.Context) (List, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns an error wrapping ErrNotFound or ErrAmbiguous.
	ResolveList(ctx context.Context, name string) (List, error)

	// ListTitles returns the titles of every task in the list, completed
	// tasks included.
	ListTitles(ctx context.Context, listID string) ([]string, error)

	// CreateTask creates a task, optionally already completed.
	CreateTask(ctx context.Context, listID, title string, completed bool) error
}

// Report summarizes a push.
type Report struct {
	Created int
	Skipped int
}

// Push creates every local task that is not already present in list.
// Presence is decided by exact title after trimming; duplicates within tasks
// are created once. Blank descriptions are skipped.
func Push(ctx context.Context, svc Service, list List, tasks []task.Task) (Report, error) {
	var report Report

	existing, err := svc.ListTitles(ctx, list.ID)
	if err != nil {
		return report, fmt.Errorf("list remote tasks: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, title := range existing {
		seen[strings.TrimSpace(title)] = true
	}

	for _, t := range tasks {
		title := strings.TrimSpace(t.Description)
		if title == "" || seen[title] {
			report.Skipped++
			continue
		}
		if err := svc.CreateTask(ctx, list.ID, title, t.Completed); err != nil {
			return report, fmt.Errorf("create task %q: %w", title, err)
		}
		seen[title] = true
		report.Created++
	}
	return report, nil
}
