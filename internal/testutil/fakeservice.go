// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"todo/internal/remote"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// RemoteTask is a task held by FakeService.
type RemoteTask struct {
	ID        string
	Title     string
	Completed bool
}

// FakeService is an in-memory implementation of remote.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	lists []remote.List
	tasks map[string][]RemoteTask // listID -> tasks

	// Error injection for testing
	DefaultListErr error
	ResolveListErr error
	ListTitlesErr  error
	CreateTaskErr  error
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks: make(map[string][]RemoteTask),
	}
	fs.lists = []remote.List{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	fs.tasks[DefaultListID] = nil
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, remote.List{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask adds an open task to a list.
func (f *FakeService) AddTask(listID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], RemoteTask{ID: taskID, Title: title})
}

// Tasks returns a copy of the tasks in a list.
func (f *FakeService) Tasks(listID string) []RemoteTask {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]RemoteTask, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out
}

// DefaultList implements remote.Service.
func (f *FakeService) DefaultList(ctx context.Context) (remote.List, error) {
	if f.DefaultListErr != nil {
		return remote.List{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return remote.List{}, errors.New("no default list")
}

// ResolveList implements remote.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (remote.List, error) {
	if f.ResolveListErr != nil {
		return remote.List{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	name = strings.TrimSpace(name)
	nameLower := strings.ToLower(name)

	var matches []remote.List
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return remote.List{}, fmt.Errorf("%w: %s", remote.ErrNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return remote.List{}, fmt.Errorf("%w: %s", remote.ErrAmbiguous, name)
	}
}

// ListTitles implements remote.Service.
func (f *FakeService) ListTitles(ctx context.Context, listID string) ([]string, error) {
	if f.ListTitlesErr != nil {
		return nil, f.ListTitlesErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, remote.ErrNotFound
	}
	titles := make([]string, 0, len(tasks))
	for _, t := range tasks {
		titles = append(titles, t.Title)
	}
	return titles, nil
}

// CreateTask implements remote.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string, completed bool) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return remote.ErrNotFound
	}

	// Generate a simple ID
	id := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	f.tasks[listID] = append(f.tasks[listID], RemoteTask{
		ID:        id,
		Title:     title,
		Completed: completed,
	})
	return nil
}
