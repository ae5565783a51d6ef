package session_test

import (
	"errors"
	"path/filepath"
	"testing"

	"todo/internal/session"
	"todo/internal/store"
	"todo/internal/task"
)

// memStore records saves and can be told to fail.
type memStore struct {
	initial []task.Task
	saved   [][]task.Task
	saveErr error
}

func (m *memStore) Load() []task.Task {
	return append([]task.Task(nil), m.initial...)
}

func (m *memStore) Save(tasks []task.Task) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, tasks)
	return nil
}

func (m *memStore) last() []task.Task {
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[len(m.saved)-1]
}

func TestSession_AddSaveLoad(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "tasks.txt"), nil)

	s := session.Open(st, nil)
	if s.Len() != 0 {
		t.Fatalf("expected empty start, got %d tasks", s.Len())
	}
	if _, err := s.Add("buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := st.Load()
	if len(got) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got))
	}
	want := task.Task{Description: "buy milk", Completed: false}
	if got[0] != want {
		t.Errorf("expected %+v, got %+v", want, got[0])
	}
}

func TestSession_EveryMutationSaves(t *testing.T) {
	st := &memStore{}
	s := session.Open(st, nil)

	steps := []session.Intent{
		{Kind: session.Add, Text: "a"},
		{Kind: session.Add, Text: "b"},
		{Kind: session.Add, Text: "c"},
		{Kind: session.Toggle, Index: 1},
		{Kind: session.Remove, Index: 0},
	}
	for _, in := range steps {
		if _, err := s.Apply(in); err != nil {
			t.Fatalf("apply %+v: %v", in, err)
		}
	}

	if len(st.saved) != len(steps) {
		t.Errorf("expected %d saves, got %d", len(steps), len(st.saved))
	}
	want := []task.Task{
		{Description: "b", Completed: true},
		{Description: "c", Completed: false},
	}
	got := st.last()
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks saved, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSession_ResultDescribesChange(t *testing.T) {
	st := &memStore{initial: []task.Task{{Description: "a"}, {Description: "b"}}}
	s := session.Open(st, nil)

	res, err := s.ToggleAt(1)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if res.Kind != session.Toggle || res.Index != 1 || !res.Task.Completed || res.Task.Description != "b" {
		t.Errorf("unexpected result: %+v", res)
	}

	res, err = s.Add("c")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if res.Index != 2 {
		t.Errorf("expected added index 2, got %d", res.Index)
	}
}

func TestSession_SaveFailureKeepsMutation(t *testing.T) {
	saveErr := errors.New("disk full")
	st := &memStore{saveErr: saveErr}
	s := session.Open(st, nil)

	res, err := s.Add("x")
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if res.Task.Description != "x" {
		t.Errorf("result should describe the applied mutation, got %+v", res)
	}
	if s.Len() != 1 {
		t.Errorf("expected mutation to stay in memory, got %d tasks", s.Len())
	}

	st.saveErr = nil
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := st.last(); len(got) != 1 || got[0].Description != "x" {
		t.Errorf("expected pending task to be saved on close, got %+v", got)
	}
}

func TestSession_InvalidInputSkipsSave(t *testing.T) {
	st := &memStore{initial: []task.Task{{Description: "a"}}}
	s := session.Open(st, nil)

	if _, err := s.Add("   "); !errors.Is(err, task.ErrEmptyDescription) {
		t.Errorf("expected ErrEmptyDescription, got %v", err)
	}
	if _, err := s.RemoveAt(4); !errors.Is(err, task.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := s.ToggleAt(-1); !errors.Is(err, task.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if len(st.saved) != 0 {
		t.Errorf("expected no saves, got %d", len(st.saved))
	}
}

func TestSession_UnknownIntent(t *testing.T) {
	s := session.Open(&memStore{}, nil)
	if _, err := s.Apply(session.Intent{Kind: "undo"}); !errors.Is(err, session.ErrUnknownIntent) {
		t.Errorf("expected ErrUnknownIntent, got %v", err)
	}
}

func TestSession_TasksIsSnapshot(t *testing.T) {
	s := session.Open(&memStore{initial: []task.Task{{Description: "a"}}}, nil)
	snap := s.Tasks()
	snap[0].Completed = true
	if s.Tasks()[0].Completed {
		t.Error("modifying a snapshot must not change the session")
	}
}
