package googletasks_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"

	"todo/internal/backend/googletasks"
	"todo/internal/remote"
)

type insertedTask struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

type fakeAPI struct {
	mu       sync.Mutex
	inserted []insertedTask
	status   int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.status != 0 {
		http.Error(w, `{"error":{"code":401,"message":"unauthorized"}}`, f.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/users/@me/lists/@default"):
		json.NewEncoder(w).Encode(map[string]any{"id": "real-default", "title": "My Tasks"})
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/users/@me/lists"):
		json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
			{"id": "l1", "title": "Groceries"},
			{"id": "l2", "title": "Work"},
			{"id": "l3", "title": "work "},
		}})
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/tasks"):
		json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
			{"id": "t1", "title": "buy milk"},
			{"id": "t2", "title": "old", "status": "completed"},
		}})
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/tasks"):
		var body insertedTask
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.inserted = append(f.inserted, body)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"id": "new", "title": body.Title, "status": body.Status})
	default:
		http.NotFound(w, r)
	}
}

func newClient(t *testing.T, api *fakeAPI) *googletasks.Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := googletasks.NewWithHTTPClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestClient_DefaultList(t *testing.T) {
	client := newClient(t, &fakeAPI{})

	list, err := client.DefaultList(context.Background())
	if err != nil {
		t.Fatalf("default list: %v", err)
	}
	if list.ID != googletasks.DefaultListID || list.Title != "My Tasks" || !list.IsDefault {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestClient_ResolveList(t *testing.T) {
	client := newClient(t, &fakeAPI{})
	ctx := context.Background()

	list, err := client.ResolveList(ctx, "  groceries ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if list.ID != "l1" {
		t.Errorf("expected l1, got %+v", list)
	}

	if _, err := client.ResolveList(ctx, "missing"); !errors.Is(err, remote.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := client.ResolveList(ctx, "work"); !errors.Is(err, remote.ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous, got %v", err)
	}
}

func TestClient_ListTitles(t *testing.T) {
	client := newClient(t, &fakeAPI{})

	titles, err := client.ListTitles(context.Background(), "l1")
	if err != nil {
		t.Fatalf("list titles: %v", err)
	}
	if len(titles) != 2 || titles[0] != "buy milk" || titles[1] != "old" {
		t.Errorf("unexpected titles: %v", titles)
	}
}

func TestClient_CreateTask(t *testing.T) {
	api := &fakeAPI{}
	client := newClient(t, api)
	ctx := context.Background()

	if err := client.CreateTask(ctx, "l1", "open one", false); err != nil {
		t.Fatalf("create open: %v", err)
	}
	if err := client.CreateTask(ctx, "l1", "done one", true); err != nil {
		t.Fatalf("create completed: %v", err)
	}

	if len(api.inserted) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(api.inserted))
	}
	if api.inserted[0].Title != "open one" || api.inserted[0].Status != "" {
		t.Errorf("unexpected first insert: %+v", api.inserted[0])
	}
	if api.inserted[1].Status != "completed" {
		t.Errorf("expected completed status, got %+v", api.inserted[1])
	}
}

func TestClient_AuthErrorIsFriendly(t *testing.T) {
	client := newClient(t, &fakeAPI{status: http.StatusUnauthorized})

	_, err := client.DefaultList(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "todo login") {
		t.Errorf("expected login hint, got %q", err.Error())
	}
}
