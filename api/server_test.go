package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"reelbot/encoder"
	"reelbot/task"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type runRecord struct {
	mu     sync.Mutex
	ids    []string
	params []task.Params
	done   chan struct{}
}

func newTestRouter(t *testing.T, store task.Store) (*gin.Engine, *runRecord) {
	t.Helper()
	rec := &runRecord{done: make(chan struct{}, 8)}
	run := func(ctx context.Context, id string, params task.Params) (*task.Status, error) {
		rec.mu.Lock()
		rec.ids = append(rec.ids, id)
		rec.params = append(rec.params, params)
		rec.mu.Unlock()
		st := &task.Status{ID: id, State: task.StateComplete, Progress: 100, Params: params}
		_ = store.Put(ctx, st)
		rec.done <- struct{}{}
		return st, nil
	}

	sel := encoder.NewSelector(capabilitySourceFunc(func(context.Context) (string, error) {
		return "V..... libx264  H.264", nil
	}))
	return NewRouter(Deps{Store: store, Run: run, Selector: sel}), rec
}

type capabilitySourceFunc func(ctx context.Context) (string, error)

func (f capabilitySourceFunc) ListEncoders(ctx context.Context) (string, error) { return f(ctx) }

func TestCreateTask(t *testing.T) {
	store := task.NewMemoryStore()
	router, rec := newTestRouter(t, store)

	body := `{"subject":"deep sea creatures","aspect":"9:16"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID    string `json:"id"`
		State string `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID == "" || resp.State != task.StatePending {
		t.Errorf("response = %+v", resp)
	}

	// Wait for the async run to land
	<-rec.done
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.ids) != 1 || rec.ids[0] != resp.ID {
		t.Errorf("runner got ids %v, want [%s]", rec.ids, resp.ID)
	}
	if rec.params[0].Subject != "deep sea creatures" {
		t.Errorf("runner params = %+v", rec.params[0])
	}
}

func TestCreateTaskRejectsEmpty(t *testing.T) {
	router, rec := newTestRouter(t, task.NewMemoryStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	select {
	case <-rec.done:
		t.Fatal("runner invoked for invalid request")
	default:
	}
}

func TestCreateTaskRejectsBadJSON(t *testing.T) {
	router, _ := newTestRouter(t, task.NewMemoryStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(`{nope`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetTask(t *testing.T) {
	store := task.NewMemoryStore()
	router, _ := newTestRouter(t, store)

	_ = store.Put(context.Background(), &task.Status{ID: "known", State: task.StateProcessing, Progress: 40})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tasks/known", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var st task.Status
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if st.State != task.StateProcessing || st.Progress != 40 {
		t.Errorf("status = %+v", st)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tasks/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteTask(t *testing.T) {
	store := task.NewMemoryStore()
	router, _ := newTestRouter(t, store)

	_ = store.Put(context.Background(), &task.Status{ID: "gone", State: task.StateComplete})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/gone", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if _, err := store.Get(context.Background(), "gone"); err != task.ErrNotFound {
		t.Errorf("task still present after delete: %v", err)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/gone", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestEncoderReport(t *testing.T) {
	router, _ := newTestRouter(t, task.NewMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/encoder", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Codec    string `json:"codec"`
		Hardware bool   `json:"hardware"`
		Threads  int    `json:"threads"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Codec != "libx264" || resp.Hardware {
		t.Errorf("encoder report = %+v", resp)
	}
	if resp.Threads < 2 {
		t.Errorf("threads = %d, want >= 2", resp.Threads)
	}
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, task.NewMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}
