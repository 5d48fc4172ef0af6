package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

const testEntryID = "6f1f3ab0-51ba-4db8-b2ce-8088bb78c1b5"

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

// stubTodoService is a hand-written test double for ports.TodoService. Only
// the function fields a test sets are expected to be called.
type stubTodoService struct {
	createFn func(ctx context.Context, input ports.CreateTodoInput) (*todo.Entry, error)
	getFn    func(ctx context.Context, id string) (*todo.Entry, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateTodoInput) (*todo.Entry, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
	listFn   func(ctx context.Context, page todo.Page) ([]todo.Entry, error)
}

func (s *stubTodoService) CreateTodo(ctx context.Context, input ports.CreateTodoInput) (*todo.Entry, error) {
	return s.createFn(ctx, input)
}

func (s *stubTodoService) GetTodo(ctx context.Context, id string) (*todo.Entry, error) {
	return s.getFn(ctx, id)
}

func (s *stubTodoService) UpdateTodo(ctx context.Context, id string, input ports.UpdateTodoInput) (*todo.Entry, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubTodoService) DeleteTodo(ctx context.Context, id string) (bool, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubTodoService) ListTodos(ctx context.Context, page todo.Page) ([]todo.Entry, error) {
	return s.listFn(ctx, page)
}

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validEntry() todo.Entry {
	return todo.Entry{
		ID:          uuid.MustParse(testEntryID),
		Title:       "Buy groceries",
		Description: "Milk, eggs, bread",
		CreatedAt:   testTime,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
