package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// TodoHandler handles HTTP requests for todo entry CRUD operations. All
// field and id validation happens in the service's sanitization pipeline;
// the handler only deals with transport concerns.
type TodoHandler struct {
	service ports.TodoService
}

// NewTodoHandler creates a new TodoHandler with the given service port.
func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// ListTodos handles GET /api/v1/todos.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	entries, err := h.service.ListTodos(r.Context(), page)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoListResponse(entries, page))
}

// CreateTodo handles POST /api/v1/todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTodoRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	created, err := h.service.CreateTodo(r.Context(), req.ToInput())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTodoResponse(created))
}

// GetTodo handles GET /api/v1/todos/{id}. The raw path segment is passed to
// the service, which validates it as a UUID.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.GetTodo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(entry))
}

// UpdateTodo handles PATCH /api/v1/todos/{id}. Absent body fields are left
// untouched; a body with no recognized fields is rejected.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTodoRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Empty() {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "no fields to update"},
		})
		return
	}

	updated, err := h.service.UpdateTodo(r.Context(), chi.URLParam(r, "id"), req.ToInput())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(updated))
}

// DeleteTodo handles DELETE /api/v1/todos/{id}. Deleting an already-deleted
// entry returns 404; the operation is not idempotent.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.DeleteTodo(r.Context(), chi.URLParam(r, "id")); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
