// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
)

// TodoResponse represents a single todo entry in HTTP responses.
type TodoResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// TodoListResponse represents a page of todo entries in HTTP responses.
type TodoListResponse struct {
	Todos []TodoResponse `json:"todos"`
	Count int            `json:"count"`
	Limit int            `json:"limit"`
	Page  int            `json:"page"`
}

// ToTodoResponse converts a domain Entry to an HTTP response DTO.
func ToTodoResponse(e *todo.Entry) TodoResponse {
	resp := TodoResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		Done:        e.Done,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
	if e.UpdatedAt != nil {
		resp.UpdatedAt = e.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

// ToTodoListResponse converts a page of domain entries to an HTTP list
// response DTO.
func ToTodoListResponse(entries []todo.Entry, page todo.Page) TodoListResponse {
	items := make([]TodoResponse, len(entries))
	for i := range entries {
		items[i] = ToTodoResponse(&entries[i])
	}
	return TodoListResponse{
		Todos: items,
		Count: len(items),
		Limit: page.Limit,
		Page:  page.Page,
	}
}
