package dto

import (
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// CreateTodoRequest represents the JSON body for creating a new todo entry.
// The client supplies the entry ID; the server validates it as a UUID.
type CreateTodoRequest struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// ToInput converts the request body to a service-layer input. Field
// validation happens in the service pipeline, not here, so malformed
// values pass through unchanged and come back as validation errors.
func (r *CreateTodoRequest) ToInput() ports.CreateTodoInput {
	return ports.CreateTodoInput{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
	}
}

// UpdateTodoRequest represents the JSON body for updating an existing todo
// entry. All fields are optional; nil means "do not change this field".
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Done        *bool   `json:"done,omitempty"`
}

// Empty reports whether the request carries no fields to change.
func (r *UpdateTodoRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Done == nil
}

// ToInput converts the request body to a service-layer input.
func (r *UpdateTodoRequest) ToInput() ports.UpdateTodoInput {
	return ports.UpdateTodoInput{
		Title:       r.Title,
		Description: r.Description,
		Done:        r.Done,
	}
}
