// Package domain holds the error taxonomy shared by all layers. Entities
// live in subpackages (domain/todo) so they can reference the sentinel
// errors without import cycles.
package domain
