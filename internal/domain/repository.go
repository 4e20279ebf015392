// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
)

// Repository defines CRUD operations over the key-column store for one
// record kind.
type Repository[T any] interface {
	// Create inserts a new record and returns it with the assigned identity.
	Create(ctx context.Context, rec T) (T, error)

	// Update modifies an existing record by id.
	// Fails with a not-found error if zero rows were affected.
	Update(ctx context.Context, rec T) error

	// Delete removes a record by id.
	// Fails with a not-found error if zero rows were affected.
	Delete(ctx context.Context, id int64) error

	// FindByID retrieves a record by id.
	FindByID(ctx context.Context, id int64) (T, error)

	// FindAll retrieves all records ordered by name.
	FindAll(ctx context.Context) ([]T, error)

	// Exists checks if a record with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

// --- Hooks ---

// HookEvent represents a lifecycle event type.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeUpdate HookEvent = "before_update"
	AfterUpdate  HookEvent = "after_update"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook is a function that runs at a specific lifecycle point.
type Hook[T any] func(ctx context.Context, rec T) error

// HookRegistry stores lifecycle hooks for a record kind.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, rec T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
