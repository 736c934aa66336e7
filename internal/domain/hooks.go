// Package domain provides building blocks shared by the domain services.
package domain

import (
	"context"

	"stockbook/internal/domain/store"
)

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	BeforeUpdate HookEvent = "before_update"
	BeforeDelete HookEvent = "before_delete"
)

// Hook runs inside the transaction of the operation it is attached to.
// Returning an error aborts the operation.
type Hook[T any] func(ctx context.Context, doc *store.Document, entity T) error

// HookRegistry stores lifecycle hooks for an entity type.
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

// Run executes all hooks for the specified event in registration order.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, doc *store.Document, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, doc, entity); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeCreate registers a hook to run before create.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) {
	r.On(BeforeCreate, hook)
}

// OnBeforeUpdate registers a hook to run before update.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) {
	r.On(BeforeUpdate, hook)
}

// OnBeforeDelete registers a hook to run before delete.
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) {
	r.On(BeforeDelete, hook)
}
