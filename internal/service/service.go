// Package service defines the backend-agnostic interface for the to-do store.
package service

import "context"

// Service defines the remote collection the list is mirrored from.
// Commands and the controller never import a transport directly.
type Service interface {
	// ListAll returns the whole collection in store order.
	// There is no protocol-level pagination.
	ListAll(ctx context.Context) ([]TaskItem, error)

	// Create stores a new item with the given title.
	// The store assigns the ID; the item starts not completed and dated today.
	Create(ctx context.Context, title string) (TaskItem, error)

	// Update sends the set fields of patch for the item with the given ID.
	// The returned item is the store's post-update representation.
	Update(ctx context.Context, id string, patch TaskPatch) (TaskItem, error)

	// Delete removes the item with the given ID.
	Delete(ctx context.Context, id string) error
}
