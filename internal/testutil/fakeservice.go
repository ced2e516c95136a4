// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"todolist/internal/service"
)

// ErrNotFound is returned when an item is not in the store.
var ErrNotFound = errors.New("not found")

// Operation names counted by FakeService.
const (
	OpListAll = "ListAll"
	OpCreate  = "Create"
	OpUpdate  = "Update"
	OpDelete  = "Delete"
)

// FakeService is an in-memory implementation of service.Service for testing.
// IDs are assigned sequentially as strings, the way mockapi.io does.
type FakeService struct {
	mu     sync.RWMutex
	items  []service.TaskItem
	nextID int
	calls  map[string]int
	last   service.TaskPatch

	// Now dates created items. Defaults to time.Now.
	Now func() time.Time

	// Error injection for testing
	ListAllErr error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		calls:  make(map[string]int),
		Now:    time.Now,
	}
}

// AddItem seeds an item with an explicit ID.
func (f *FakeService) AddItem(id, title string, completed bool, createdAt civil.Date) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, service.TaskItem{
		ID:        id,
		Title:     title,
		Completed: completed,
		CreatedAt: createdAt,
	})
	if n, err := strconv.Atoi(id); err == nil && n >= f.nextID {
		f.nextID = n + 1
	}
}

// Insert stores item under a fresh ID and returns it.
func (f *FakeService) Insert(item service.TaskItem) service.TaskItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.ID = strconv.Itoa(f.nextID)
	f.nextID++
	f.items = append(f.items, item)
	return item
}

// Items returns a copy of the stored items in store order.
func (f *FakeService) Items() []service.TaskItem {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskItem, len(f.items))
	copy(result, f.items)
	return result
}

// CallCount returns how many times op was called, including failed calls.
func (f *FakeService) CallCount(op string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[op]
}

// TotalCalls returns the number of calls across all operations.
func (f *FakeService) TotalCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// LastPatch returns the patch passed to the most recent Update call.
func (f *FakeService) LastPatch() service.TaskPatch {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.last
}

func (f *FakeService) count(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

// ListAll implements service.Service.
func (f *FakeService) ListAll(ctx context.Context) ([]service.TaskItem, error) {
	f.count(OpListAll)
	if f.ListAllErr != nil {
		return nil, f.ListAllErr
	}
	return f.Items(), nil
}

// Create implements service.Service.
func (f *FakeService) Create(ctx context.Context, title string) (service.TaskItem, error) {
	f.count(OpCreate)
	if f.CreateErr != nil {
		return service.TaskItem{}, f.CreateErr
	}
	return f.Insert(service.TaskItem{
		Title:     title,
		Completed: false,
		CreatedAt: service.Today(f.Now()),
	}), nil
}

// Update implements service.Service. Set fields of patch are merged into the
// stored item and the full item is returned.
func (f *FakeService) Update(ctx context.Context, id string, patch service.TaskPatch) (service.TaskItem, error) {
	f.count(OpUpdate)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = patch

	if f.UpdateErr != nil {
		return service.TaskItem{}, f.UpdateErr
	}

	for i, item := range f.items {
		if item.ID != id {
			continue
		}
		if patch.Title != nil {
			item.Title = *patch.Title
		}
		if patch.Completed != nil {
			item.Completed = *patch.Completed
		}
		if patch.CreatedAt != nil {
			item.CreatedAt = *patch.CreatedAt
		}
		f.items[i] = item
		return item, nil
	}
	return service.TaskItem{}, ErrNotFound
}

// Delete implements service.Service.
func (f *FakeService) Delete(ctx context.Context, id string) error {
	f.count(OpDelete)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
