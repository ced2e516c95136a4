// Package todo holds the client-side list state and keeps it in sync with
// the remote store.
//
// Every mutation follows the same shape: validate locally, call the store,
// and patch the mirror from the response only when the call succeeds.
package todo

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"todolist/internal/logging"
	"todolist/internal/service"
)

// NotificationDuration is how long the completion banner stays up.
const NotificationDuration = 3 * time.Second

// ErrNotEditing is returned by SaveEdit when no item is in edit mode.
var ErrNotEditing = errors.New("no item is being edited")

// State is the controller's exclusively-owned UI state.
type State struct {
	Items         []service.TaskItem // mirror of the store, in store order
	Busy          bool               // a store call is in flight
	EditID        string             // item in edit mode, empty when none
	EditDraft     string
	Input         string // pending title for a new item
	InputError    string
	ShowCompleted bool
	Page          int
	NotifyUntil   time.Time
}

// NewState returns the state before the first load: busy, first page,
// completed items shown.
func NewState() State {
	return State{
		Busy:          true,
		ShowCompleted: true,
		Page:          1,
	}
}

// Controller applies user actions to a State and the store.
// It is not safe for concurrent use.
type Controller struct {
	svc    service.Service
	state  State
	logger *slog.Logger
	now    func() time.Time
	onBusy func(bool)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger failed store calls are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithBusyHook registers fn to be called whenever the busy flag changes.
func WithBusyHook(fn func(busy bool)) Option {
	return func(c *Controller) {
		c.onBusy = fn
	}
}

// NewController creates a controller over svc with a fresh State.
func NewController(svc service.Service, opts ...Option) *Controller {
	c := &Controller{
		svc:    svc,
		state:  NewState(),
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.state
	s.Items = make([]service.TaskItem, len(c.state.Items))
	copy(s.Items, c.state.Items)
	return s
}

// View returns the current page.
func (c *Controller) View() PageView {
	return Paginate(c.state.Items, c.state.Page, PageSize, c.state.ShowCompleted)
}

// ItemAt returns the item at 1-based mirror position num.
func (c *Controller) ItemAt(num int) (service.TaskItem, error) {
	if num < 1 || num > len(c.state.Items) {
		return service.TaskItem{}, ErrUnknownItem
	}
	return c.state.Items[num-1], nil
}

// Load replaces the mirror with the store's collection. The busy flag is
// cleared whatever the outcome.
func (c *Controller) Load(ctx context.Context) error {
	c.setBusy(true)
	defer c.setBusy(false)

	items, err := c.svc.ListAll(ctx)
	if err != nil {
		c.logger.Error("fetch_todos_failed", slog.String("error", err.Error()))
		return &RemoteError{Op: "list", Err: err}
	}

	c.state.Items = items
	c.clampPage()
	return nil
}

// SetInput updates the pending title and clears any inline error.
func (c *Controller) SetInput(text string) {
	c.state.Input = text
	c.state.InputError = ""
}

// Submit adds the pending title.
func (c *Controller) Submit(ctx context.Context) error {
	return c.Add(ctx, c.state.Input)
}

// Add creates an item. A blank title sets the inline error and makes no
// store call. A failed create also surfaces inline.
func (c *Controller) Add(ctx context.Context, title string) error {
	if strings.TrimSpace(title) == "" {
		c.state.InputError = MsgInvalidTitle
		return &ValidationError{Field: "title", Message: MsgInvalidTitle}
	}

	c.setBusy(true)
	defer c.setBusy(false)

	item, err := c.svc.Create(ctx, title)
	if err != nil {
		c.logger.Error("add_todo_failed", slog.String("error", err.Error()))
		c.state.InputError = MsgCreateFailed
		return &RemoteError{Op: "create", Err: err}
	}

	c.state.Items = append(c.state.Items, item)
	c.state.Input = ""
	c.state.InputError = ""
	return nil
}

// Remove deletes an item and drops it from the mirror.
func (c *Controller) Remove(ctx context.Context, id string) error {
	c.setBusy(true)
	defer c.setBusy(false)

	if err := c.svc.Delete(ctx, id); err != nil {
		c.logger.Error("delete_todo_failed", slog.String("id", id), slog.String("error", err.Error()))
		return &RemoteError{Op: "delete", Err: err}
	}

	c.state.Items = withoutItem(c.state.Items, id)
	if c.state.EditID == id {
		c.CancelEdit()
	}
	c.clampPage()
	return nil
}

// Toggle flips an item's completion. The full item is sent and the response
// replaces the mirrored copy in place.
func (c *Controller) Toggle(ctx context.Context, id string) error {
	idx := indexOf(c.state.Items, id)
	if idx < 0 {
		return ErrUnknownItem
	}
	item := c.state.Items[idx]
	item.Completed = !item.Completed

	c.setBusy(true)
	defer c.setBusy(false)

	updated, err := c.svc.Update(ctx, id, service.FullPatch(item))
	if err != nil {
		c.logger.Error("update_completion_failed", slog.String("id", id), slog.String("error", err.Error()))
		return &RemoteError{Op: "update", Err: err}
	}

	c.state.Items = replaceItem(c.state.Items, id, updated)
	c.state.NotifyUntil = c.now().Add(NotificationDuration)
	return nil
}

// BeginEdit puts one item in edit mode with currentTitle as the draft.
// Any other item leaves edit mode.
func (c *Controller) BeginEdit(id, currentTitle string) {
	c.state.EditID = id
	c.state.EditDraft = currentTitle
}

// SetDraft updates the draft title of the item in edit mode.
func (c *Controller) SetDraft(text string) {
	c.state.EditDraft = text
}

// CancelEdit leaves edit mode without a store call.
func (c *Controller) CancelEdit() {
	c.state.EditID = ""
	c.state.EditDraft = ""
}

// CommitEdit sends the draft title and merges only the returned title into
// the mirror. On failure the item stays in edit mode.
func (c *Controller) CommitEdit(ctx context.Context, id, draft string) error {
	c.setBusy(true)
	defer c.setBusy(false)

	updated, err := c.svc.Update(ctx, id, service.TitlePatch(draft))
	if err != nil {
		c.logger.Error("save_edit_failed", slog.String("id", id), slog.String("error", err.Error()))
		return &RemoteError{Op: "update", Err: err}
	}

	c.state.Items = mergeTitle(c.state.Items, id, updated.Title)
	c.CancelEdit()
	return nil
}

// SaveEdit commits the current draft.
func (c *Controller) SaveEdit(ctx context.Context) error {
	if c.state.EditID == "" {
		return ErrNotEditing
	}
	return c.CommitEdit(ctx, c.state.EditID, c.state.EditDraft)
}

// SetPage jumps to page, clamped to the available pages.
func (c *Controller) SetPage(page int) {
	c.state.Page = ClampPage(page, TotalPages(len(c.state.Items), PageSize))
}

// NextPage moves forward one page; a no-op on the last page.
func (c *Controller) NextPage() {
	if c.state.Page < TotalPages(len(c.state.Items), PageSize) {
		c.state.Page++
	}
}

// PrevPage moves back one page; a no-op on the first page.
func (c *Controller) PrevPage() {
	if c.state.Page > 1 {
		c.state.Page--
	}
}

// SetShowCompleted sets whether completed items are rendered.
func (c *Controller) SetShowCompleted(show bool) {
	c.state.ShowCompleted = show
}

// ToggleShowCompleted flips the completed-items filter.
func (c *Controller) ToggleShowCompleted() {
	c.state.ShowCompleted = !c.state.ShowCompleted
}

// Notification returns the banner text while it is active.
func (c *Controller) Notification() (string, bool) {
	if c.now().Before(c.state.NotifyUntil) {
		return MsgCompleted, true
	}
	return "", false
}

func (c *Controller) setBusy(busy bool) {
	c.state.Busy = busy
	if c.onBusy != nil {
		c.onBusy(busy)
	}
}

func (c *Controller) clampPage() {
	c.state.Page = ClampPage(c.state.Page, TotalPages(len(c.state.Items), PageSize))
}

func indexOf(items []service.TaskItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func withoutItem(items []service.TaskItem, id string) []service.TaskItem {
	result := make([]service.TaskItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			result = append(result, item)
		}
	}
	return result
}

func replaceItem(items []service.TaskItem, id string, updated service.TaskItem) []service.TaskItem {
	result := make([]service.TaskItem, len(items))
	for i, item := range items {
		if item.ID == id {
			item = updated
		}
		result[i] = item
	}
	return result
}

func mergeTitle(items []service.TaskItem, id, title string) []service.TaskItem {
	result := make([]service.TaskItem, len(items))
	for i, item := range items {
		if item.ID == id {
			item.Title = title
		}
		result[i] = item
	}
	return result
}
