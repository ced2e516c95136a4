package service

import (
	"time"

	"cloud.google.com/go/civil"
)

// TaskItem represents a single to-do entry.
type TaskItem struct {
	ID        string // empty until the store has created the item
	Title     string
	Completed bool
	CreatedAt civil.Date
}

// TaskPatch carries the fields of an update. Nil fields are not sent.
type TaskPatch struct {
	Title     *string
	Completed *bool
	CreatedAt *civil.Date
}

// FullPatch returns a patch carrying every field of item.
func FullPatch(item TaskItem) TaskPatch {
	title := item.Title
	completed := item.Completed
	createdAt := item.CreatedAt
	return TaskPatch{Title: &title, Completed: &completed, CreatedAt: &createdAt}
}

// TitlePatch returns a patch that only changes the title.
func TitlePatch(title string) TaskPatch {
	return TaskPatch{Title: &title}
}

// Today returns the creation date stamped on new items: the UTC calendar
// date of now.
func Today(now time.Time) civil.Date {
	return civil.DateOf(now.UTC())
}
