package mockapi

import (
	"bytes"
	"encoding/json"

	"cloud.google.com/go/civil"

	"todolist/internal/service"
)

// wireItem is the JSON shape of an item in the collection.
type wireItem struct {
	ID        wireID `json:"id,omitempty"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// wirePatch is the JSON body of an update. Only set fields are sent.
type wirePatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	CreatedAt *string `json:"createdAt,omitempty"`
}

// wireID accepts both string and numeric ids.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = wireID(n.String())
	return nil
}

func (w wireItem) toTaskItem() service.TaskItem {
	return service.TaskItem{
		ID:        string(w.ID),
		Title:     w.Title,
		Completed: w.Completed,
		CreatedAt: parseDate(w.CreatedAt),
	}
}

func toWirePatch(p service.TaskPatch) wirePatch {
	w := wirePatch{
		Title:     p.Title,
		Completed: p.Completed,
	}
	if p.CreatedAt != nil && p.CreatedAt.IsValid() {
		s := p.CreatedAt.String()
		w.CreatedAt = &s
	}
	return w
}

// parseDate reads the leading YYYY-MM-DD of s. Anything else yields the zero
// date so a single odd record does not fail the whole list.
func parseDate(s string) civil.Date {
	if len(s) < 10 {
		return civil.Date{}
	}
	d, err := civil.ParseDate(s[:10])
	if err != nil {
		return civil.Date{}
	}
	return d
}
