package todo

import (
	"fmt"
	"testing"

	"todolist/internal/service"
)

func makeItems(n int, completed func(i int) bool) []service.TaskItem {
	items := make([]service.TaskItem, n)
	for i := range items {
		items[i] = service.TaskItem{ID: fmt.Sprint(i + 1), Title: fmt.Sprintf("Task %d", i+1), Completed: completed(i + 1)}
	}
	return items
}

func none(int) bool { return false }

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, total, want int
	}{
		{1, 0, 1},
		{0, 3, 1},
		{-2, 3, 1},
		{2, 3, 2},
		{5, 3, 3},
	}
	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.total); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	view := Paginate(nil, 1, PageSize, true)
	if view.Page != 1 || view.TotalPages != 0 || len(view.Rows) != 0 {
		t.Errorf("unexpected empty view: %+v", view)
	}
	if view.HasPrev || view.HasNext {
		t.Errorf("expected both controls disabled, got %+v", view)
	}
}

func TestPaginate_LastPartialPage(t *testing.T) {
	view := Paginate(makeItems(12, none), 3, PageSize, true)
	if len(view.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(view.Rows))
	}
	if view.Rows[0].Num != 11 || view.Rows[1].Num != 12 {
		t.Errorf("unexpected rows: %+v", view.Rows)
	}
	if view.Rows[1].Item.ID != "12" {
		t.Errorf("row item mismatch: %+v", view.Rows[1])
	}
}

func TestPaginate_ClampsOutOfRangePage(t *testing.T) {
	view := Paginate(makeItems(6, none), 9, PageSize, true)
	if view.Page != 2 {
		t.Errorf("expected page clamped to 2, got %d", view.Page)
	}
}

func TestPaginate_FilterAfterSlice(t *testing.T) {
	// Every item on page 1 is completed; page 2 still has open items.
	items := makeItems(7, func(i int) bool { return i <= 5 })
	view := Paginate(items, 1, PageSize, false)
	if len(view.Rows) != 0 {
		t.Errorf("expected an empty first page, got %+v", view.Rows)
	}
	if view.TotalPages != 2 || !view.HasNext {
		t.Errorf("expected next page available, got %+v", view)
	}
}
