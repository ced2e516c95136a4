package todo

import "todolist/internal/service"

// PageSize is the number of items per page.
const PageSize = 5

// Row is one rendered item. Num is the item's 1-based position in the whole
// mirror, which is how commands refer to it.
type Row struct {
	Num  int
	Item service.TaskItem
}

// PageView is the derived, render-ready view of one page.
type PageView struct {
	Page       int
	TotalPages int
	TotalItems int
	Rows       []Row
	HasPrev    bool
	HasNext    bool
}

// TotalPages returns ceil(total/size).
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage keeps page within [1, totalPages]. With no pages it returns 1.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate slices one page out of items. Completed items are hidden after
// slicing when showCompleted is false, so a page can render fewer rows than
// the page size while later pages still hold open items.
func Paginate(items []service.TaskItem, page, size int, showCompleted bool) PageView {
	total := len(items)
	totalPages := TotalPages(total, size)
	page = ClampPage(page, totalPages)

	view := PageView{
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if total == 0 {
		return view
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	for i := start; i < end; i++ {
		if !showCompleted && items[i].Completed {
			continue
		}
		view.Rows = append(view.Rows, Row{Num: i + 1, Item: items[i]})
	}
	return view
}
