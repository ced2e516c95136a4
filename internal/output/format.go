// Package output renders the to-do page for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"todolist/internal/metrics"
	"todolist/internal/todo"
)

const (
	// Heading is the page title.
	Heading = "To-Do List"

	// ListSeparator frames the item rows.
	ListSeparator = "------------"

	// InvalidDate is printed for items without a usable creation date.
	InvalidDate = "Invalid Date"

	// LoadingLine is printed while a store call is in flight.
	LoadingLine = "Loading..."
)

// Page is one frame of the to-do page.
type Page struct {
	View          todo.PageView
	ShowCompleted bool
	InputError    string
	EditID        string
	EditDraft     string
	Busy          bool
	Notice        string // empty when no banner is active
	DateLayout    string
}

// PageFrom assembles a frame from the controller.
func PageFrom(c *todo.Controller, dateLayout string) Page {
	s := c.State()
	notice, _ := c.Notification()
	return Page{
		View:          c.View(),
		ShowCompleted: s.ShowCompleted,
		InputError:    s.InputError,
		EditID:        s.EditID,
		EditDraft:     s.EditDraft,
		Busy:          s.Busy,
		Notice:        notice,
		DateLayout:    dateLayout,
	}
}

// RenderPage writes the whole page: heading, banners, filter, rows and
// pagination footer.
func RenderPage(w io.Writer, p Page) {
	fmt.Fprintln(w, Heading)
	if p.Busy {
		fmt.Fprintln(w, LoadingLine)
	}
	if p.Notice != "" {
		fmt.Fprintf(w, "** %s **\n", p.Notice)
	}
	if p.InputError != "" {
		fmt.Fprintf(w, "! %s\n", p.InputError)
	}
	FormatFilter(w, p.ShowCompleted)

	fmt.Fprintln(w, ListSeparator)
	if len(p.View.Rows) == 0 {
		fmt.Fprintln(w, "  (nothing to show)")
	}
	for _, row := range p.View.Rows {
		editing := p.EditID != "" && row.Item.ID == p.EditID
		FormatRow(w, row, p.DateLayout, editing, p.EditDraft)
	}
	fmt.Fprintln(w, ListSeparator)
	FormatFooter(w, p.View)
}

// FormatFilter formats the completed-items checkbox line.
func FormatFilter(w io.Writer, showCompleted bool) {
	fmt.Fprintf(w, "%s Show Completed Tasks\n", checkbox(showCompleted))
}

// FormatRow formats one item line.
// Format: "{N:>4}  [x]  {TITLE}  {DATE}" plus "  (editing: {DRAFT})" when editing.
func FormatRow(w io.Writer, row todo.Row, dateLayout string, editing bool, draft string) {
	line := fmt.Sprintf("%4d  %s  %s  %s",
		row.Num, checkbox(row.Item.Completed), normalizeTitle(row.Item.Title), FormatDate(row.Item.CreatedAt, dateLayout))
	if editing {
		line += fmt.Sprintf("  (editing: %s)", normalizeTitle(draft))
	}
	fmt.Fprintln(w, line)
}

// FormatFooter formats the pagination controls. A disabled control is
// shown as "-".
func FormatFooter(w io.Writer, view todo.PageView) {
	prev, next := "-", "-"
	if view.HasPrev {
		prev = "< Previous"
	}
	if view.HasNext {
		next = "Next >"
	}
	fmt.Fprintf(w, "%s   Page %d of %d   %s\n", prev, view.Page, view.TotalPages, next)
}

// FormatDate renders a creation date with layout. The zero date renders as
// InvalidDate.
func FormatDate(d civil.Date, layout string) string {
	if !d.IsValid() {
		return InvalidDate
	}
	return d.In(time.UTC).Format(layout)
}

// FormatStats formats store-call counters, one per line.
func FormatStats(w io.Writer, counts []metrics.Count) {
	if len(counts) == 0 {
		fmt.Fprintln(w, "no store calls yet")
		return
	}
	for _, c := range counts {
		fmt.Fprintf(w, "%-8s %-6s %d\n", c.Op, c.Outcome, int(c.Value))
	}
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
