package tui

import (
	"iter"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/nicobailon/vslaunch/internal/history"
	"github.com/sahilm/fuzzy"
)

const lastOpenedLayout = "2006-01-02 15:04:05"

var tableHeaders = []string{"Workspace", "Dev Container", "Path", "Last Opened"}

// tableRow is one history entry as displayed in the selector.
type tableRow struct {
	id     history.ID
	record history.Record
	cells  []string
	// score is the fuzzy relevance; matched=false hides the row.
	score   int
	matched bool
	// order is the row's position by recency when the table was built.
	order int
}

// tableData holds every row of the selector whether it is filtered out or
// not. Rows that match the current filter always come first.
type tableData struct {
	rows []tableRow

	// Widest names seen when the table was built. Not shrunk on delete.
	maxNameWidth      int
	maxContainerWidth int
}

func newTableData(entries []history.Entry) tableData {
	t := tableData{rows: make([]tableRow, 0, len(entries))}
	for _, e := range entries {
		t.rows = append(t.rows, newTableRow(e))
	}
	t.sortByRecency()
	for i := range t.rows {
		t.rows[i].order = i
		t.maxNameWidth = max(t.maxNameWidth, runewidth.StringWidth(t.rows[i].cells[0]))
		t.maxContainerWidth = max(t.maxContainerWidth, runewidth.StringWidth(t.rows[i].cells[1]))
	}
	return t
}

func newTableRow(e history.Entry) tableRow {
	container := ""
	if e.Record.ContainerName != nil {
		container = *e.Record.ContainerName
	}
	return tableRow{
		id:     e.ID,
		record: e.Record,
		cells: []string{
			e.Record.WorkspaceName,
			container,
			e.Record.WorkspacePath,
			e.Record.LastOpened.In(time.Local).Format(lastOpenedLayout),
		},
		matched: true,
	}
}

func (t *tableData) sortByRecency() {
	sort.SliceStable(t.rows, func(i, j int) bool {
		a, b := t.rows[i], t.rows[j]
		if !a.record.LastOpened.Equal(b.record.LastOpened) {
			return a.record.LastOpened.After(b.record.LastOpened)
		}
		return a.id < b.id
	})
}

// applyFilter scores every row against query and re-sorts best match first.
// Whitespace separates terms and a row must match all of them. It reports
// whether any row's visibility or score changed.
func (t *tableData) applyFilter(query string) bool {
	terms := strings.Fields(query)
	changed := false
	for i := range t.rows {
		row := &t.rows[i]
		score, matched := 0, true
		if len(terms) > 0 {
			score, matched = rowScore(terms, row)
		}
		if score != row.score || matched != row.matched {
			changed = true
		}
		row.score, row.matched = score, matched
	}

	sort.SliceStable(t.rows, func(i, j int) bool {
		a, b := t.rows[i], t.rows[j]
		if a.matched != b.matched {
			return a.matched
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.order < b.order
	})
	return changed
}

// resetFilter makes every row visible again in recency order.
func (t *tableData) resetFilter() {
	for i := range t.rows {
		t.rows[i].score = 0
		t.rows[i].matched = true
	}
	t.sortByRecency()
}

// rowScore sums the scores of every field each term matches. A term that
// matches no field leaves the row unmatched.
func rowScore(terms []string, row *tableRow) (int, bool) {
	fields := []string{row.cells[0], row.cells[1], row.record.WorkspacePath}
	total := 0
	for _, term := range terms {
		found := false
		for _, field := range fields {
			if s, ok := fieldScore(term, field); ok {
				total += s
				found = true
			}
		}
		if !found {
			return 0, false
		}
	}
	return total, true
}

func fieldScore(query, field string) (int, bool) {
	if field == "" {
		return 0, false
	}
	matches := fuzzy.Find(query, []string{field})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

func (t *tableData) visibleRows() iter.Seq[tableRow] {
	return func(yield func(tableRow) bool) {
		for _, row := range t.rows {
			if !row.matched {
				continue
			}
			if !yield(row) {
				return
			}
		}
	}
}

func (t *tableData) visibleLen() int {
	n := 0
	for range t.visibleRows() {
		n++
	}
	return n
}

// rowAt returns the i-th visible row.
func (t *tableData) rowAt(i int) (tableRow, bool) {
	if i < 0 {
		return tableRow{}, false
	}
	n := 0
	for row := range t.visibleRows() {
		if n == i {
			return row, true
		}
		n++
	}
	return tableRow{}, false
}

// indexOf returns the position of id among the visible rows, or -1.
func (t *tableData) indexOf(id history.ID) int {
	n := 0
	for row := range t.visibleRows() {
		if row.id == id {
			return n
		}
		n++
	}
	return -1
}

func (t *tableData) removeRow(id history.ID) bool {
	for i, row := range t.rows {
		if row.id == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return true
		}
	}
	return false
}
