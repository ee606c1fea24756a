package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nicobailon/vslaunch/internal/history"
	"github.com/nicobailon/vslaunch/internal/tui/theme"
)

// Options toggles the optional panels below the table.
type Options struct {
	HideInstructions bool
	HideInfo         bool
}

// App runs the recent-workspace selector over a history store. Deletions
// are applied to the store directly; saving is left to the caller.
type App struct {
	store *history.Store
	opts  Options
}

func New(store *history.Store, opts Options) *App {
	return &App{store: store, opts: opts}
}

// Run blocks until the user quits or opens an entry. A nil entry means
// nothing was selected.
func (a *App) Run() (*history.Entry, error) {
	p := tea.NewProgram(newModel(a.store, a.opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run selector: %w", err)
	}
	m, ok := final.(model)
	if !ok || m.selected == nil {
		return nil, nil
	}
	rec, ok := a.store.Get(*m.selected)
	if !ok {
		return nil, nil
	}
	return &history.Entry{ID: *m.selected, Record: rec}, nil
}

type model struct {
	store  *history.Store
	data   tableData
	search textinput.Model
	keys   keyMap
	help   help.Model

	// cursor indexes the visible rows; offset is the first visible row drawn.
	cursor int
	offset int
	// lastClicked is the visible row of the previous left click, or -1.
	lastClicked int
	selected    *history.ID

	hideInstructions bool
	hideInfo         bool

	width  int
	height int

	notice *notice
	styles noticeStyles
	copyFn func(string) error
	now    func() time.Time
}

func newModel(store *history.Store, opts Options) model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "type to filter"
	ti.PromptStyle = theme.KeyStyle
	ti.TextStyle = theme.TextStyle
	ti.PlaceholderStyle = theme.DimStyle
	ti.KeyMap.Paste.SetEnabled(false)
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	h := help.New()
	h.Styles.ShortKey = theme.KeyStyle
	h.Styles.ShortDesc = theme.SubTextStyle
	h.Styles.ShortSeparator = theme.DimStyle

	m := model{
		store:            store,
		data:             newTableData(store.Entries()),
		search:           ti,
		keys:             defaultKeyMap(),
		help:             h,
		lastClicked:      -1,
		hideInstructions: opts.HideInstructions,
		hideInfo:         opts.HideInfo,
		styles:           defaultNoticeStyles(),
		copyFn:           clipboard.WriteAll,
		now:              time.Now,
	}
	if q := store.Quarantined(); q != "" {
		m.notice = &notice{message: "history was unreadable, moved to " + q, kind: noticeWarning}
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		m.notice = nil
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			m.notice = nil
		}
		cmd = m.handleMouse(msg)
	}
	m.clampCursor()
	m.scrollToCursor()
	return m, cmd
}

func (m *model) current() (tableRow, bool) {
	return m.data.rowAt(m.cursor)
}

func (m *model) clampCursor() {
	n := m.data.visibleLen()
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	}
}

func (m *model) scrollToCursor() {
	h := m.tableHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(0, min(m.offset, m.data.visibleLen()-h))
}

// tableHeight is the number of data rows that fit between the title line and
// the panels below the table.
func (m model) tableHeight() int {
	if m.height == 0 {
		return 10
	}
	// title, table borders and header, search box
	h := m.height - 1 - 4 - 3
	if !m.hideInstructions {
		h--
	}
	if !m.hideInfo {
		h -= 2
	}
	return max(h, 1)
}

// resync rebuilds the view from the store after it fell out of step, keeping
// the current query.
func (m *model) resync() {
	m.data = newTableData(m.store.Entries())
	m.applyQuery()
	m.cursor = 0
	m.offset = 0
	m.lastClicked = -1
}

func (m *model) applyQuery() {
	if q := m.search.Value(); q != "" {
		m.data.applyFilter(q)
		return
	}
	m.data.resetFilter()
}
