package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// firstRowY is the screen line of the first data row: title, top border,
// header, header separator.
const firstRowY = 4

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.selected = nil
		return tea.Quit
	case key.Matches(msg, m.keys.Open):
		return m.open()
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.First):
		m.jump(0)
	case key.Matches(msg, m.keys.Last):
		m.jump(m.data.visibleLen() - 1)
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	default:
		return m.updateSearch(msg)
	}
	return nil
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.move(1)
	case tea.MouseButtonWheelUp:
		m.move(-1)
	case tea.MouseButtonLeft:
		// wrapped table lines no longer line up with firstRowY
		if m.width > 0 && m.columns(m.width).total() > m.width {
			return nil
		}
		rel := msg.Y - firstRowY
		if rel < 0 || rel >= m.tableHeight() {
			return nil
		}
		idx := m.offset + rel
		if idx >= m.data.visibleLen() {
			return nil
		}
		if idx == m.cursor && idx == m.lastClicked {
			return m.open()
		}
		m.cursor = idx
		m.lastClicked = idx
	}
	return nil
}

// move steps the cursor by delta, wrapping at both ends.
func (m *model) move(delta int) {
	m.lastClicked = -1
	n := m.data.visibleLen()
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m *model) jump(idx int) {
	m.lastClicked = -1
	if m.data.visibleLen() == 0 {
		return
	}
	m.cursor = idx
}

func (m *model) open() tea.Cmd {
	row, ok := m.current()
	if !ok {
		return nil
	}
	id := row.id
	m.selected = &id
	return tea.Quit
}

func (m *model) deleteSelected() {
	m.lastClicked = -1
	row, ok := m.current()
	if !ok {
		return
	}
	if _, ok := m.store.Delete(row.id); !ok {
		m.resync()
		return
	}
	if !m.data.removeRow(row.id) {
		m.resync()
		return
	}
	m.clampCursor()
	m.notice = &notice{message: "removed " + row.record.WorkspaceName, kind: noticeSuccess}
}

func (m *model) copySelected() {
	row, ok := m.current()
	if !ok {
		return
	}
	if err := m.copyFn(row.record.WorkspacePath); err != nil {
		m.notice = &notice{message: "copy failed: " + err.Error(), kind: noticeError}
		return
	}
	m.notice = &notice{message: "copied " + row.record.WorkspacePath, kind: noticeInfo}
}

// updateSearch feeds msg to the search input and refilters when the query
// changed, keeping the cursor on the same entry if it is still visible.
func (m *model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	m.lastClicked = -1
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return cmd
	}

	prev, hadPrev := m.current()
	m.applyQuery()
	m.cursor = 0
	if hadPrev {
		if idx := m.data.indexOf(prev.id); idx >= 0 {
			m.cursor = idx
		}
	}
	return cmd
}
