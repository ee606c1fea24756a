package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/nicobailon/vslaunch/internal/tui/theme"
)

const (
	defaultWidth    = 100
	minNameWidth    = 9
	minContainer    = 13
	maxColumnWidth  = 60
	timeColumnWidth = 19
	minPathWidth    = 10
	minShrunkWidth  = 4
	// four columns: five vertical borders plus one cell of padding each side
	tableChrome = 5 + 4*2
)

func (m model) View() string {
	width := m.width
	if width == 0 {
		width = defaultWidth
	}

	var b strings.Builder
	// a wrapped title would shift the rows away from firstRowY
	b.WriteString(ansi.Truncate(m.renderTitle(), width, "…"))
	b.WriteString("\n")
	b.WriteString(m.renderTable(width))
	b.WriteString("\n")
	b.WriteString(theme.SearchFrameStyle.Width(max(width-4, 20)).Render(m.search.View()))
	if !m.hideInstructions {
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
		b.WriteString(theme.DimStyle.Render(" • type to filter"))
	}
	if !m.hideInfo {
		b.WriteString("\n")
		b.WriteString(m.renderInfo())
	}
	return b.String()
}

func (m model) renderTitle() string {
	parts := []string{
		theme.Logo,
		theme.DimStyle.Render(fmt.Sprintf("%d/%d", m.data.visibleLen(), len(m.data.rows))),
	}
	if m.notice != nil {
		parts = append(parts, m.notice.render(m.styles))
	}
	return strings.Join(parts, "  ")
}

type columnWidths struct {
	name, container, path int
}

// total is the rendered width of the table including borders and padding.
func (c columnWidths) total() int {
	return tableChrome + c.name + c.container + c.path + timeColumnWidth
}

// columns sizes the table to width. When space is short the container and
// then the name column give way before the path drops below its minimum.
func (m model) columns(width int) columnWidths {
	c := columnWidths{
		// room for the selection marker
		name:      clamp(m.data.maxNameWidth, minNameWidth, maxColumnWidth) + 2,
		container: clamp(m.data.maxContainerWidth, minContainer, maxColumnWidth),
	}
	avail := width - tableChrome - timeColumnWidth
	if short := minPathWidth - (avail - c.name - c.container); short > 0 {
		cut := min(short, c.container-minShrunkWidth)
		c.container -= cut
		short -= cut
		c.name -= min(short, c.name-minShrunkWidth-2)
	}
	c.path = max(avail-c.name-c.container, minPathWidth)
	return c
}

func (m model) renderTable(width int) string {
	cols := m.columns(width)
	h := m.tableHeight()

	var rows [][]string
	n := 0
	for row := range m.data.visibleRows() {
		if n >= m.offset+h {
			break
		}
		if n >= m.offset {
			marker := "  "
			if n == m.cursor {
				marker = theme.IconSelected + " "
			}
			rows = append(rows, []string{
				fit(marker+row.cells[0], cols.name),
				fit(row.cells[1], cols.container),
				fitLeft(row.cells[2], cols.path),
				fit(row.cells[3], timeColumnWidth),
			})
		}
		n++
	}

	selected := m.cursor - m.offset
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(theme.TableBorderStyle).
		Headers(
			fit(tableHeaders[0], cols.name),
			fit(tableHeaders[1], cols.container),
			fit(tableHeaders[2], cols.path),
			fit(tableHeaders[3], timeColumnWidth),
		).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.HeaderStyle
			case row == selected:
				return theme.SelectedCellStyle
			}
			return theme.CellStyle
		}).
		Render()
}

func (m model) renderInfo() string {
	row, ok := m.current()
	if !ok {
		return theme.DimStyle.Render("No workspace selected") + "\n"
	}
	r := row.record

	args := "none"
	if len(r.Options.Args) > 0 {
		args = strings.Join(r.Options.Args, ", ")
	}
	first := strings.Join([]string{
		label("Strategy", r.Options.Strategy.String()),
		label("Command", r.Options.Command),
		label(fmt.Sprintf("Args (%d)", len(r.Options.Args)), args),
	}, theme.DimStyle.Render(" • "))

	container := "none"
	if r.ContainerConfigPath != nil {
		container = *r.ContainerConfigPath
	}
	second := label("Dev Container", container) +
		theme.DimStyle.Render(" • opened "+humanize.RelTime(r.LastOpened, m.now(), "ago", "from now"))
	return first + "\n" + second
}

func label(name, value string) string {
	return theme.SubTextStyle.Render(name+": ") + theme.TextStyle.Render(value)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// fit truncates s on the right and pads it to exactly w cells.
func fit(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// fitLeft keeps the end of s, which for paths is the informative part.
func fitLeft(s string, w int) string {
	if runewidth.StringWidth(s) <= w {
		return runewidth.FillRight(s, w)
	}
	runes := []rune(s)
	used := 1
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if used+rw > w {
			break
		}
		used += rw
		i--
	}
	return runewidth.FillRight("…"+string(runes[i:]), w)
}
