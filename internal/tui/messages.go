package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nicobailon/vslaunch/internal/tui/theme"
)

type noticeKind int

const (
	noticeSuccess noticeKind = iota
	noticeError
	noticeWarning
	noticeInfo
)

// notice is a one-line status message. It stays up until the next input
// event instead of expiring on a timer.
type notice struct {
	message string
	kind    noticeKind
}

type noticeStyles struct {
	success lipgloss.Style
	error   lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
}

func defaultNoticeStyles() noticeStyles {
	return noticeStyles{
		success: theme.SuccessStyle.Bold(true),
		error:   theme.ErrorStyle,
		warning: theme.WarnStyle.Bold(true),
		info:    theme.KeyStyle,
	}
}

func (n *notice) render(styles noticeStyles) string {
	var style lipgloss.Style
	var icon string

	switch n.kind {
	case noticeSuccess:
		style = styles.success
		icon = "✓ "
	case noticeError:
		style = styles.error
		icon = "✗ "
	case noticeWarning:
		style = styles.warning
		icon = "! "
	case noticeInfo:
		style = styles.info
		icon = "· "
	}

	return style.Render(icon + n.message)
}
