package theme

import "github.com/charmbracelet/lipgloss"

var (
	BaseBg       = lipgloss.Color("#11111b")
	SurfaceBg    = lipgloss.Color("#313244")
	Accent       = lipgloss.Color("#cba6f7")
	Accent2      = lipgloss.Color("#89b4fa")
	Teal         = lipgloss.Color("#94e2d5")
	SuccessColor = lipgloss.Color("#a6e3a1")
	WarnColor    = lipgloss.Color("#f9e2af")
	ErrorColor   = lipgloss.Color("#f38ba8")
	TextColor    = lipgloss.Color("#cdd6f4")
	SubTextColor = lipgloss.Color("#a6adc8")
	DimColor     = lipgloss.Color("#6c7086")
	OverlayColor = lipgloss.Color("#45475a")
	Flamingo     = lipgloss.Color("#f5c2e7")
)

const (
	IconWorkspace = "▲"
	IconSelected  = "▸"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Accent2).
			Bold(true).
			Padding(0, 1)
	CellStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1)
	SelectedCellStyle = lipgloss.NewStyle().
				Background(SurfaceBg).
				Foreground(Teal).
				Bold(true).
				Padding(0, 1)
	TableBorderStyle = lipgloss.NewStyle().
				Foreground(OverlayColor)
	SearchFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Accent2).
				Padding(0, 1)
	TextStyle = lipgloss.NewStyle().
			Foreground(TextColor)
	SubTextStyle = lipgloss.NewStyle().
			Foreground(SubTextColor)
	DimStyle = lipgloss.NewStyle().
			Foreground(DimColor)
	KeyStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)
	WarnStyle = lipgloss.NewStyle().
			Foreground(WarnColor)
	PanelStyle = lipgloss.NewStyle().
			Padding(0, 2)
)

var Logo = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true).Render(IconWorkspace+" ") +
	lipgloss.NewStyle().Foreground(Flamingo).Bold(true).Render("vs") +
	lipgloss.NewStyle().Foreground(Accent).Bold(true).Render("lau") +
	lipgloss.NewStyle().Foreground(Accent2).Bold(true).Render("nch")
