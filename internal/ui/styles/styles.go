package styles

import "github.com/charmbracelet/lipgloss"

var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	HeaderTextColor  = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	HeaderBgColor    = lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#2D3436"}
	SelectionBgColor = lipgloss.AdaptiveColor{Light: "#AED6F1", Dark: "#1A5276"}
	SelectionFgColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	FocusCellColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}
	EditingBgColor   = lipgloss.AdaptiveColor{Light: "#F0F0F0", Dark: "#3B3B3B"}
	StripeBgColor    = lipgloss.AdaptiveColor{Light: "#F7F7F7", Dark: "#1E1E1E"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#8C8C8C"}
)

// Styles built from the colors above. rebuildStyles refreshes them after
// a theme is applied.
var (
	HeaderStyle             lipgloss.Style
	CellStyle               lipgloss.Style
	StripeCellStyle         lipgloss.Style
	SelectedCellStyle       lipgloss.Style
	FocusedCellStyle        lipgloss.Style
	EditingCellStyle        lipgloss.Style
	EmptyStateStyle         lipgloss.Style
	StatusBarStyle          lipgloss.Style
	FilterPromptStyle       lipgloss.Style
	OverlayStyle            lipgloss.Style
	OverlayTitleStyle       lipgloss.Style
	SelectionIndicatorStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(HeaderTextColor).Background(HeaderBgColor)
	CellStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	StripeCellStyle = CellStyle.Background(StripeBgColor)
	SelectedCellStyle = lipgloss.NewStyle().Foreground(SelectionFgColor).Background(SelectionBgColor)
	FocusedCellStyle = lipgloss.NewStyle().Underline(true).Foreground(FocusCellColor)
	EditingCellStyle = lipgloss.NewStyle().Background(EditingBgColor).Foreground(TextPrimaryColor)
	EmptyStateStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Padding(0, 1)
	FilterPromptStyle = lipgloss.NewStyle().Foreground(FocusCellColor).Bold(true)
	OverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(OverlayBorderColor).
		Padding(0, 1)
	OverlayTitleStyle = lipgloss.NewStyle().Foreground(OverlayTitleColor).Bold(true)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(FocusCellColor)
}
