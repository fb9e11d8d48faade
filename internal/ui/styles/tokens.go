// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken is a named, themeable color.
type ColorToken string

// Tokens users can override under theme.colors.
const (
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	TokenHeaderText  ColorToken = "header.text"
	TokenHeaderBg    ColorToken = "header.bg"
	TokenSelectionBg ColorToken = "selection.bg"
	TokenSelectionFg ColorToken = "selection.fg"
	TokenFocusCell   ColorToken = "cell.focus"
	TokenEditingBg   ColorToken = "cell.editing.bg"
	TokenStripeBg    ColorToken = "row.stripe.bg"

	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"
	TokenStatusInfo    ColorToken = "status.info"

	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"
)

// AllTokens lists every token in display order.
var AllTokens = []ColorToken{
	TokenTextPrimary, TokenTextSecondary, TokenTextMuted,
	TokenBorderDefault, TokenBorderFocus,
	TokenHeaderText, TokenHeaderBg, TokenSelectionBg, TokenSelectionFg,
	TokenFocusCell, TokenEditingBg, TokenStripeBg,
	TokenStatusSuccess, TokenStatusWarning, TokenStatusError, TokenStatusInfo,
	TokenOverlayTitle, TokenOverlayBorder,
}
