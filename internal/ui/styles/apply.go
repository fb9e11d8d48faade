package styles

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid an import cycle.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme layers the preset and the color overrides over the default
// preset and rebuilds every style.
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for k, v := range cfg.Colors {
		token := ColorToken(k)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", k)
		}
		if !isValidHexColor(v) {
			return fmt.Errorf("invalid hex color for %s: %s", k, v)
		}
		colors[token] = v
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

func applyColors(colors map[ColorToken]string) {
	targets := map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:   &TextPrimaryColor,
		TokenTextSecondary: &TextSecondaryColor,
		TokenTextMuted:     &TextMutedColor,
		TokenBorderDefault: &BorderDefaultColor,
		TokenBorderFocus:   &BorderFocusColor,
		TokenHeaderText:    &HeaderTextColor,
		TokenHeaderBg:      &HeaderBgColor,
		TokenSelectionBg:   &SelectionBgColor,
		TokenSelectionFg:   &SelectionFgColor,
		TokenFocusCell:     &FocusCellColor,
		TokenEditingBg:     &EditingBgColor,
		TokenStripeBg:      &StripeBgColor,
		TokenStatusSuccess: &StatusSuccessColor,
		TokenStatusWarning: &StatusWarningColor,
		TokenStatusError:   &StatusErrorColor,
		TokenStatusInfo:    &StatusInfoColor,
		TokenOverlayTitle:  &OverlayTitleColor,
		TokenOverlayBorder: &OverlayBorderColor,
	}
	for token, hex := range colors {
		if dst, ok := targets[token]; ok {
			*dst = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

func isValidToken(token ColorToken) bool {
	for _, t := range AllTokens {
		if t == token {
			return true
		}
	}
	return false
}

func isValidHexColor(s string) bool {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 3 && len(hex) != 6) {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}
