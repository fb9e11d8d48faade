package styles

// Preset is a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains the built-in themes.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the gridline color scheme.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default gridline theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",
		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",
		TokenHeaderText:    "#FFFFFF",
		TokenHeaderBg:      "#2D3436",
		TokenSelectionBg:   "#1A5276",
		TokenSelectionFg:   "#FFFFFF",
		TokenFocusCell:     "#54A0FF",
		TokenEditingBg:     "#3B3B3B",
		TokenStripeBg:      "#1E1E1E",
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",
		TokenStatusInfo:    "#54A0FF",
		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha palette.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CDD6F4",
		TokenTextSecondary: "#BAC2DE",
		TokenTextMuted:     "#6C7086",
		TokenBorderDefault: "#585B70",
		TokenBorderFocus:   "#CBA6F7",
		TokenHeaderText:    "#1E1E2E",
		TokenHeaderBg:      "#CBA6F7",
		TokenSelectionBg:   "#45475A",
		TokenSelectionFg:   "#F5E0DC",
		TokenFocusCell:     "#89B4FA",
		TokenEditingBg:     "#313244",
		TokenStripeBg:      "#181825",
		TokenStatusSuccess: "#A6E3A1",
		TokenStatusWarning: "#F9E2AF",
		TokenStatusError:   "#F38BA8",
		TokenStatusInfo:    "#89B4FA",
		TokenOverlayTitle:  "#CDD6F4",
		TokenOverlayBorder: "#7F849C",
	},
}

// HighContrastPreset maximizes legibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#BBBBBB",
		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",
		TokenHeaderText:    "#000000",
		TokenHeaderBg:      "#FFFFFF",
		TokenSelectionBg:   "#FFFF00",
		TokenSelectionFg:   "#000000",
		TokenFocusCell:     "#00FFFF",
		TokenEditingBg:     "#000080",
		TokenStripeBg:      "#000000",
		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",
		TokenStatusInfo:    "#00FFFF",
		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",
	},
}
