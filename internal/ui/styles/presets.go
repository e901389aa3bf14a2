package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset follows the classic terminal palette: red numbers, magenta
// strings, cyan comments, yellow and green keywords, blue matches.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default quill theme",
	Colors: map[ColorToken]string{
		TokenSyntaxNormal:           "#CCCCCC",
		TokenSyntaxNumber:           "#FF8787",
		TokenSyntaxString:           "#F78FE7",
		TokenSyntaxComment:          "#00AFAF",
		TokenSyntaxMultilineComment: "#00AFAF",
		TokenSyntaxKeyword1:         "#FECA57",
		TokenSyntaxKeyword2:         "#73F59F",
		TokenSyntaxMatch:            "#54A0FF",

		TokenStatusFg:       "#1E1E1E",
		TokenStatusBg:       "#CCCCCC",
		TokenStatusModified: "#922B21",

		TokenMessageFg:    "#BBBBBB",
		TokenMessageError: "#FF8787",

		TokenControlFg: "#1E1E1E",
		TokenControlBg: "#CCCCCC",

		TokenHelpBorder: "#696969",
		TokenHelpTitle:  "#FFFFFF",
		TokenTextMuted:  "#696969",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha palette.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenSyntaxNormal:           "#CDD6F4", // text
		TokenSyntaxNumber:           "#FAB387", // peach
		TokenSyntaxString:           "#A6E3A1", // green
		TokenSyntaxComment:          "#6C7086", // overlay0
		TokenSyntaxMultilineComment: "#6C7086", // overlay0
		TokenSyntaxKeyword1:         "#CBA6F7", // mauve
		TokenSyntaxKeyword2:         "#F9E2AF", // yellow
		TokenSyntaxMatch:            "#89B4FA", // blue

		TokenStatusFg:       "#1E1E2E", // base
		TokenStatusBg:       "#B4BEFE", // lavender
		TokenStatusModified: "#F38BA8", // red

		TokenMessageFg:    "#A6ADC8", // subtext0
		TokenMessageError: "#F38BA8", // red

		TokenControlFg: "#1E1E2E", // base
		TokenControlBg: "#F5C2E7", // pink

		TokenHelpBorder: "#585B70", // surface2
		TokenHelpTitle:  "#89B4FA", // blue
		TokenTextMuted:  "#6C7086", // overlay0
	},
}

// DraculaPreset is the Dracula palette.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenSyntaxNormal:           "#F8F8F2", // foreground
		TokenSyntaxNumber:           "#BD93F9", // purple
		TokenSyntaxString:           "#F1FA8C", // yellow
		TokenSyntaxComment:          "#6272A4", // comment
		TokenSyntaxMultilineComment: "#6272A4", // comment
		TokenSyntaxKeyword1:         "#FF79C6", // pink
		TokenSyntaxKeyword2:         "#8BE9FD", // cyan
		TokenSyntaxMatch:            "#50FA7B", // green

		TokenStatusFg:       "#F8F8F2", // foreground
		TokenStatusBg:       "#44475A", // current line
		TokenStatusModified: "#FFB86C", // orange

		TokenMessageFg:    "#F8F8F2", // foreground
		TokenMessageError: "#FF5555", // red

		TokenControlFg: "#282A36", // background
		TokenControlBg: "#FFB86C", // orange

		TokenHelpBorder: "#6272A4", // comment
		TokenHelpTitle:  "#BD93F9", // purple
		TokenTextMuted:  "#6272A4", // comment
	},
}

// NordPreset is the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenSyntaxNormal:           "#D8DEE9", // snow storm 1
		TokenSyntaxNumber:           "#B48EAD", // aurora purple
		TokenSyntaxString:           "#A3BE8C", // aurora green
		TokenSyntaxComment:          "#616E88", // comment
		TokenSyntaxMultilineComment: "#616E88", // comment
		TokenSyntaxKeyword1:         "#81A1C1", // frost 3
		TokenSyntaxKeyword2:         "#8FBCBB", // frost 1
		TokenSyntaxMatch:            "#EBCB8B", // aurora yellow

		TokenStatusFg:       "#2E3440", // polar night 1
		TokenStatusBg:       "#88C0D0", // frost 2
		TokenStatusModified: "#BF616A", // aurora red

		TokenMessageFg:    "#E5E9F0", // snow storm 2
		TokenMessageError: "#BF616A", // aurora red

		TokenControlFg: "#2E3440", // polar night 1
		TokenControlBg: "#D08770", // aurora orange

		TokenHelpBorder: "#4C566A", // polar night 4
		TokenHelpTitle:  "#88C0D0", // frost 2
		TokenTextMuted:  "#4C566A", // polar night 4
	},
}

// HighContrastPreset uses pure colors only.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenSyntaxNormal:           "#FFFFFF",
		TokenSyntaxNumber:           "#FF8800",
		TokenSyntaxString:           "#FFFF00",
		TokenSyntaxComment:          "#00FF00",
		TokenSyntaxMultilineComment: "#00FF00",
		TokenSyntaxKeyword1:         "#FF00FF",
		TokenSyntaxKeyword2:         "#00FFFF",
		TokenSyntaxMatch:            "#0000FF",

		TokenStatusFg:       "#000000",
		TokenStatusBg:       "#FFFFFF",
		TokenStatusModified: "#FF0000",

		TokenMessageFg:    "#FFFFFF",
		TokenMessageError: "#FF0000",

		TokenControlFg: "#000000",
		TokenControlBg: "#FFFF00",

		TokenHelpBorder: "#FFFFFF",
		TokenHelpTitle:  "#00FFFF",
		TokenTextMuted:  "#FFFFFF", // no muted colors in high contrast
	},
}
