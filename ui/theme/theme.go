package theme

// Centralized theming for the motion guard UI: palette constants, the
// indicator colours and InitStyles to activate a base theme and configure
// semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorDanger    = "#dc2626"
	ColorAccent    = "#10b981"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
	ColorLink      = "#1d4ed8"
	ColorSelection = "#ff0000" // rubber band on the selection overlay
)

// Indicator colours: red while motion is active, green otherwise.
const (
	IndicatorActive   = "#e11d48"
	IndicatorInactive = "#16a34a"
)

// IndicatorColor returns the marker colour for the indicator state.
func IndicatorColor(active bool) string {
	if active {
		return IndicatorActive
	}
	return IndicatorInactive
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleTitleLabel    = "title.TLabel"
	StyleMutedLabel    = "muted.TLabel"
	StyleStateLabel    = "state.TLabel"
)

// InitStyles activates the base theme and configures the semantic styles.
func InitStyles() {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(ColorBg))

	StyleConfigure(StylePrimaryButton,
		Background(ColorPrimary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(ColorDanger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleTitleLabel,
		Foreground(ColorText),
		Font("helvetica", 18, "bold"),
		Padding("2p 4p"),
	)
	StyleConfigure(StyleMutedLabel,
		Foreground(ColorTextMuted),
		Font("helvetica", 12),
	)
	StyleConfigure(StyleStateLabel,
		Foreground("white"),
		Background(ColorAccent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
