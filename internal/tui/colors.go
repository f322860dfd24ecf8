package tui

// Color constants for the examtt TUI theme
const (
	// Base Colors
	ColorCardBackground = "#14213D" // Dark navy
	ColorBorder         = "#3A4A6B" // Slate

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Labels, user input, titles
	ColorSecondaryText = "#A9B4C8" // Secondary text
	ColorDisabledText  = "#6D7383" // Muted text
	ColorPlaceholder   = "#7E8AA2"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#1E88E5" // Title, active borders
	ColorAccentBright = "#64B5F6" // Highlights, selected row

	// State Colors
	ColorError   = "#EF4444" // Invalid course entries
	ColorSuccess = "#22C55E" // Matched exams
	ColorWarning = "#F59E0B" // TBA dates
)
