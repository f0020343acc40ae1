// Package style holds the colors and glyphs shared by the log handler and
// the scenario renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Cyan   = lipgloss.Color("#0EA5E9")
)

// Glyphs.
const (
	Check    = "✓"
	Cross    = "✗"
	Warning  = "!"
	Arrow    = "→"
	Dot      = "●"
	Circle   = "○"
	Ellipsis = "…"
)
