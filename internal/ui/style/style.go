// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/recheck/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)

// OutcomeIcon returns the icon shown next to a ticket for the way it was served.
func OutcomeIcon(kind domain.OutcomeKind) string {
	switch kind {
	case domain.OutcomeFull:
		return Dot
	case domain.OutcomePartial:
		return Tilde
	case domain.OutcomeCached:
		return Circle
	default:
		return Warning
	}
}

// ResultColor picks the color for a field or ticket verdict.
// Degraded results are yellow so they stand apart from genuine failures.
func ResultColor(score int, valid bool) lipgloss.Color {
	switch {
	case score == domain.DegradedScore:
		return Yellow
	case valid:
		return Green
	default:
		return Red
	}
}

// ResultIcon returns Check, Cross or Warning for a verdict.
func ResultIcon(score int, valid bool) string {
	switch {
	case score == domain.DegradedScore:
		return Warning
	case valid:
		return Check
	default:
		return Cross
	}
}
