// Package ui holds terminal rendering helpers for the tv CLI.
package ui

import (
	"fmt"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

// ANSI256 color codes for graph rendering.
const (
	colorAccent      = 74  // blue
	colorMuted       = 245 // medium gray
	colorRequirement = 110 // steel blue
	colorTask        = 150 // green
	colorTest        = 222 // amber
	colorRisk        = 174 // red
	colorDocument    = 182 // violet
)

var noColor bool

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	return render(colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return render(colorMuted, s)
}

// RenderType returns s colored by node type. Unknown types render unstyled.
func RenderType(t model.NodeType, s string) string {
	switch t {
	case model.TypeRequirement:
		return render(colorRequirement, s)
	case model.TypeTask:
		return render(colorTask, s)
	case model.TypeTest:
		return render(colorTest, s)
	case model.TypeRisk:
		return render(colorRisk, s)
	case model.TypeDocument:
		return render(colorDocument, s)
	}
	return s
}

func render(color int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
