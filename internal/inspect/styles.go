/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package inspect is a Bubble Tea step-debugger TUI over a jvm.Session's
// frame stack: it single-steps opcode execution and renders the current
// method, PC, operand stack, and local variables. Its color/style palette
// and widget idioms (title/muted/good/warning/critical styles, a
// rounded-border box, a block-character depth sparkline) are grounded on
// mabhi256-jdiag/utils/styles.go, the one pack repo with a terminal UI.
package inspect

import "github.com/charmbracelet/lipgloss"

var (
	goodColor     = lipgloss.Color("#228B22")
	infoColor     = lipgloss.Color("#4682B4")
	warningColor  = lipgloss.Color("#FF8800")
	criticalColor = lipgloss.Color("#CC3333")
	mutedColor    = lipgloss.Color("#888888")
	textColor     = lipgloss.Color("#CCCCCC")
	borderColor   = lipgloss.Color("#666666")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	infoStyle     = lipgloss.NewStyle().Foreground(infoColor)
	goodStyle     = lipgloss.NewStyle().Foreground(goodColor).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	criticalStyle = lipgloss.NewStyle().Foreground(criticalColor).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	textStyle     = lipgloss.NewStyle().Foreground(textColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)
)
