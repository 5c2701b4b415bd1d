// Package styles provides the shared colors and styles of the folio_chat UI.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (purple)
	ColorAccent     = lipgloss.Color("141")
	ColorAccentDark = lipgloss.Color("98")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	ColorSuccess = lipgloss.Color("42")

	// Border colors
	ColorBorder      = lipgloss.Color("141") // Default border (matches accent)
	ColorBorderMuted = lipgloss.Color("238")
)

// Panel styles
var (
	// BoxStyle is the rounded box around the chat widget.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// SeparatorStyle for horizontal rules inside panels
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(ColorBorderMuted)
)

// Text styles
var (
	// TitleStyle for panel/section titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// TextStyle for normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// TextMutedStyle for secondary/helper text
	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// TextBoldStyle for emphasized text
	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Bold(true)

	// FooterStyle for footer/help text
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// OnlineDotStyle for the status dot in the widget title
	OnlineDotStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)
)

// Page header styles
var (
	NameStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Bold(true)

	NameAccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	HeadlineStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	SectionStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginTop(1)

	// LinkStyle for URLs and e-mail addresses
	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorAccentDark).
			Underline(true)

	TagStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// StatusBarStyle is the bottom hint bar (purple theme).
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)
