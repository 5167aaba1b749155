package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	purple = lipgloss.Color("99")  // for borders
	pink   = lipgloss.Color("205") // for header text
	cyan   = lipgloss.Color("86")
	white  = lipgloss.Color("255")
	green  = lipgloss.Color("82")
	yellow = lipgloss.Color("220")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(pink).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(pink).
			Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(white)

	borderStyle = lipgloss.NewStyle().
			Foreground(purple)

	noticeStyle = lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(cyan)

	summaryStyle = lipgloss.NewStyle().
			Foreground(green)
)
