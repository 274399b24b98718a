package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorDanger    = lipgloss.Color("196") // Red
)

// Header style for the top bar.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// SelectedItem style for the currently highlighted listing row.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected listing rows.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// Card style for the detail panel of the selected listing.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorSecondary).
	Padding(0, 2).
	MarginTop(1)

// CardTitle style for the address line in the detail panel.
var CardTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// CardPrice style for the price and monthly estimate line.
var CardPrice = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// CardMeta style for specs and neighborhood lines.
var CardMeta = lipgloss.NewStyle().
	Foreground(colorSecondary)

// CardURL style for the detail link.
var CardURL = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Underline(true)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true).
	Padding(0, 1)

// EmptyStyle for the nothing-pending message.
var EmptyStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// FavoriteMark style for the saved confirmation.
var FavoriteMark = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// DismissMark style for the dismissed confirmation.
var DismissMark = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true)
