package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true)
	subtitleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("147"))
	sectionHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	selectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a3be8c"))
	sizeStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	helperStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	focusedLabelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd166"))

	heroAccentColor        = lipgloss.Color("#2a9d8f")
	heroEmberColor         = lipgloss.Color("#06231f")
	heroTextColor          = lipgloss.Color("#e9f5f2")
	heroSecondaryTextColor = lipgloss.Color("#8ad1c2")
	destructiveColor       = lipgloss.Color("#e63946")

	taglineStyle        = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	statusBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	helpBoxStyle        = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2)
	currentLineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroAccentColor).Padding(0, 2)
	disabledButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("236")).Padding(0, 2)

	toastStyle                 = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Padding(0, 1)
	toastTitleStyle            = lipgloss.NewStyle().Bold(true).Foreground(heroSecondaryTextColor)
	toastDestructiveStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(destructiveColor).Padding(0, 1)
	toastDestructiveTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(destructiveColor)

	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#021411"))
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines       = []string{
		"██╗  ███╗   ██╗  ████████╗   █████╗   ██╗  ██╗  ███████╗  ",
		"██║  ████╗  ██║  ╚══██╔══╝  ██╔══██╗  ██║ ██╔╝  ██╔════╝  ",
		"██║  ██╔██╗ ██║     ██║     ███████║  █████╔╝   █████╗    ",
		"██║  ██║╚██╗██║     ██║     ██╔══██║  ██╔═██╗   ██╔══╝    ",
		"██║  ██║ ╚████║     ██║     ██║  ██║  ██║  ██╗  ███████╗  ",
		"╚═╝  ╚═╝  ╚═══╝     ╚═╝     ╚═╝  ╚═╝  ╚═╝  ╚═╝  ╚══════╝  ",
	}
)
