package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/intake/internal/guide"
	"github.com/csheth/intake/internal/workflow"
)

func (m *model) View() string {
	switch m.router.View() {
	case workflow.ViewWelcome:
		return m.viewWelcome()
	case workflow.ViewURL:
		return m.viewURL()
	default:
		return m.viewFilePanel()
	}
}

func (m *model) viewWelcome() string {
	sheet := guide.Welcome()
	var b strings.Builder
	b.WriteString(titleStyle.Render(sheet.Title))
	b.WriteRune('\n')
	b.WriteString(subtitleStyle.Render(wordwrap.String(sheet.Description, m.wrapWidth(4))))
	b.WriteString("\n\n")
	b.WriteString(sectionHeaderStyle.Render(sheet.Prompt))
	b.WriteRune('\n')
	candidate := m.router.Candidate()
	if candidate == workflow.ModeNone {
		b.WriteString(helperStyle.Render("  " + sheet.Hint))
		b.WriteRune('\n')
	}
	for i, mode := range workflow.Modes {
		label := fmt.Sprintf("%d. %s", i+1, mode.Label())
		if mode == candidate {
			b.WriteString(currentLineStyle.Render("▸ " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteRune('\n')
	}
	b.WriteRune('\n')
	b.WriteString(m.buttonView(guide.ProceedLabel(candidate), m.router.CanConfirm()))

	parts := []string{m.heroView(), b.String(), m.messageView()}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView(), m.helpView())
	}
	parts = append(parts, m.toastsView(), m.sessionMeterView())
	return joinNonEmpty(parts)
}

func (m *model) viewFilePanel() string {
	mode := m.router.Mode()
	m.refreshViewport(mode)
	sheet := guide.Build(mode)

	ctrl := m.controller()
	canSubmit, canProcess, inFlight := false, false, false
	if ctrl != nil {
		canSubmit, canProcess, inFlight = ctrl.CanSubmit(), ctrl.CanProcess(), ctrl.Submitting()
	}
	noun := "File"
	if mode == workflow.ModeAudio {
		noun = "Files"
	}
	upload := "Upload " + noun
	if inFlight {
		upload = m.spinner.View() + " Uploading..."
	}
	prompt := joinLines(
		sectionHeaderStyle.Render(sheet.Prompt),
		m.pathInput.View(),
	)
	actions := lipgloss.JoinHorizontal(lipgloss.Top,
		m.buttonView(upload, canSubmit),
		"  ",
		m.buttonView("Process "+noun, canProcess),
	)
	return joinNonEmpty([]string{
		m.heroView(),
		m.viewport.View(),
		prompt,
		actions,
		m.messageView(),
		m.toastsView(),
		m.keyLegendView(),
		m.sessionMeterView(),
	})
}

func (m *model) viewURL() string {
	m.refreshViewport(workflow.ModeURL)
	var fields []string
	for i := range m.urlInputs {
		label := guide.URLFieldLabels[i]
		if urlField(i) == m.urlFocus {
			label = focusedLabelStyle.Render("▸ " + label)
		} else {
			label = labelStyle.Render("  " + label)
		}
		fields = append(fields, joinLines(label, "  "+m.urlInputs[i].View()))
	}

	inFlight := m.url != nil && m.url.Submitting()
	fieldsFilled := !hasEmptyField(m.urlFields())
	label := "Process URL"
	if inFlight {
		label = m.spinner.View() + " Processing URL..."
	}
	return joinNonEmpty([]string{
		m.heroView(),
		m.viewport.View(),
		strings.Join(fields, "\n"),
		m.buttonView(label, fieldsFilled && !inFlight),
		m.messageView(),
		m.toastsView(),
		m.keyLegendView(),
		m.sessionMeterView(),
	})
}

func hasEmptyField(fields workflow.URLFields) bool {
	return fields.URL == "" || fields.StartTime == "" || fields.EndTime == ""
}

// refreshViewport shrinks the viewport to its content so short panels do not
// push the prompt off screen.
func (m *model) refreshViewport(mode workflow.Mode) {
	content := m.buildPanelContent(mode)
	height := m.layout.viewportHeight
	if lines := strings.Count(content, "\n") + 1; lines < height {
		height = lines
	}
	offset := m.viewport.YOffset
	m.viewport.Height = height
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(offset)
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderLogo(),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) buttonView(label string, enabled bool) string {
	if enabled {
		return buttonStyle.Render(label)
	}
	return disabledButtonStyle.Render(label)
}

func (m *model) messageView() string {
	if m.infoMessage == "" {
		return ""
	}
	return helperStyle.Render(m.infoMessage)
}

func (m *model) toastsView() string {
	if len(m.toasts) == 0 {
		return ""
	}
	width := m.wrapWidth(8)
	if width > 60 {
		width = 60
	}
	boxes := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		style, title := toastStyle, toastTitleStyle
		if t.note.Severity == workflow.SeverityDestructive {
			style, title = toastDestructiveStyle, toastDestructiveTitleStyle
		}
		body := title.Render(t.note.Title)
		if t.note.Description != "" {
			body = joinLines(body, wordwrap.String(t.note.Description, width))
		}
		boxes = append(boxes, style.Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

func (m *model) sessionMeterView() string {
	mode := "Welcome"
	if current := m.router.Mode(); current != workflow.ModeNone {
		mode = current.Label()
	}
	stats := []string{
		mode,
		"Backend " + m.config.BackendURL,
	}
	if m.config.Receipts.Enabled() {
		stats = append(stats, fmt.Sprintf("Receipts %d", m.receiptCount))
	}
	stats = append(stats, m.jobStatusBadges()...)
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	var badges []string
	for _, job := range m.activeJobs {
		badges = append(badges, fmt.Sprintf("%s %s", job.Kind, job.Status))
	}
	if len(badges) == 0 && m.lastJob != nil {
		badges = append(badges, fmt.Sprintf("%s %s in %s", m.lastJob.Kind, m.lastJob.Status, m.lastJob.Duration.Round(time.Millisecond)))
	}
	return badges
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyHints() []keyHint {
	switch m.router.View() {
	case workflow.ViewWelcome:
		return []keyHint{
			{"↑/↓", "Choose type"},
			{"1-4", "Jump to type"},
			{"Enter", "Proceed"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}
	case workflow.ViewURL:
		return []keyHint{
			{"Tab", "Next field"},
			{"Shift+Tab", "Previous field"},
			{"Enter", "Next / submit"},
			{"Ctrl+U", "Process URL"},
			{"Esc", "Back to Welcome"},
		}
	default:
		return []keyHint{
			{"Enter", "Select path"},
			{"Ctrl+U", "Upload"},
			{"Ctrl+P", "Process"},
			{"PgUp/PgDn", "Scroll"},
			{"Esc", "Back to Welcome"},
		}
	}
}

func (m *model) keyLegendView() string {
	hints := m.keyHints()
	const columns = 3
	var rows []string
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func (m *model) helpView() string {
	lines := []string{
		sectionHeaderStyle.Render("How it works"),
		helperStyle.Render("• pick a processing type and press Enter to open its panel."),
		helperStyle.Render("• file panels take a path; audio also takes globs, directories and comma separated lists."),
		helperStyle.Render("• Ctrl+U sends the selection to the backend; Ctrl+P starts processing."),
		helperStyle.Render("• Esc returns here and clears the chosen type. Ctrl+C quits."),
	}
	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		lineRunes[i] = []rune(line)
		if len(lineRunes[i]) > width {
			width = len(lineRunes[i])
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}
	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	// shadow first, offset one cell down and right, then the face on top
	for pass, style := range []lipgloss.Style{logoShadowStyle, logoFaceStyle} {
		offset := 1 - pass
		for y, runes := range lineRunes {
			for x, r := range runes {
				if r != ' ' {
					grid[y+offset][x+offset] = cell{r: r, style: style}
				}
			}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}

func joinLines(parts ...string) string {
	return strings.Join(parts, "\n")
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
