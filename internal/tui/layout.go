package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/intake/internal/guide"
	"github.com/csheth/intake/internal/workflow"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 12,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	// hero, prompt, actions, toasts, legend and status bar
	const chrome = 30
	usable := height - chrome
	if usable < 4 {
		usable = 4
	}
	l.viewportHeight = usable
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

// buildPanelContent renders the scrollable part of a mode panel: heading,
// instructions and the current selection.
func (m *model) buildPanelContent(mode workflow.Mode) string {
	sheet := guide.Build(mode)
	wrap := m.wrapWidth(4)
	cb := &contentBuilder{}
	cb.WriteString(titleStyle.Render(sheet.Title))
	cb.WriteRune('\n')
	cb.WriteString(subtitleStyle.Render(wordwrap.String(sheet.Description, wrap)))
	cb.WriteRune('\n')
	cb.WriteRune('\n')
	cb.WriteString(sectionHeaderStyle.Render("Instructions"))
	cb.WriteRune('\n')
	for _, step := range sheet.Steps {
		cb.WriteString(" • ")
		cb.WriteString(indentContinuation(wordwrap.String(step, wrap-3), "   "))
		cb.WriteRune('\n')
	}
	if selection := m.selectionLines(); len(selection) > 0 {
		cb.WriteRune('\n')
		for _, line := range selection {
			cb.WriteString(line)
			cb.WriteRune('\n')
		}
	}
	return strings.TrimRight(cb.String(), "\n")
}

func (m *model) selectionLines() []string {
	switch {
	case m.audio != nil:
		files, ok := m.audio.Selection()
		if !ok {
			return nil
		}
		lines := []string{selectionHeaderStyle.Render(fmt.Sprintf("%d file(s) selected", len(files)))}
		for _, file := range files {
			lines = append(lines, fmt.Sprintf(" • %s  %s", file.Name, sizeStyle.Render(humanize.Bytes(uint64(file.Size)))))
		}
		return lines
	case m.filePanel() != nil:
		file, ok := m.filePanel().Selection()
		if !ok {
			return nil
		}
		return []string{
			selectionHeaderStyle.Render("Selected"),
			fmt.Sprintf(" • %s  %s", file.Name, sizeStyle.Render(fmt.Sprintf("(%s)", humanize.Bytes(uint64(file.Size))))),
		}
	default:
		return nil
	}
}

func indentContinuation(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}
