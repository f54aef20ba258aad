package ui

import (
	"strings"

	"github.com/atomicstack/dirtree/internal/nav"
	"github.com/atomicstack/dirtree/internal/render"
	"github.com/atomicstack/dirtree/internal/tree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	fillerText   = "~"
	prunedSuffix = " …"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	markerStyle   *lipgloss.Style
	highlightFrom int
	// markerWidth counts the runes of the boundary marker that ends the
	// prefix.
	markerWidth int
}

// View implements tea.Model. The frame is rebuilt only when the controller
// reports a change or the terminal was resized.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.frame == "" || m.ctrl.Dirty() {
		m.frame = m.compose()
		m.ctrl.ClearDirty()
	}
	return m.frame
}

func (m *Model) compose() string {
	t := m.ctrl.Tree()
	lines := make([]styledLine, 0, m.viewHeight())
	lines = append(lines, styledLine{text: t.SelectedNode().FullPath, style: styles.Header})

	budget := m.treeBudget()
	rows := render.Render(t, budget, m.render)
	for _, row := range rows {
		lines = append(lines, treeLine(row))
	}
	for i := len(rows); i < budget; i++ {
		lines = append(lines, styledLine{text: fillerText, style: styles.Filler})
	}

	lines = append(lines, m.statusLine())
	lines = applyWidth(lines, m.width)
	out := renderLines(lines)
	if m.showFooter {
		out += "\n" + m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return out
}

func treeLine(row render.Line) styledLine {
	prefix := render.DefaultGlyphs.Prefix(row)
	text := prefix + row.Label
	if row.Pruned {
		text += prunedSuffix
	}
	line := styledLine{
		text:          text,
		style:         labelStyle(row),
		prefixStyle:   styles.Connector,
		markerStyle:   styles.Marker,
		highlightFrom: len([]rune(prefix)),
	}
	if row.MoreAbove || row.MoreBelow {
		line.markerWidth = len([]rune(render.DefaultGlyphs.Indent))
	}
	return line
}

func labelStyle(row render.Line) *lipgloss.Style {
	switch {
	case row.Selected:
		return styles.Selected
	case row.Pruned:
		return styles.Pruned
	case row.Kind == tree.KindDir:
		return styles.Directory
	default:
		return styles.File
	}
}

func (m *Model) statusLine() styledLine {
	status := m.ctrl.Status()
	switch {
	case status.Text == "":
		return styledLine{text: nav.DefaultStatus, style: styles.Status}
	case status.Error:
		return styledLine{text: status.Text, style: styles.Error}
	case status.Sticky:
		return styledLine{text: status.Text, style: styles.Pending}
	}
	return styledLine{text: status.Text, style: styles.Status}
}

func (m *Model) viewHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultHeight
}

// treeBudget is the number of rows left for the tree once the header,
// status line and optional footer are placed. It never drops below one.
func (m *Model) treeBudget() int {
	chrome := 2
	if m.showFooter {
		chrome++
	}
	budget := m.viewHeight() - chrome
	if budget < 1 {
		return 1
	}
	return budget
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = renderLine(line)
	}
	return strings.Join(out, "\n")
}

func renderLine(line styledLine) string {
	runes := []rune(line.text)
	from := line.highlightFrom
	if from <= 0 || from > len(runes) {
		return styleText(line.style, line.text)
	}
	markerAt := from - line.markerWidth
	if markerAt < 0 {
		markerAt = 0
	}
	var b strings.Builder
	b.WriteString(styleText(line.prefixStyle, string(runes[:markerAt])))
	b.WriteString(styleText(line.markerStyle, string(runes[markerAt:from])))
	b.WriteString(styleText(line.style, string(runes[from:])))
	return b.String()
}

func styleText(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
