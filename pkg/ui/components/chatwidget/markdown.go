package chatwidget

import (
	"log/slog"
	"strings"

	"folio_chat/pkg/chat"
	"folio_chat/pkg/ui/components/utils"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

const defaultMarkdownStyle = "dark"

// markdownRenderer renders the transcript with glamour. The term renderer is
// rebuilt only when the wrap width changes.
type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer(style string) *markdownRenderer {
	if strings.TrimSpace(style) == "" {
		style = defaultMarkdownStyle
	}
	return &markdownRenderer{style: style}
}

func (m *markdownRenderer) termRenderer(width int) *glamour.TermRenderer {
	if m.renderer != nil && m.width == width {
		return m.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		slog.Warn("chatwidget_markdown_renderer_error", "style", m.style, "error", err)
		m.renderer = nil
		return nil
	}
	m.renderer = r
	m.width = width
	return r
}

// renderTranscript returns the transcript as display lines no wider than width.
func (m *markdownRenderer) renderTranscript(msgs []chat.Message, width int) []string {
	doc := transcriptMarkdown(msgs)
	if doc == "" {
		return nil
	}

	if r := m.termRenderer(width); r != nil {
		out, err := r.Render(doc)
		if err == nil {
			return trimBlankLines(strings.Split(out, "\n"))
		}
		slog.Warn("chatwidget_markdown_render_error", "error", err)
	}
	return plainLines(doc, width)
}

func transcriptMarkdown(msgs []chat.Message) string {
	var sb strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if msg.Role == chat.RoleUser {
			sb.WriteString("**You:** ")
		} else {
			sb.WriteString("**Assistant:** ")
		}
		sb.WriteString(utils.Sanitize(msg.Text))
	}
	return sb.String()
}

func plainLines(doc string, width int) []string {
	var lines []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.ReplaceAll(line, "\t", "    ")
		lines = append(lines, utils.SplitByWidth(line, width)...)
	}
	return lines
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}

func isBlank(line string) bool {
	return strings.TrimSpace(ansi.Strip(line)) == ""
}
