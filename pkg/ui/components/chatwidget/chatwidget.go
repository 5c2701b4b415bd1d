package chatwidget

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"folio_chat/pkg/chat"
	"folio_chat/pkg/ui/components/utils"
	"folio_chat/pkg/ui/styles"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const (
	widgetBorderSize = 1
	widgetPaddingH   = 1
	widgetPaddingV   = 0
	textareaHeight   = 3
	// title, separator, footer
	chromeLines = 3

	DefaultTitle      = "AI Assistant"
	thinkingLabel     = "AI is thinking..."
	inputPlaceholder  = "Ask me anything..."
	widgetFooterLabel = "Enter Send | Up/Down Scroll | Ctrl+Y Copy | Esc Close"
)

// ReplyMsg carries a performed exchange back to the Bubble Tea loop.
type ReplyMsg struct {
	Reply chat.Reply
}

// Widget is the chat panel: the transcript viewport, the input box and the
// open/closed flag of the underlying conversation.
type Widget struct {
	conv  *chat.Conversation
	title string

	width   int
	height  int
	scrollY int
	lines   []string
	follow  bool

	textarea textarea.Model
	markdown *markdownRenderer

	clipboard io.Writer
}

// Option configures a Widget.
type Option func(*Widget)

// WithTitle sets the panel title.
func WithTitle(title string) Option {
	return func(w *Widget) { w.title = title }
}

// WithMarkdownStyle selects the glamour style used for the transcript.
func WithMarkdownStyle(style string) Option {
	return func(w *Widget) { w.markdown = newMarkdownRenderer(style) }
}

// WithClipboardWriter sets where OSC52 copy sequences are written.
func WithClipboardWriter(out io.Writer) Option {
	return func(w *Widget) { w.clipboard = out }
}

// New creates a widget around conv.
func New(conv *chat.Conversation, opts ...Option) *Widget {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.ShowLineNumbers = false
	ta.SetHeight(textareaHeight)

	w := &Widget{
		conv:      conv,
		title:     DefaultTitle,
		follow:    true,
		textarea:  ta,
		markdown:  newMarkdownRenderer(defaultMarkdownStyle),
		clipboard: os.Stdout,
	}
	for _, opt := range opts {
		opt(w)
	}
	if conv.IsOpen() {
		w.textarea.Focus()
	}
	w.refresh()
	return w
}

// Conversation returns the underlying conversation.
func (w *Widget) Conversation() *chat.Conversation {
	return w.conv
}

// IsOpen reports whether the panel is rendered.
func (w *Widget) IsOpen() bool {
	return w.conv.IsOpen()
}

// Toggle opens or closes the panel. Reopening shows the same transcript.
func (w *Widget) Toggle() bool {
	open := w.conv.ToggleOpen()
	if open {
		w.textarea.Focus()
		w.refresh()
		w.scrollToBottom()
	} else {
		w.textarea.Blur()
	}
	return open
}

// Close hides the panel.
func (w *Widget) Close() {
	w.conv.SetOpen(false)
	w.textarea.Blur()
}

// SetSize sets the outer panel dimensions.
func (w *Widget) SetSize(width, height int) {
	w.width = width
	w.height = height
	w.textarea.SetWidth(w.contentWidth())
	w.refresh()
}

// ShouldHandleKey returns true when the widget should intercept the key.
func (w *Widget) ShouldHandleKey(msg tea.KeyPressMsg) bool {
	if !w.IsOpen() {
		return false
	}

	switch msg.String() {
	case "esc", "enter", "up", "down", "pgup", "pgdown", "home", "end", "ctrl+y":
		return true
	case "backspace", "delete", "left", "right", "ctrl+a", "ctrl+e", "ctrl+k", "ctrl+u":
		return true
	}
	return msg.Key().Text != ""
}

// Update handles a key press while the panel is open.
func (w *Widget) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !w.IsOpen() {
		return nil
	}

	switch msg.String() {
	case "enter":
		return w.submit()
	case "esc":
		w.Close()
		return nil
	case "up", "down", "pgup", "pgdown", "home", "end":
		w.handleScroll(msg.String())
		return nil
	case "ctrl+y":
		return w.copyLastAnswer()
	}

	var cmd tea.Cmd
	w.textarea, cmd = w.textarea.Update(msg)
	w.conv.SetPendingInput(w.textarea.Value())
	return cmd
}

// HandlePaste routes pasted text to the input box.
func (w *Widget) HandlePaste(content string) {
	if !w.IsOpen() {
		return
	}
	w.textarea.InsertString(content)
	w.conv.SetPendingInput(w.textarea.Value())
}

// HandleReply settles a performed exchange and scrolls to the newest entry.
// It runs whether or not the panel is open.
func (w *Widget) HandleReply(msg ReplyMsg) bool {
	_, ok := w.conv.Settle(msg.Reply)
	if ok {
		w.refresh()
		w.scrollToBottom()
	}
	return ok
}

func (w *Widget) submit() tea.Cmd {
	w.conv.SetPendingInput(w.textarea.Value())
	ex, ok := w.conv.SubmitPending()
	if !ok {
		return nil
	}
	w.textarea.Reset()
	w.refresh()
	w.scrollToBottom()
	return PerformCmd(w.conv, ex)
}

// PerformCmd performs ex off the UI goroutine and reports the result as a
// ReplyMsg.
func PerformCmd(conv *chat.Conversation, ex chat.Exchange) tea.Cmd {
	return func() tea.Msg {
		return ReplyMsg{Reply: conv.Perform(context.Background(), ex)}
	}
}

func (w *Widget) handleScroll(key string) {
	maxScroll := w.maxScroll()
	page := w.viewportHeight()

	switch key {
	case "up":
		if w.scrollY > 0 {
			w.scrollY--
		}
	case "down":
		if w.scrollY < maxScroll {
			w.scrollY++
		}
	case "pgup":
		w.scrollY -= page
	case "pgdown":
		w.scrollY += page
	case "home":
		w.scrollY = 0
	case "end":
		w.scrollY = maxScroll
	}

	if w.scrollY < 0 {
		w.scrollY = 0
	}
	if w.scrollY > maxScroll {
		w.scrollY = maxScroll
	}
	w.follow = w.scrollY >= maxScroll
}

func (w *Widget) scrollToBottom() {
	w.follow = true
	w.scrollY = w.maxScroll()
}

func (w *Widget) copyLastAnswer() tea.Cmd {
	msg, ok := w.conv.LastAssistant()
	if !ok {
		return nil
	}
	out := w.clipboard
	text := msg.Text
	return func() tea.Msg {
		_, _ = fmt.Fprint(out, osc52.New(text))
		return nil
	}
}

// refresh re-renders the transcript into wrapped lines.
func (w *Widget) refresh() {
	width := w.contentWidth()
	w.lines = w.markdown.renderTranscript(w.conv.Transcript(), width)
	if w.conv.IsBusy() {
		w.lines = append(w.lines, "", thinkingStyle.Render(utils.TruncateToWidth(thinkingLabel, width)))
	}
	if w.follow {
		w.scrollY = w.maxScroll()
	}
	if w.scrollY > w.maxScroll() {
		w.scrollY = w.maxScroll()
	}
}

// View renders the panel, or nothing while closed.
func (w *Widget) View() string {
	if !w.IsOpen() {
		return ""
	}

	contentWidth := w.contentWidth()
	contentHeight := w.contentHeight()
	viewportHeight := w.viewportHeight()

	lines := make([]string, 0, contentHeight)

	title := onlineDotStyle.Render("●") + " " + titleStyle.Render(w.title)
	lines = append(lines, utils.PadStyled(utils.TruncateToWidth(title, contentWidth), contentWidth))

	end := w.scrollY + viewportHeight
	if end > len(w.lines) {
		end = len(w.lines)
	}
	for i := w.scrollY; i < end; i++ {
		lines = append(lines, utils.PadStyled(utils.TruncateToWidth(w.lines[i], contentWidth), contentWidth))
	}
	for len(lines) < 1+viewportHeight {
		lines = append(lines, strings.Repeat(" ", contentWidth))
	}

	lines = append(lines, separatorStyle.Render(strings.Repeat("─", contentWidth)))

	w.textarea.SetWidth(contentWidth)
	for i, line := range strings.Split(w.textarea.View(), "\n") {
		if i >= textareaHeight {
			break
		}
		lines = append(lines, utils.PadStyled(line, contentWidth))
	}
	for len(lines) < contentHeight-1 {
		lines = append(lines, strings.Repeat(" ", contentWidth))
	}

	lines = append(lines, utils.PadStyled(footerStyle.Render(utils.TruncateToWidth(widgetFooterLabel, contentWidth)), contentWidth))

	boxWidth := w.width
	if boxWidth < 1 {
		boxWidth = 1
	}
	return boxStyle.
		Width(boxWidth).
		Padding(widgetPaddingV, widgetPaddingH).
		Render(strings.Join(lines, "\n"))
}

func (w *Widget) contentWidth() int {
	width := w.width - 2*(widgetBorderSize+widgetPaddingH)
	if width < 1 {
		return 1
	}
	return width
}

func (w *Widget) contentHeight() int {
	height := w.height - 2*(widgetBorderSize+widgetPaddingV)
	if height < 1 {
		return 1
	}
	return height
}

func (w *Widget) viewportHeight() int {
	h := w.contentHeight() - chromeLines - textareaHeight
	if h < 1 {
		return 1
	}
	return h
}

func (w *Widget) maxScroll() int {
	max := len(w.lines) - w.viewportHeight()
	if max < 0 {
		return 0
	}
	return max
}

var (
	boxStyle = styles.BoxStyle

	titleStyle     = styles.TitleStyle
	onlineDotStyle = styles.OnlineDotStyle
	thinkingStyle  = styles.TextMutedStyle
	separatorStyle = styles.SeparatorStyle
	footerStyle    = styles.FooterStyle
)
