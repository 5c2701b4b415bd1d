package ui

import (
	"strings"

	"folio_chat/pkg/chat"
	"folio_chat/pkg/profile"
	"folio_chat/pkg/ui/components/chatwidget"
	"folio_chat/pkg/ui/components/header"
	"folio_chat/pkg/ui/components/statusbar"
	"folio_chat/pkg/ui/components/utils"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const (
	widgetMaxWidth  = 56
	widgetMinWidth  = 28
	widgetMaxHeight = 30
)

// Model is the portfolio page: a static profile header, a status bar and
// the chat widget docked on the right while open.
type Model struct {
	profile   *profile.Profile
	widget    *chatwidget.Widget
	statusBar *statusbar.StatusBarView
	layout    *LayoutManager

	ready bool
}

// NewModel creates the page model for p around conv.
func NewModel(p *profile.Profile, conv *chat.Conversation, model string, opts ...chatwidget.Option) Model {
	sb := statusbar.NewStatusBarView()
	if p != nil {
		sb.SetProfile(p.Name)
	}
	sb.SetModel(model)

	return Model{
		profile:   p,
		widget:    chatwidget.New(conv, opts...),
		statusBar: sb,
		layout:    NewLayoutManager(),
	}
}

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates model state (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.SetSize(msg.Width, msg.Height)
		m.ready = true
		m.resizeWidget()
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			m.widget.Toggle()
			m.resizeWidget()
			m.statusBar.SetMessage("")
			return m, nil
		}
		if m.widget.ShouldHandleKey(msg) {
			cmd := m.widget.Update(msg)
			m.statusBar.SetBusy(m.widget.Conversation().IsBusy())
			return m, cmd
		}
		if !m.widget.IsOpen() && msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil

	case tea.PasteMsg:
		m.widget.HandlePaste(msg.Content)
		return m, nil

	case chatwidget.ReplyMsg:
		m.widget.HandleReply(msg)
		m.statusBar.SetBusy(m.widget.Conversation().IsBusy())
		if !m.widget.IsOpen() {
			m.statusBar.SetMessage("New reply - ctrl+t to read")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) resizeWidget() {
	width, height := m.layout.WidgetSize()
	m.widget.SetSize(width, height)
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render returns the page as a string.
func (m Model) Render() string {
	if !m.ready {
		return "Initializing..."
	}

	width, _ := m.layout.GetDimensions()
	bodyHeight := m.layout.BodyHeight()

	pageWidth := width
	var widgetView string
	if m.widget.IsOpen() {
		widgetView = m.widget.View()
		pageWidth = width - lipgloss.Width(widgetView)
	}

	page := m.renderPage(pageWidth, bodyHeight)
	body := page
	if widgetView != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, page, widgetView)
	}

	m.statusBar.SetWidth(width)
	return m.layout.RenderLayout(body, m.statusBar.Render())
}

func (m Model) renderPage(width, height int) string {
	const margin = 2
	lines := header.Render(m.profile, width-2*margin)
	if len(lines) > height {
		lines = lines[:height]
	}

	out := make([]string, 0, height)
	pad := strings.Repeat(" ", margin)
	for _, line := range lines {
		out = append(out, utils.PadStyled(utils.TruncateToWidth(pad+line, width), width))
	}
	for len(out) < height {
		out = append(out, strings.Repeat(" ", width))
	}
	return strings.Join(out, "\n")
}

// Widget returns the chat widget.
func (m Model) Widget() *chatwidget.Widget {
	return m.widget
}
