package statusbar

import (
	"fmt"
	"strings"

	"folio_chat/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

const defaultHint = "ctrl+t chat | ctrl+c quit"

// StatusBarView renders the one-line bar at the bottom of the page.
type StatusBarView struct {
	profile string
	model   string
	message string
	busy    bool
	width   int
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{width: 80}
}

// SetProfile sets the page variant shown on the left.
func (s *StatusBarView) SetProfile(name string) {
	s.profile = strings.TrimSpace(name)
}

// SetModel updates the active model displayed.
func (s *StatusBarView) SetModel(model string) {
	s.model = strings.TrimSpace(model)
}

// SetMessage sets a message shown instead of the key hint.
func (s *StatusBarView) SetMessage(msg string) {
	s.message = msg
}

// SetBusy marks a request as in flight.
func (s *StatusBarView) SetBusy(busy bool) {
	s.busy = busy
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// Render returns the styled status bar string
func (s *StatusBarView) Render() string {
	profile := s.profile
	if profile == "" {
		profile = "default"
	}
	modelLabel := s.model
	if modelLabel == "" {
		modelLabel = "unknown"
	}

	tail := defaultHint
	if s.message != "" {
		tail = s.message
	}
	content := fmt.Sprintf("[folio_chat] %s | [llm]: %s | %s", profile, modelLabel, tail)
	if s.busy {
		content += " | waiting for reply"
	}

	// Truncate if too long (ANSI-aware width).
	maxWidth := s.width - 2
	if maxWidth < 10 {
		maxWidth = 10
	}
	if ansi.StringWidth(content) > maxWidth {
		content = ansi.Truncate(content, maxWidth, "...")
	}

	styled := styles.StatusBarStyle.Render(content)
	if w := ansi.StringWidth(styled); w < s.width {
		styled += strings.Repeat(" ", s.width-w)
	}
	return styled
}
