package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestNewStatusBarView(t *testing.T) {
	sb := NewStatusBarView()

	if sb == nil {
		t.Fatal("NewStatusBarView() returned nil")
	}
	if sb.width != 80 {
		t.Errorf("Expected default width 80, got %d", sb.width)
	}
}

func TestStatusBarView_Render(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)
	sb.SetProfile("classic")
	sb.SetModel("llama-3.3-70b-versatile")

	rendered := ansi.Strip(sb.Render())

	if !strings.Contains(rendered, "[folio_chat] classic") {
		t.Errorf("Expected profile marker, got %q", rendered)
	}
	if !strings.Contains(rendered, "[llm]: llama-3.3-70b-versatile") {
		t.Errorf("Expected model indicator, got %q", rendered)
	}
	if !strings.Contains(rendered, defaultHint) {
		t.Errorf("Expected key hint, got %q", rendered)
	}
}

func TestStatusBarView_MessageReplacesHint(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)
	sb.SetMessage("Chat closed")

	rendered := ansi.Strip(sb.Render())
	if !strings.Contains(rendered, "Chat closed") {
		t.Error("Expected message in rendered output")
	}
	if strings.Contains(rendered, defaultHint) {
		t.Error("Expected message to replace the key hint")
	}
}

func TestStatusBarView_Busy(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(120)
	sb.SetBusy(true)

	if !strings.Contains(ansi.Strip(sb.Render()), "waiting for reply") {
		t.Error("Expected busy marker")
	}
}

func TestStatusBarView_FitsWidth(t *testing.T) {
	for _, width := range []int{20, 40, 80} {
		sb := NewStatusBarView()
		sb.SetWidth(width)
		sb.SetProfile("a-very-long-profile-name-that-does-not-fit")
		sb.SetModel("some-extremely-long-model-identifier")

		if got := ansi.StringWidth(sb.Render()); got != width {
			t.Errorf("width %d: rendered width %d", width, got)
		}
	}
}
