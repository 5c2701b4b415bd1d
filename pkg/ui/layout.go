package ui

import (
	"charm.land/lipgloss/v2"
)

// LayoutManager handles the overall UI layout
type LayoutManager struct {
	width  int
	height int
}

// NewLayoutManager creates a new layout manager
func NewLayoutManager() *LayoutManager {
	return &LayoutManager{
		width:  80,
		height: 24,
	}
}

// SetSize updates the layout dimensions
func (lm *LayoutManager) SetSize(width, height int) {
	lm.width = width
	lm.height = height
}

// BodyHeight returns the height above the status bar.
func (lm *LayoutManager) BodyHeight() int {
	if lm.height < 2 {
		return 1
	}
	return lm.height - 1
}

// WidgetSize returns the docked chat widget dimensions: up to half the
// width within fixed bounds, and the body height up to a cap.
func (lm *LayoutManager) WidgetSize() (width, height int) {
	width = lm.width / 2
	if width > widgetMaxWidth {
		width = widgetMaxWidth
	}
	if width < widgetMinWidth {
		width = widgetMinWidth
	}
	if width > lm.width {
		width = lm.width
	}

	height = lm.BodyHeight()
	if height > widgetMaxHeight {
		height = widgetMaxHeight
	}
	return width, height
}

// RenderLayout combines the body and status bar
func (lm *LayoutManager) RenderLayout(body, statusBarContent string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		statusBarContent,
	)
}

// GetDimensions returns current width and height
func (lm *LayoutManager) GetDimensions() (width, height int) {
	return lm.width, lm.height
}
