package testutils

import (
	tea "charm.land/bubbletea/v2"
)

// Test helpers for creating v2 KeyPressMsg values

// NewKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func NewKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// NewTextKeyPressMsg creates a KeyPressMsg for text input
func NewTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{
		Code: r,
		Text: text,
	})
}

// TypeText returns one KeyPressMsg per rune of text.
func TypeText(text string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, NewTextKeyPressMsg(string(r)))
	}
	return msgs
}

// NewCtrlKeyPressMsg creates a Ctrl+<char> key.
func NewCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

var (
	TestKeyUp     = NewKeyPressMsg(tea.KeyUp)
	TestKeyDown   = NewKeyPressMsg(tea.KeyDown)
	TestKeyEnter  = NewKeyPressMsg(tea.KeyEnter)
	TestKeyEsc    = NewKeyPressMsg(tea.KeyEscape)
	TestKeyHome   = NewKeyPressMsg(tea.KeyHome)
	TestKeyEnd    = NewKeyPressMsg(tea.KeyEnd)
	TestKeyPgUp   = NewKeyPressMsg(tea.KeyPgUp)
	TestKeyPgDown = NewKeyPressMsg(tea.KeyPgDown)

	TestKeyCtrlC = NewCtrlKeyPressMsg('c')
	TestKeyCtrlT = NewCtrlKeyPressMsg('t')
	TestKeyCtrlY = NewCtrlKeyPressMsg('y')
)
