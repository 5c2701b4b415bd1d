package commands

import (
	"folio_chat/pkg/chat"
	"folio_chat/pkg/profile"
)

// Context contains all the context needed for command execution
type Context struct {
	Profile      *profile.Profile
	Conversation *chat.Conversation
}

// NewContext creates a new command context
func NewContext(p *profile.Profile, conv *chat.Conversation) *Context {
	return &Context{
		Profile:      p,
		Conversation: conv,
	}
}
