package commands

import (
	"fmt"
	"strings"

	"folio_chat/pkg/chat"
)

// ProjectsHandler handles the /projects command
type ProjectsHandler struct{}

func (h *ProjectsHandler) Name() string        { return "/projects" }
func (h *ProjectsHandler) Description() string { return "List every project on the page" }

func (h *ProjectsHandler) Execute(ctx *Context) *Result {
	if ctx == nil || ctx.Profile == nil || len(ctx.Profile.Projects) == 0 {
		return &Result{
			Title:   "Projects",
			Content: "No projects listed yet.",
		}
	}

	var sb strings.Builder
	for i, p := range ctx.Profile.Projects {
		fmt.Fprintf(&sb, "%d. %s", i+1, p.Title)
		if len(p.Tags) > 0 {
			fmt.Fprintf(&sb, " [%s]", strings.Join(p.Tags, ", "))
		}
		sb.WriteString("\n")
		if p.Description != "" {
			sb.WriteString("   " + p.Description + "\n")
		}
		if p.Link != "" {
			sb.WriteString("   " + p.Link + "\n")
		}
	}

	return &Result{
		Title:   "Projects",
		Content: strings.TrimRight(sb.String(), "\n"),
	}
}

// ContactHandler handles the /contact command
type ContactHandler struct{}

func (h *ContactHandler) Name() string        { return "/contact" }
func (h *ContactHandler) Description() string { return "Show contact details" }

func (h *ContactHandler) Execute(ctx *Context) *Result {
	if ctx == nil || ctx.Profile == nil {
		return &Result{Title: "Contact", Content: "No contact details available."}
	}

	c := ctx.Profile.Contact
	var lines []string
	if c.Email != "" {
		lines = append(lines, "Email:    "+c.Email)
	}
	if c.GitHub != "" {
		lines = append(lines, "GitHub:   "+c.GitHub)
	}
	if c.LinkedIn != "" {
		lines = append(lines, "LinkedIn: "+c.LinkedIn)
	}
	if len(lines) == 0 {
		return &Result{Title: "Contact", Content: "No contact details available."}
	}

	return &Result{
		Title:   "Contact",
		Content: strings.Join(lines, "\n"),
	}
}

// TranscriptHandler handles the /transcript command
type TranscriptHandler struct{}

func (h *TranscriptHandler) Name() string        { return "/transcript" }
func (h *TranscriptHandler) Description() string { return "Show the conversation so far" }

func (h *TranscriptHandler) Execute(ctx *Context) *Result {
	if ctx == nil || ctx.Conversation == nil || ctx.Conversation.Len() == 0 {
		return &Result{
			Title:   "Transcript",
			Content: "No messages yet.",
		}
	}

	var sb strings.Builder
	for _, m := range ctx.Conversation.Transcript() {
		who := "you"
		if m.Role == chat.RoleAssistant {
			who = "assistant"
		}
		fmt.Fprintf(&sb, "%s> %s\n", who, m.Text)
	}

	return &Result{
		Title:   "Transcript",
		Content: strings.TrimRight(sb.String(), "\n"),
	}
}

// QuitHandler handles the /quit command
type QuitHandler struct{}

func (h *QuitHandler) Name() string        { return "/quit" }
func (h *QuitHandler) Description() string { return "End the session" }

func (h *QuitHandler) Execute(ctx *Context) *Result {
	return &Result{Title: "Bye", Quit: true}
}

// HelpHandler handles the /help command
type HelpHandler struct {
	dispatcher *Dispatcher
}

func (h *HelpHandler) Name() string        { return "/help" }
func (h *HelpHandler) Description() string { return "Show help" }

func (h *HelpHandler) Execute(ctx *Context) *Result {
	var sb strings.Builder
	sb.WriteString("Type a question to ask the assistant.\n\nAvailable Commands:\n")
	if h.dispatcher != nil {
		for _, handler := range h.dispatcher.Handlers() {
			fmt.Fprintf(&sb, "  %-12s - %s\n", handler.Name(), handler.Description())
		}
	}

	return &Result{
		Title:   "Help",
		Content: strings.TrimRight(sb.String(), "\n"),
	}
}
