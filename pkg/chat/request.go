package chat

import (
	"fmt"
	"strings"

	"folio_chat/pkg/ai"
)

// buildRequest assembles the outbound request for the newest user entry.
// The system instruction always comes first and the newest question last.
func (c *Conversation) buildRequest() ai.ChatRequest {
	msgs := make([]ai.Message, 0, len(c.transcript)+1)
	if prompt := strings.TrimSpace(c.opts.SystemPrompt); prompt != "" {
		msgs = append(msgs, ai.Message{Role: "system", Content: c.opts.SystemPrompt})
	}

	switch c.opts.History {
	case HistoryFull:
		for _, m := range historyWindow(c.transcript, c.opts.MaxHistory) {
			msgs = append(msgs, ai.Message{Role: string(m.Role), Content: m.Text})
		}
	default:
		last := c.transcript[len(c.transcript)-1]
		msgs = append(msgs, ai.Message{Role: string(last.Role), Content: last.Text})
	}

	req := ai.ChatRequest{
		Model:       c.opts.Model,
		Messages:    msgs,
		Temperature: c.opts.Temperature,
	}
	if c.opts.MaxTokens > 0 {
		maxTokens := c.opts.MaxTokens
		req.MaxTokens = &maxTokens
	}
	return req
}

// historyWindow returns the entries sent in full mode. Assistant entries
// ahead of the first question (the greeting) are page copy, not context.
// The window keeps the newest max entries and never starts on an answer.
func historyWindow(transcript []Message, max int) []Message {
	start := 0
	for start < len(transcript) && transcript[start].Role != RoleUser {
		start++
	}
	window := transcript[start:]

	if max > 0 && len(window) > max {
		window = window[len(window)-max:]
		for len(window) > 1 && window[0].Role != RoleUser {
			window = window[1:]
		}
	}
	return window
}

func buildMessageDump(msgs []ai.Message) string {
	var sb strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "[%d] %s: %s", i, msg.Role, msg.Content)
	}
	return sb.String()
}
