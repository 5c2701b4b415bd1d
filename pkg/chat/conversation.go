package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"folio_chat/pkg/ai"
	"folio_chat/pkg/logging"

	"github.com/google/uuid"
)

const (
	// FallbackReply replaces an answer the API returned without text.
	FallbackReply = "I'm sorry, I couldn't process that request."
	// ConnectionErrorReply replaces any failed request. The cause is logged.
	ConnectionErrorReply = "Connection error. Please try again later."
)

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry.
type Message struct {
	Role Role
	Text string
}

// HistoryMode selects how much of the transcript goes out with a question.
type HistoryMode string

const (
	// HistoryLatest sends the system instruction and the newest question.
	HistoryLatest HistoryMode = "latest"
	// HistoryFull sends the system instruction and the transcript so far.
	HistoryFull HistoryMode = "full"
)

// ParseHistoryMode maps a config value to a HistoryMode, defaulting to latest.
func ParseHistoryMode(s string) HistoryMode {
	if HistoryMode(strings.ToLower(strings.TrimSpace(s))) == HistoryFull {
		return HistoryFull
	}
	return HistoryLatest
}

// Options configures a Conversation.
type Options struct {
	SystemPrompt string
	Greeting     string
	History      HistoryMode
	// MaxHistory caps the transcript entries sent in full mode. Zero means no cap.
	MaxHistory  int
	Model       string
	Temperature *float64
	MaxTokens   int
	Logger      *slog.Logger
}

// Exchange is an accepted question waiting to be performed.
type Exchange struct {
	Seq     uint64
	Request ai.ChatRequest
}

// Reply is the outcome of performing an Exchange. Text is never empty.
type Reply struct {
	Seq      uint64
	Text     string
	Err      error
	Fallback bool
}

// Conversation is the state of one chat widget: the transcript, the
// unsent input, the busy guard and the open/closed flag.
//
// All methods except Perform belong to the owner's goroutine. Perform only
// reads fields fixed at construction and may run anywhere.
type Conversation struct {
	id       string
	provider ai.Provider
	opts     Options
	logger   *slog.Logger

	transcript   []Message
	pendingInput string
	busy         bool
	open         bool
	seq          uint64
}

// New creates a closed, idle conversation seeded with the greeting.
func New(provider ai.Provider, opts Options) *Conversation {
	if opts.History == "" {
		opts.History = HistoryLatest
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()

	c := &Conversation{
		id:       id,
		provider: provider,
		opts:     opts,
		logger:   logger.With("conversation_id", id),
	}
	if greeting := strings.TrimSpace(opts.Greeting); greeting != "" {
		c.transcript = append(c.transcript, Message{Role: RoleAssistant, Text: opts.Greeting})
	}
	return c
}

// ID returns the conversation id used to correlate log lines.
func (c *Conversation) ID() string { return c.id }

func (c *Conversation) IsBusy() bool { return c.busy }

func (c *Conversation) IsOpen() bool { return c.open }

// ToggleOpen flips visibility and returns the new state. The transcript and
// any in-flight exchange are untouched.
func (c *Conversation) ToggleOpen() bool {
	c.open = !c.open
	c.logger.Debug("chat_toggle", "open", c.open)
	return c.open
}

// SetOpen sets visibility directly.
func (c *Conversation) SetOpen(open bool) {
	c.open = open
}

func (c *Conversation) PendingInput() string { return c.pendingInput }

func (c *Conversation) SetPendingInput(s string) { c.pendingInput = s }

// Transcript returns a copy of the transcript, oldest first.
func (c *Conversation) Transcript() []Message {
	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Conversation) Len() int { return len(c.transcript) }

// Last returns the newest entry.
func (c *Conversation) Last() (Message, bool) {
	if len(c.transcript) == 0 {
		return Message{}, false
	}
	return c.transcript[len(c.transcript)-1], true
}

// LastAssistant returns the newest assistant entry.
func (c *Conversation) LastAssistant() (Message, bool) {
	for i := len(c.transcript) - 1; i >= 0; i-- {
		if c.transcript[i].Role == RoleAssistant {
			return c.transcript[i], true
		}
	}
	return Message{}, false
}

// Submit accepts text as the next question. It does nothing and returns
// false when the trimmed text is empty or an exchange is already in flight.
// Otherwise it appends the user entry, clears the pending input, marks the
// conversation busy and returns the exchange to perform.
func (c *Conversation) Submit(text string) (Exchange, bool) {
	if strings.TrimSpace(text) == "" {
		return Exchange{}, false
	}
	if c.busy {
		c.logger.Debug("chat_submit_ignored_busy", "seq", c.seq)
		return Exchange{}, false
	}

	c.transcript = append(c.transcript, Message{Role: RoleUser, Text: text})
	c.pendingInput = ""
	c.busy = true
	c.seq++

	ex := Exchange{Seq: c.seq, Request: c.buildRequest()}

	c.logger.Info("chat_submit",
		"seq", ex.Seq,
		"history", string(c.opts.History),
		"message_count", len(ex.Request.Messages),
		"transcript_len", len(c.transcript),
	)
	if c.logger.Enabled(context.Background(), logging.LevelTrace) {
		c.logger.Log(context.Background(), logging.LevelTrace, "chat_prompt",
			"seq", ex.Seq,
			"messages_full", buildMessageDump(ex.Request.Messages),
		)
	}
	return ex, true
}

// SubmitPending submits the pending input.
func (c *Conversation) SubmitPending() (Exchange, bool) {
	return c.Submit(c.pendingInput)
}

// Perform issues the exchange and always returns a usable reply: the answer,
// FallbackReply for an empty answer, or ConnectionErrorReply for any failure.
func (c *Conversation) Perform(ctx context.Context, ex Exchange) (reply Reply) {
	reply = Reply{Seq: ex.Seq}
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("provider panic: %v", r)
			c.logger.Error("chat_request_error", "seq", ex.Seq, "error", err)
			reply = Reply{Seq: ex.Seq, Text: ConnectionErrorReply, Err: err}
		}
	}()

	if c.provider == nil {
		err := fmt.Errorf("no provider configured")
		c.logger.Error("chat_request_error", "seq", ex.Seq, "error", err)
		reply.Text, reply.Err = ConnectionErrorReply, err
		return reply
	}
	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := c.provider.CreateChatCompletion(ctx, ex.Request)
	if err != nil {
		c.logger.Error("chat_request_error", "seq", ex.Seq, "error", err)
		reply.Text, reply.Err = ConnectionErrorReply, err
		return reply
	}

	if strings.TrimSpace(resp.Content) == "" {
		c.logger.Warn("chat_empty_answer", "seq", ex.Seq, "model", resp.Model)
		reply.Text, reply.Fallback = FallbackReply, true
		return reply
	}

	c.logger.Info("chat_answer", "seq", ex.Seq, "model", resp.Model, "answer_len", len(resp.Content))
	reply.Text = resp.Content
	return reply
}

// Settle appends the assistant entry for the in-flight exchange and clears
// the busy flag. A reply that does not belong to the in-flight exchange is
// dropped. Visibility does not matter: a reply for a closed widget is still
// absorbed.
func (c *Conversation) Settle(r Reply) (Message, bool) {
	if !c.busy || r.Seq != c.seq {
		c.logger.Warn("chat_reply_dropped", "seq", r.Seq, "current_seq", c.seq, "busy", c.busy)
		return Message{}, false
	}

	text := r.Text
	if strings.TrimSpace(text) == "" {
		text = FallbackReply
	}
	msg := Message{Role: RoleAssistant, Text: text}
	c.transcript = append(c.transcript, msg)
	c.busy = false

	c.logger.Debug("chat_settled",
		"seq", r.Seq,
		"fallback", r.Fallback,
		"failed", r.Err != nil,
		"transcript_len", len(c.transcript),
	)
	return msg, true
}

// Send runs Submit, Perform and Settle in sequence. Settle runs on a deferred
// path, so the conversation is idle again however Perform returns.
func (c *Conversation) Send(ctx context.Context, text string) (msg Message, ok bool) {
	ex, accepted := c.Submit(text)
	if !accepted {
		return Message{}, false
	}

	reply := Reply{Seq: ex.Seq, Text: ConnectionErrorReply, Err: fmt.Errorf("request interrupted")}
	defer func() {
		msg, ok = c.Settle(reply)
	}()
	reply = c.Perform(ctx, ex)
	return msg, ok
}
