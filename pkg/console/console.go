// Package console runs the chat over plain line-oriented streams, for pipes
// and terminals that cannot host the full-screen page.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"folio_chat/pkg/chat"
	"folio_chat/pkg/commands"
	"folio_chat/pkg/profile"
)

const (
	userPrefix      = "you> "
	assistantPrefix = "assistant> "

	// maxLineBytes bounds a single question read from the input.
	maxLineBytes = 64 * 1024
)

// Console reads questions line by line and prints the assistant's replies.
type Console struct {
	conv       *chat.Conversation
	dispatcher *commands.Dispatcher
	cmdCtx     *commands.Context
	prompt     bool
}

// New creates a console for conv. When prompt is set, "you> " is written
// before each read.
func New(p *profile.Profile, conv *chat.Conversation, prompt bool) *Console {
	return &Console{
		conv:       conv,
		dispatcher: commands.NewDispatcher(),
		cmdCtx:     commands.NewContext(p, conv),
		prompt:     prompt,
	}
}

// Run prints the greeting and answers each line until EOF, /quit or ctx is
// done. Blank lines are skipped.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	c.conv.SetOpen(true)
	if greeting, ok := c.conv.LastAssistant(); ok {
		fmt.Fprintln(out, assistantPrefix+greeting.Text)
	}

	stop := make(chan struct{})
	defer close(stop)
	lines, readErr := readLines(in, stop)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.prompt {
			fmt.Fprint(out, userPrefix)
		}

		var raw string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			raw = l
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if handler, ok := c.dispatcher.Lookup(line); ok {
			result := handler.Execute(c.cmdCtx)
			if result.Content != "" {
				fmt.Fprintln(out, result.Content)
			}
			if result.Quit {
				return nil
			}
			continue
		}

		msg, ok := c.conv.Send(ctx, line)
		if !ok {
			slog.Debug("console_input_dropped", "conversation_id", c.conv.ID())
			continue
		}
		fmt.Fprintln(out, assistantPrefix+msg.Text)
	}
}

// readLines scans in on its own goroutine so a blocked read does not hold up
// cancellation. lines is closed at EOF or on a read error, after which
// readErr yields the scanner's error.
func readLines(in io.Reader, stop <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}
