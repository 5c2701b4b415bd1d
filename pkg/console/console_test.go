package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"folio_chat/pkg/ai"
	"folio_chat/pkg/chat"
	"folio_chat/pkg/profile"
)

type scriptedProvider struct {
	answers []string
	err     error
	calls   []ai.ChatRequest
}

func (s *scriptedProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return ai.ChatResponse{}, s.err
	}
	if len(s.answers) == 0 {
		return ai.ChatResponse{}, nil
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return ai.ChatResponse{Content: answer}, nil
}

func newConsole(t *testing.T, provider ai.Provider, prompt bool) (*Console, *chat.Conversation) {
	t.Helper()
	p, err := profile.Builtin("classic")
	if err != nil {
		t.Fatalf("Builtin(classic) error: %v", err)
	}
	conv := chat.New(provider, chat.Options{
		SystemPrompt: p.Instruction(),
		Greeting:     p.GreetingText(),
	})
	return New(p, conv, prompt), conv
}

func TestRun_AnswersEachLine(t *testing.T) {
	provider := &scriptedProvider{answers: []string{"React, TypeScript...", "Yes, open to work."}}
	c, conv := newConsole(t, provider, false)

	var out bytes.Buffer
	in := strings.NewReader("What tech stack?\n\n   \nAvailable?\n")
	if err := c.Run(context.Background(), in, &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	want := []string{
		"assistant> Hi! I'm Abel's AI assistant. Ask me about his projects, tech stack, or experience!",
		"assistant> React, TypeScript...",
		"assistant> Yes, open to work.",
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(want), len(lines), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if len(provider.calls) != 2 {
		t.Fatalf("Expected blank lines to be skipped, got %d calls", len(provider.calls))
	}
	if conv.Len() != 5 {
		t.Fatalf("Expected 5 transcript entries, got %d", conv.Len())
	}
}

func TestRun_ProviderFailure(t *testing.T) {
	c, _ := newConsole(t, &scriptedProvider{err: errors.New("dial tcp: refused")}, false)

	var out bytes.Buffer
	if err := c.Run(context.Background(), strings.NewReader("hello\n"), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(out.String(), assistantPrefix+chat.ConnectionErrorReply) {
		t.Fatalf("Expected connection error reply, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "refused") {
		t.Fatal("Expected transport detail to stay out of the transcript")
	}
}

func TestRun_Commands(t *testing.T) {
	provider := &scriptedProvider{answers: []string{"unused"}}
	c, conv := newConsole(t, provider, false)

	var out bytes.Buffer
	in := strings.NewReader("/projects\n/quit\nnever sent\n")
	if err := c.Run(context.Background(), in, &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(out.String(), "CryptoBear") {
		t.Fatalf("Expected full project list, got:\n%s", out.String())
	}
	if len(provider.calls) != 0 {
		t.Fatalf("Expected commands to stay local, got %d calls", len(provider.calls))
	}
	if conv.Len() != 1 {
		t.Fatalf("Expected only the greeting, got %d entries", conv.Len())
	}
}

func TestRun_UnknownSlashIsAQuestion(t *testing.T) {
	provider := &scriptedProvider{answers: []string{"It is a path."}}
	c, _ := newConsole(t, provider, false)

	var out bytes.Buffer
	if err := c.Run(context.Background(), strings.NewReader("/usr/bin?\n"), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(provider.calls) != 1 {
		t.Fatalf("Expected unregistered slash input to be sent, got %d calls", len(provider.calls))
	}
}

func TestRun_Prompt(t *testing.T) {
	c, _ := newConsole(t, &scriptedProvider{answers: []string{"hi"}}, true)

	var out bytes.Buffer
	if err := c.Run(context.Background(), strings.NewReader("hello\n"), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := strings.Count(out.String(), userPrefix); got != 2 {
		t.Fatalf("Expected a prompt before each read, got %d:\n%s", got, out.String())
	}
}

func TestRun_CanceledContext(t *testing.T) {
	c, _ := newConsole(t, &scriptedProvider{}, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, strings.NewReader("hello\n"), &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestRun_ReadError(t *testing.T) {
	c, _ := newConsole(t, &scriptedProvider{}, false)

	err := c.Run(context.Background(), iotest.ErrReader(errors.New("boom")), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("Expected read error, got %v", err)
	}
}
