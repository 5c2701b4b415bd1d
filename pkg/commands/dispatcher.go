package commands

import (
	"sort"
	"strings"
)

// Result represents the result of a command execution
type Result struct {
	Title   string
	Content string
	// Quit asks the front end to end the session.
	Quit bool
}

// Handler is the interface for command handlers
type Handler interface {
	Execute(ctx *Context) *Result
	Name() string
	Description() string
}

// Dispatcher routes slash commands to their handlers. Commands are answered
// locally and never reach the conversation.
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher creates a new command dispatcher
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
	}

	// Register default handlers
	d.Register(&ProjectsHandler{})
	d.Register(&ContactHandler{})
	d.Register(&TranscriptHandler{})
	d.Register(&QuitHandler{})
	d.Register(&HelpHandler{dispatcher: d})

	return d
}

// Register adds a handler to the dispatcher
func (d *Dispatcher) Register(h Handler) {
	d.handlers[h.Name()] = h
}

// Lookup returns the handler for a line such as "/projects", ignoring
// surrounding whitespace and case. Lines that are not registered commands
// return false and are treated as questions.
func (d *Dispatcher) Lookup(line string) (Handler, bool) {
	name := strings.ToLower(strings.TrimSpace(line))
	if !strings.HasPrefix(name, "/") {
		return nil, false
	}
	return d.GetHandler(name)
}

// Dispatch executes a command by name
func (d *Dispatcher) Dispatch(cmdName string, ctx *Context) *Result {
	handler, ok := d.Lookup(cmdName)
	if !ok {
		return &Result{
			Title:   "Error",
			Content: "Unknown command: " + cmdName,
		}
	}

	return handler.Execute(ctx)
}

// GetHandler returns a handler by name
func (d *Dispatcher) GetHandler(cmdName string) (Handler, bool) {
	h, ok := d.handlers[cmdName]
	return h, ok
}

// Handlers returns the registered handlers sorted by name.
func (d *Dispatcher) Handlers() []Handler {
	out := make([]Handler, 0, len(d.handlers))
	for _, h := range d.handlers {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
