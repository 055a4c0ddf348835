package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/slapp/internal/gateway"
	"github.com/MrSnakeDoc/slapp/internal/logger"
)

// Request is a message addressed to one command.
type Request struct {
	gateway.Message
	Command string
	Args    string
}

type HandlerFunc func(ctx context.Context, req Request) error

// Command is one entry of the registry.
type Command struct {
	Name    string
	Usage   string
	Summary string
	Run     HandlerFunc
}

// Router dispatches prefixed messages to the commands registered at startup.
type Router struct {
	prefix   string
	commands map[string]Command
	order    []string
	logger   logger.Logger
}

func NewRouter(prefix string, log logger.Logger) *Router {
	return &Router{
		prefix:   prefix,
		commands: make(map[string]Command),
		logger:   log,
	}
}

// Handle registers cmd. Registering the same name twice is a programming
// error and panics.
func (r *Router) Handle(cmd Command) *Router {
	name := strings.ToLower(cmd.Name)
	if _, dup := r.commands[name]; dup {
		panic(fmt.Sprintf("command %q registered twice", name))
	}
	r.commands[name] = cmd
	r.order = append(r.order, name)
	return r
}

// Commands lists the registry in registration order.
func (r *Router) Commands() []Command {
	out := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

// Prefix returns the command prefix.
func (r *Router) Prefix() string { return r.prefix }

// parse splits "<prefix><name> <args>". ok is false for anything else.
func (r *Router) parse(content string) (name, args string, ok bool) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, r.prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(content, r.prefix)
	name, args, _ = strings.Cut(rest, " ")
	name = strings.ToLower(name)
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(args), true
}

// Dispatch runs the command addressed by m. Unknown commands are ignored.
// It reports whether a command ran.
func (r *Router) Dispatch(ctx context.Context, m gateway.Message) bool {
	name, args, ok := r.parse(m.Content)
	if !ok {
		return false
	}
	cmd, ok := r.commands[name]
	if !ok {
		return false
	}

	r.logger.Info("processing command",
		logger.String("command", name),
		logger.String("channel", m.ChannelID),
		logger.String("author", m.AuthorID))

	if err := cmd.Run(ctx, Request{Message: m, Command: name, Args: args}); err != nil {
		r.logger.Error("command failed",
			logger.String("command", name),
			logger.Error(err))
	}
	return true
}

// HandleMessage adapts Dispatch to the gateway's message handler.
func (r *Router) HandleMessage(ctx context.Context, m gateway.Message) {
	r.Dispatch(ctx, m)
}
