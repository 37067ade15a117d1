package command

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Middleware wraps a command with a cross-cutting concern.
type Middleware func(Command) Command

// Apply wraps cmd with the given middlewares, first one outermost.
func Apply(cmd Command, mws ...Middleware) Command {
	for i := len(mws) - 1; i >= 0; i-- {
		cmd = mws[i](cmd)
	}
	return cmd
}

type wrappedCommand struct {
	Command
	wrap func(ctx *Context) error
}

func (w *wrappedCommand) Run(ctx *Context) error {
	return w.wrap(ctx)
}

// WithGuildOnly rejects invocations outside a guild.
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *Context) error {
				if ctx.GuildID() == "" {
					ctx.Reply("This command only works in a server.")
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithCommandLogger logs every invocation with its outcome and duration.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *Context) error {
				start := time.Now()
				err := cmd.Run(ctx)
				evt := log.Info()
				if err != nil {
					evt = log.Error().Err(err)
				}
				evt.Str("module", "command").
					Str("command", cmd.Name()).
					Str("guild", ctx.GuildID()).
					Str("user", ctx.Message.Author.ID).
					Dur("took", time.Since(start)).
					Msg("command handled")
				return err
			},
		}
	}
}
