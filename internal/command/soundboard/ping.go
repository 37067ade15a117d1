package soundboard

import "github.com/dorinm/sunetbot/internal/command"

type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Aliases() []string   { return nil }
func (c *PingCommand) Description() string { return "Check that the bot is alive" }

func (c *PingCommand) Run(ctx *command.Context) error {
	ctx.Reply("Pong!")
	return nil
}
