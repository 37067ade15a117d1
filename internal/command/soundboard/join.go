package soundboard

import (
	"errors"
	"fmt"

	"github.com/dorinm/sunetbot/internal/command"
	"github.com/dorinm/sunetbot/internal/voice"
)

type JoinCommand struct{ base }

func (c *JoinCommand) Name() string        { return "join" }
func (c *JoinCommand) Description() string { return "Join your current voice channel" }

func (c *JoinCommand) Run(ctx *command.Context) error {
	channelID := ctx.AuthorVoiceChannel()
	if channelID == "" {
		ctx.Reply("You are not in a voice channel")
		return nil
	}
	s, err := c.deps.Registry.GetOrCreate(ctx.GuildID(), channelID)
	if err != nil {
		ctx.Reply("Error joining channel")
		return fmt.Errorf("join guild %s: %w", ctx.GuildID(), err)
	}
	if s.Channel() != channelID {
		if err := s.MoveTo(channelID); err != nil {
			ctx.Reply("Error joining channel")
			return fmt.Errorf("move guild %s: %w", ctx.GuildID(), err)
		}
	}
	ctx.Reply(fmt.Sprintf("Joined <#%s>", channelID))
	return nil
}

type LeaveCommand struct{ base }

func (c *LeaveCommand) Name() string        { return "leave" }
func (c *LeaveCommand) Description() string { return "Leave the voice channel" }

func (c *LeaveCommand) Run(ctx *command.Context) error {
	switch err := c.deps.Registry.Remove(ctx.GuildID()); {
	case errors.Is(err, voice.ErrNotConnected):
		ctx.Reply(notInVoice)
		return nil
	case err != nil:
		ctx.Reply("Error leaving channel")
		return fmt.Errorf("leave guild %s: %w", ctx.GuildID(), err)
	}
	ctx.Reply("Left voice channel")
	return nil
}
