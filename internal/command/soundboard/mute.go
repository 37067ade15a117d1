package soundboard

import (
	"errors"
	"fmt"

	"github.com/dorinm/sunetbot/internal/command"
	"github.com/dorinm/sunetbot/internal/voice"
)

type MuteCommand struct {
	base
	mute bool
}

func (c *MuteCommand) Name() string {
	if c.mute {
		return "mute"
	}
	return "unmute"
}

func (c *MuteCommand) Description() string {
	if c.mute {
		return "Mute the bot in voice"
	}
	return "Unmute the bot in voice"
}

func (c *MuteCommand) Run(ctx *command.Context) error {
	s, ok := c.session(ctx)
	if !ok {
		return nil
	}
	switch err := s.SetMute(c.mute); {
	case errors.Is(err, voice.ErrAlreadyInState):
		if c.mute {
			ctx.Reply("Already muted")
		} else {
			ctx.Reply("Not muted")
		}
		return nil
	case err != nil:
		return fmt.Errorf("%s guild %s: %w", c.Name(), ctx.GuildID(), err)
	}
	if c.mute {
		ctx.Reply("Now muted")
	} else {
		ctx.Reply("Now unmuted")
	}
	return nil
}

type DeafenCommand struct {
	base
	deafen bool
}

func (c *DeafenCommand) Name() string {
	if c.deafen {
		return "deafen"
	}
	return "undeafen"
}

func (c *DeafenCommand) Description() string {
	if c.deafen {
		return "Deafen the bot in voice"
	}
	return "Undeafen the bot in voice"
}

func (c *DeafenCommand) Run(ctx *command.Context) error {
	s, ok := c.session(ctx)
	if !ok {
		return nil
	}
	switch err := s.SetDeafen(c.deafen); {
	case errors.Is(err, voice.ErrAlreadyInState):
		if c.deafen {
			ctx.Reply("Already deafened")
		} else {
			ctx.Reply("Not deafened")
		}
		return nil
	case err != nil:
		return fmt.Errorf("%s guild %s: %w", c.Name(), ctx.GuildID(), err)
	}
	if c.deafen {
		ctx.Reply("Now deafened")
	} else {
		ctx.Reply("Now undeafened")
	}
	return nil
}
