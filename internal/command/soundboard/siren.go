package soundboard

import (
	"fmt"
	"time"

	"github.com/dorinm/sunetbot/internal/command"
)

type SirenCommand struct{ base }

func (c *SirenCommand) Name() string        { return "siren" }
func (c *SirenCommand) Description() string { return "Queue an alternating left/right siren" }

func (c *SirenCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		ctx.Reply("Must provide a siren variant (tense or taci)")
		return nil
	}
	variant := ctx.Args[0]
	if variant != "tense" && variant != "taci" {
		ctx.Reply("Must provide a siren variant (tense or taci)")
		return nil
	}
	s, ok := c.session(ctx)
	if !ok {
		return nil
	}
	repeat := repeatCount(ctx.Args[1:], defaultSirenRepeat)
	for i := 0; i < repeat; i++ {
		side := "l"
		if i%2 == 1 {
			side = "r"
		}
		track, err := c.deps.Resolver.File(variant+side+".ogg", true)
		if err != nil {
			return fmt.Errorf("siren %s: %w", variant, err)
		}
		if _, err := s.Enqueue(track); err != nil {
			return fmt.Errorf("siren %s: %w", variant, err)
		}
	}
	return nil
}

type BaCommand struct{ base }

func (c *BaCommand) Name() string        { return "ba" }
func (c *BaCommand) Description() string { return "Rapidly hop in and out of the voice channel" }

func (c *BaCommand) Run(ctx *command.Context) error {
	channelID := ctx.AuthorVoiceChannel()
	if channelID == "" {
		ctx.Reply("You are not in a voice channel")
		return nil
	}
	repeat := repeatCount(ctx.Args, defaultBaRepeat)
	guildID := ctx.GuildID()
	for i := 0; i < repeat; i++ {
		if _, err := c.deps.Registry.GetOrCreate(guildID, channelID); err != nil {
			return fmt.Errorf("ba join guild %s: %w", guildID, err)
		}
		time.Sleep(500 * time.Millisecond)
		if err := c.deps.Registry.Remove(guildID); err != nil {
			return fmt.Errorf("ba leave guild %s: %w", guildID, err)
		}
		time.Sleep(500 * time.Millisecond)
	}
	// The gag ends with the bot sitting in the channel.
	if _, err := c.deps.Registry.GetOrCreate(guildID, channelID); err != nil {
		return fmt.Errorf("ba rejoin guild %s: %w", guildID, err)
	}
	return nil
}
