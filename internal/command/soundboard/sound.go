package soundboard

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dorinm/sunetbot/internal/command"
)

type SoundCommand struct{ base }

func (c *SoundCommand) Name() string        { return "sound" }
func (c *SoundCommand) Aliases() []string   { return []string{"s"} }
func (c *SoundCommand) Description() string { return "Play a sound clip, cutting off the current one" }

func (c *SoundCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		ctx.Reply("Must provide a sound name")
		return nil
	}
	s, ok := c.session(ctx)
	if !ok {
		return nil
	}
	track, err := c.deps.Resolver.File(ctx.Args[0], false)
	if err != nil {
		ctx.Reply("Invalid sound name")
		return nil
	}
	if err := s.PlayNow(track); err != nil {
		ctx.Reply(notInVoice)
	}
	return nil
}

type SpamCommand struct{ base }

func (c *SpamCommand) Name() string        { return "spam" }
func (c *SpamCommand) Description() string { return "Play a sound clip over and over" }

func (c *SpamCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		ctx.Reply("Must provide a sound name")
		return nil
	}
	name := ctx.Args[0]
	s, ok := c.session(ctx)
	if !ok {
		return nil
	}
	repeat := repeatCount(ctx.Args[1:], defaultSpamRepeat)
	for i := 0; i < repeat; i++ {
		// Cutting in at an uneven cadence is the whole joke.
		time.Sleep(time.Duration(25+rand.IntN(101)) * time.Millisecond)
		track, err := c.deps.Resolver.File(name, false)
		if err != nil {
			ctx.Reply("Invalid sound name")
			return nil
		}
		if err := s.PlayNow(track); err != nil {
			return fmt.Errorf("spam %s: %w", name, err)
		}
	}
	return nil
}
