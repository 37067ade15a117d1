package soundboard

import (
	"fmt"

	"github.com/dorinm/sunetbot/internal/command"
	"github.com/dorinm/sunetbot/internal/voice"
)

type PlayCommand struct{ base }

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Aliases() []string   { return []string{"p"} }
func (c *PlayCommand) Description() string { return "Play a YouTube URL, or queue it if busy" }

func (c *PlayCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		ctx.Reply("Must provide a URL to a video or audio")
		return nil
	}
	s, ok := c.session(ctx)
	if !ok {
		return nil
	}
	track, err := c.deps.Resolver.URL(ctx.Args[0], false)
	if err != nil {
		ctx.Reply("Error sourcing ffmpeg")
		return fmt.Errorf("play %s: %w", ctx.Args[0], err)
	}
	c.announceEnd(ctx, track)
	if _, err := s.Enqueue(track); err != nil {
		ctx.Reply(notInVoice)
		return nil
	}
	ctx.Reply("Playing song")
	return nil
}

// announceEnd posts a channel message when the track finishes naturally.
// Skips and stops stay quiet.
func (c *PlayCommand) announceEnd(ctx *command.Context, track *voice.Track) {
	channelID := ctx.Message.ChannelID
	session := ctx.Session
	c.deps.Broker.OnTrackEnd(track, func(_ *voice.Session, t *voice.Track, reason voice.EndReason) error {
		if reason != voice.EndFinished {
			return nil
		}
		_, err := session.ChannelMessageSend(channelID, fmt.Sprintf("Finished playing %s", t.Title()))
		return err
	})
}

type QueueCommand struct{ base }

func (c *QueueCommand) Name() string        { return "queue" }
func (c *QueueCommand) Aliases() []string   { return []string{"q"} }
func (c *QueueCommand) Description() string { return "Add a YouTube URL to the queue" }

func (c *QueueCommand) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		ctx.Reply("Must provide a URL to a video or audio")
		return nil
	}
	s, ok := c.session(ctx)
	if !ok {
		return nil
	}
	track, err := c.deps.Resolver.URL(ctx.Args[0], true)
	if err != nil {
		ctx.Reply("Error sourcing ffmpeg")
		return fmt.Errorf("queue %s: %w", ctx.Args[0], err)
	}
	pos, err := s.Enqueue(track)
	if err != nil {
		ctx.Reply(notInVoice)
		return nil
	}
	ctx.Reply(fmt.Sprintf("Added song to queue: position %d", pos))
	return nil
}

type SkipCommand struct{ base }

func (c *SkipCommand) Name() string        { return "skip" }
func (c *SkipCommand) Description() string { return "Skip the current song" }

func (c *SkipCommand) Run(ctx *command.Context) error {
	s, ok := c.session(ctx)
	if !ok {
		return nil
	}
	remaining, err := s.Skip()
	if err != nil {
		ctx.Reply(notInVoice)
		return nil
	}
	ctx.Reply(fmt.Sprintf("Song skipped: %d in queue.", remaining))
	return nil
}

type StopCommand struct{ base }

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop playback and clear the queue" }

func (c *StopCommand) Run(ctx *command.Context) error {
	s, ok := c.session(ctx)
	if !ok {
		return nil
	}
	if err := s.StopAll(); err != nil {
		ctx.Reply(notInVoice)
		return nil
	}
	ctx.Reply("Queue cleared.")
	return nil
}
