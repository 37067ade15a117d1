// Package soundboard implements the bot's voice commands. Every command
// is a thin loop over the voice session primitives: one primitive per
// step, so each step is individually observable and a caller that stops
// issuing steps simply abandons the sequence.
package soundboard

import (
	"github.com/dorinm/sunetbot/internal/command"
	"github.com/dorinm/sunetbot/internal/voice"
)

const (
	// notInVoice is the shared status for commands that need a session.
	notInVoice = "Not in a voice channel to play in"

	defaultSpamRepeat  = 10
	defaultSirenRepeat = 10
	defaultBaRepeat    = 6
)

type base struct {
	deps *command.Deps
}

func (b base) Aliases() []string { return nil }

// session returns the guild's live session, or replies with the standard
// status and reports false.
func (b base) session(ctx *command.Context) (*voice.Session, bool) {
	s, ok := b.deps.Registry.Get(ctx.GuildID())
	if !ok {
		ctx.Reply(notInVoice)
		return nil, false
	}
	return s, true
}

// Register wires every soundboard command with the standard middleware.
func Register(deps *command.Deps) {
	cmds := []command.Command{
		&JoinCommand{base{deps}},
		&LeaveCommand{base{deps}},
		&PingCommand{},
		&SoundCommand{base{deps}},
		&SpamCommand{base{deps}},
		&SirenCommand{base{deps}},
		&BaCommand{base{deps}},
		&PlayCommand{base{deps}},
		&QueueCommand{base{deps}},
		&SkipCommand{base{deps}},
		&StopCommand{base{deps}},
		&SoundsCommand{base{deps}},
		&MuteCommand{base: base{deps}, mute: true},
		&MuteCommand{base: base{deps}, mute: false},
		&DeafenCommand{base: base{deps}, deafen: true},
		&DeafenCommand{base: base{deps}, deafen: false},
	}
	for _, cmd := range cmds {
		command.Register(command.Apply(cmd,
			command.WithGuildOnly(),
			command.WithCommandLogger(),
		))
	}
}
