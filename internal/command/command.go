package command

import (
	"github.com/bwmarrin/discordgo"

	"github.com/dorinm/sunetbot/internal/resolver"
	"github.com/dorinm/sunetbot/internal/sounds"
	"github.com/dorinm/sunetbot/internal/voice"
)

// Deps is what commands get to work with: the voice core plus its
// collaborators.
type Deps struct {
	Registry *voice.Registry
	Resolver *resolver.Resolver
	Library  *sounds.Library
	Broker   *voice.Broker
}

// Context carries one invocation of a prefix command.
type Context struct {
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Args    []string
}

// GuildID of the invoking message; empty in DMs.
func (c *Context) GuildID() string {
	return c.Message.GuildID
}

// Reply sends a plain text reply to the invoking channel. Send failures
// are the caller's to ignore; commands never fail on a reply.
func (c *Context) Reply(text string) {
	_, _ = c.Session.ChannelMessageSend(c.Message.ChannelID, text)
}

// ReplyEmbed sends an embed reply to the invoking channel.
func (c *Context) ReplyEmbed(e *discordgo.MessageEmbed) {
	_, _ = c.Session.ChannelMessageSendEmbed(c.Message.ChannelID, e)
}

// AuthorVoiceChannel finds the voice channel the invoking user is in, or
// empty when they are not in one.
func (c *Context) AuthorVoiceChannel() string {
	guild, err := c.Session.State.Guild(c.Message.GuildID)
	if err != nil {
		return ""
	}
	for _, vs := range guild.VoiceStates {
		if vs.UserID == c.Message.Author.ID {
			return vs.ChannelID
		}
	}
	return ""
}

// Command is one prefix command.
type Command interface {
	Name() string
	Aliases() []string
	Description() string
	Run(ctx *Context) error
}
