package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dorinm/sunetbot/internal/voice"
)

// connection adapts a discordgo voice connection to the voice layer.
type connection struct {
	vc *discordgo.VoiceConnection
}

func (c *connection) ChannelID() string {
	c.vc.RLock()
	defer c.vc.RUnlock()
	return c.vc.ChannelID
}

func (c *connection) OpusSend() chan<- []byte {
	return c.vc.OpusSend
}

func (c *connection) Speaking(on bool) error {
	return c.vc.Speaking(on)
}

func (c *connection) Disconnect() error {
	return c.vc.Disconnect()
}

// connector joins voice channels through the gateway session. discordgo
// treats a repeat ChannelVoiceJoin for a connected guild as a move or a
// mute/deafen update, which is exactly what the voice layer expects.
type connector struct {
	dg *discordgo.Session
}

func newConnector(dg *discordgo.Session) *connector {
	return &connector{dg: dg}
}

func (c *connector) Join(guildID, channelID string, muted, deafened bool) (voice.Connection, error) {
	vc, err := c.dg.ChannelVoiceJoin(guildID, channelID, muted, deafened)
	if err != nil {
		return nil, fmt.Errorf("voice join %s/%s: %w", guildID, channelID, err)
	}
	return &connection{vc: vc}, nil
}
