package voice

// Connection is one live voice channel link owned by a session.
type Connection interface {
	// ChannelID is the voice channel this connection is joined to.
	ChannelID() string
	// OpusSend accepts encoded 20ms opus frames for transmission.
	OpusSend() chan<- []byte
	// Speaking toggles the speaking indicator.
	Speaking(bool) error
	// Disconnect tears the link down.
	Disconnect() error
}

// Connector dials platform voice connections. Joining a guild the bot is
// already connected to moves the existing link (and can flip the mute and
// deafen flags), matching the gateway semantics.
type Connector interface {
	Join(guildID, channelID string, muted, deafened bool) (Connection, error)
}
