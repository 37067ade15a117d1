// Package discord hosts the gateway-facing side of the bot: the session,
// event handlers, and the adapters that let the voice layer drive a real
// Discord voice connection.
package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/dorinm/sunetbot/internal/command"
	"github.com/dorinm/sunetbot/internal/command/soundboard"
	"github.com/dorinm/sunetbot/internal/config"
	"github.com/dorinm/sunetbot/internal/resolver"
	"github.com/dorinm/sunetbot/internal/sounds"
	"github.com/dorinm/sunetbot/internal/textutil"
	"github.com/dorinm/sunetbot/internal/voice"
)

// Bot is the Discord soundboard bot.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	registry *voice.Registry
	broker   *voice.Broker
	deps     *command.Deps
}

// StartBot runs the bot until ctx is cancelled, then tears down every
// voice session before closing the gateway.
func StartBot(ctx context.Context, cfg *config.Config) error {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	library := sounds.NewLibrary(cfg.SoundsDir)
	res := resolver.New(library, cfg.YouTubeProxy)
	broker := voice.NewBroker()
	registry := voice.NewRegistry(newConnector(dg), broker)

	b := &Bot{
		dg:       dg,
		cfg:      cfg,
		registry: registry,
		broker:   broker,
		deps: &command.Deps{
			Registry: registry,
			Resolver: res,
			Library:  library,
			Broker:   broker,
		},
	}
	soundboard.Register(b.deps)

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onVoiceStateUpdate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	greeting := voice.NewGreeting(registry, dg.State.User.ID, func() (*voice.Track, error) {
		return res.File(cfg.GreetingSound, false)
	})
	broker.OnVoiceState(greeting.React)

	<-ctx.Done()
	log.Info().Str("module", "discord").Msg("shutdown signal received, cleaning up")
	registry.Shutdown()
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().Str("module", "discord").
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("connected")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}

	if b.mentionsSelf(s, m) {
		b.handleMentionKeywords(m)
		return
	}

	if !strings.HasPrefix(m.Content, b.cfg.CommandPrefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(m.Content, b.cfg.CommandPrefix))
	if len(fields) == 0 {
		return
	}
	cmd, ok := command.Get(strings.ToLower(fields[0]))
	if !ok {
		return
	}
	ctx := &command.Context{Session: s, Message: m, Args: fields[1:]}
	if err := cmd.Run(ctx); err != nil {
		log.Error().Str("module", "discord").Str("command", cmd.Name()).
			Str("guild", m.GuildID).Err(err).Msg("command failed")
	}
}

func (b *Bot) mentionsSelf(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	for _, user := range m.Mentions {
		if user.ID == s.State.User.ID {
			return true
		}
	}
	return false
}

// handleMentionKeywords mutes or unmutes the bot when a mention carries
// one of the magic words, diacritics ignored so "tăcuși" still counts.
func (b *Bot) handleMentionKeywords(m *discordgo.MessageCreate) {
	content := strings.ToLower(textutil.StripDiacritics(m.Content))

	var mute bool
	switch {
	case strings.Contains(content, "tacusi"):
		mute = true
	case strings.Contains(content, "glumesc"):
		mute = false
	default:
		return
	}

	sess, ok := b.registry.Get(m.GuildID)
	if !ok {
		return
	}
	if err := sess.SetMute(mute); err != nil {
		log.Debug().Str("module", "discord").Str("guild", m.GuildID).
			Bool("mute", mute).Err(err).Msg("mention keyword mute skipped")
	}
}

func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	oldChannel := ""
	if v.BeforeUpdate != nil {
		oldChannel = v.BeforeUpdate.ChannelID
	}
	b.broker.HandleVoiceState(v.GuildID, v.UserID, oldChannel, v.ChannelID)
}
