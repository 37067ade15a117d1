package voice

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// EndReaction is invoked exactly once when a track finishes, is skipped,
// stopped or fails. reason says which.
type EndReaction func(s *Session, t *Track, reason EndReason) error

// VoiceStateReaction is invoked whenever a participant's voice channel
// membership changes. oldChannel/newChannel are empty when the member was
// not in a channel on that side of the change.
type VoiceStateReaction func(guildID, userID, oldChannel, newChannel string) error

// Broker dispatches asynchronous track and voice-state events to a small
// fixed set of reactions. Reaction failures are logged and swallowed: the
// delivery paths also service unrelated guilds and must never break.
type Broker struct {
	mu      sync.Mutex
	byTrack map[*Track][]EndReaction
	onState []VoiceStateReaction
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		byTrack: make(map[*Track][]EndReaction),
	}
}

// OnTrackEnd registers a one-shot reaction for t. It fires exactly once
// per track instance, with EndStopped if the track is discarded before it
// ends naturally.
func (b *Broker) OnTrackEnd(t *Track, fn EndReaction) {
	b.mu.Lock()
	b.byTrack[t] = append(b.byTrack[t], fn)
	b.mu.Unlock()
}

// OnVoiceState registers a reaction for participant channel changes.
func (b *Broker) OnVoiceState(fn VoiceStateReaction) {
	b.mu.Lock()
	b.onState = append(b.onState, fn)
	b.mu.Unlock()
}

// HandleVoiceState fans a platform voice-state change out to the
// registered reactions.
func (b *Broker) HandleVoiceState(guildID, userID, oldChannel, newChannel string) {
	b.mu.Lock()
	reactions := make([]VoiceStateReaction, len(b.onState))
	copy(reactions, b.onState)
	b.mu.Unlock()

	for _, fn := range reactions {
		if err := fn(guildID, userID, oldChannel, newChannel); err != nil {
			log.Error().Str("module", "voice.broker").Str("guild", guildID).
				Str("user", userID).Err(err).Msg("voice-state reaction failed")
		}
	}
}

// trackEnded fires the end reactions for t. The track's own once-guard
// makes a second report for the same instance a no-op.
func (b *Broker) trackEnded(s *Session, t *Track, reason EndReason) {
	t.endOnce.Do(func() {
		b.mu.Lock()
		reactions := b.byTrack[t]
		delete(b.byTrack, t)
		b.mu.Unlock()

		for _, fn := range reactions {
			if err := fn(s, t, reason); err != nil {
				log.Error().Str("module", "voice.broker").Str("guild", s.guildID).
					Str("track", t.Title()).Str("reason", reason.String()).
					Err(err).Msg("track-end reaction failed")
			}
		}
	})
}
