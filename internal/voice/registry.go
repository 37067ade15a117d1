package voice

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Registry is the process-wide map of guild ID to voice session. A session
// is present iff the bot is connected for that guild; at most one session
// ever exists per guild, even when joins race.
type Registry struct {
	connector Connector
	broker    *Broker

	// mu guards the maps only. Session contents have their own lock, and
	// connection dialing happens under the per-guild joining lock so the
	// map mutex is never held across network I/O.
	mu       sync.Mutex
	sessions map[string]*Session
	joining  map[string]*sync.Mutex
}

// NewRegistry creates an empty registry dialing through connector and
// reporting track lifecycle through broker.
func NewRegistry(connector Connector, broker *Broker) *Registry {
	return &Registry{
		connector: connector,
		broker:    broker,
		sessions:  make(map[string]*Session),
		joining:   make(map[string]*sync.Mutex),
	}
}

// Broker returns the event broker shared by all sessions.
func (r *Registry) Broker() *Broker {
	return r.broker
}

// GetOrCreate returns the guild's session, connecting to channelID and
// inserting a new one when absent. On a failed connect the guild is left
// with no session and ErrConnectionFailed is returned.
func (r *Registry) GetOrCreate(guildID, channelID string) (*Session, error) {
	lock := r.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	s, ok := r.sessions[guildID]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	conn, err := r.connector.Join(guildID, channelID, false, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	s = newSession(guildID, conn, r.connector, r.broker)
	r.mu.Lock()
	r.sessions[guildID] = s
	r.mu.Unlock()

	log.Info().Str("module", "voice.registry").Str("guild", guildID).
		Str("channel", channelID).Msg("voice session created")
	return s, nil
}

// Get returns the guild's session without connecting.
func (r *Registry) Get(guildID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[guildID]
	return s, ok
}

// Remove disconnects and discards the guild's session. ErrNotConnected
// when none exists; callers treat that as a benign no-op. On a failed
// disconnect the session is retained.
func (r *Registry) Remove(guildID string) error {
	lock := r.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	s, ok := r.sessions[guildID]
	r.mu.Unlock()
	if !ok {
		return ErrNotConnected
	}

	if err := s.shutdown(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.sessions, guildID)
	r.mu.Unlock()

	log.Info().Str("module", "voice.registry").Str("guild", guildID).
		Msg("voice session removed")
	return nil
}

// Shutdown disconnects every session. Used at process teardown; failures
// are logged and the teardown continues.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	guilds := make([]string, 0, len(r.sessions))
	for guildID := range r.sessions {
		guilds = append(guilds, guildID)
	}
	r.mu.Unlock()

	for _, guildID := range guilds {
		if err := r.Remove(guildID); err != nil {
			log.Warn().Str("module", "voice.registry").Str("guild", guildID).
				Err(err).Msg("failed to remove session during shutdown")
		}
	}
}

// guildLock returns the per-guild creation lock, so check-then-insert is
// serialized per guild without blocking other guilds.
func (r *Registry) guildLock(guildID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.joining[guildID]
	if !ok {
		lock = &sync.Mutex{}
		r.joining[guildID] = lock
	}
	return lock
}
