package voice

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dorinm/sunetbot/internal/stream"
)

// Session is the live voice state for one guild: the connection, the
// mute/deafen flags, the pending queue and the active track. Every public
// operation is serialized by the session's own mutex, so commands for
// different guilds run in parallel while commands for the same guild are
// linearized in lock-acquisition order.
type Session struct {
	guildID string

	connector Connector
	broker    *Broker

	mu       sync.Mutex
	conn     Connection
	muted    bool
	deafened bool
	queue    TrackQueue
	active   *Track
	closed   bool
}

func newSession(guildID string, conn Connection, connector Connector, broker *Broker) *Session {
	return &Session{
		guildID:   guildID,
		conn:      conn,
		connector: connector,
		broker:    broker,
	}
}

// GuildID returns the owning guild.
func (s *Session) GuildID() string {
	return s.guildID
}

// Channel returns the voice channel the session is joined to.
func (s *Session) Channel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ""
	}
	return s.conn.ChannelID()
}

// QueueLen returns the number of tracks waiting behind the active one.
func (s *Session) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// NowPlaying returns the active track, or nil when idle.
func (s *Session) NowPlaying() *Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// PlayNow discards the active track, if any, and starts t immediately. The
// queue is left untouched; the displaced track's end reaction fires with
// EndStopped.
func (s *Session) PlayNow(t *Track) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		t.Stop()
		return ErrNotConnected
	}
	old := s.active
	s.startLocked(t)
	if old != nil {
		old.Stop()
	}
	s.mu.Unlock()

	log.Debug().Str("module", "voice.session").Str("guild", s.guildID).
		Str("track", t.Title()).Bool("interrupted", old != nil).Msg("play now")
	return nil
}

// Enqueue appends t to the queue, promoting it to active immediately when
// nothing is playing. The returned position is 1-based and counts the
// active slot, so the first track of an idle session is position 1.
func (s *Session) Enqueue(t *Track) (int, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		t.Stop()
		return 0, ErrNotConnected
	}

	var pos int
	if s.active == nil {
		s.startLocked(t)
		pos = 1
	} else {
		s.queue.PushBack(t)
		pos = 1 + s.queue.Len()
	}
	s.mu.Unlock()

	log.Debug().Str("module", "voice.session").Str("guild", s.guildID).
		Str("track", t.Title()).Int("position", pos).Msg("enqueued")
	return pos, nil
}

// Skip stops the active track and promotes the next queued one. It returns
// the number of tracks still queued after promotion; skipping an idle
// session is a no-op returning 0.
func (s *Session) Skip() (int, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrNotConnected
	}

	old := s.active
	if old != nil {
		s.active = nil
		old.Stop()
	}
	if next := s.queue.PopFront(); next != nil {
		s.startLocked(next)
	}
	remaining := s.queue.Len()
	s.mu.Unlock()

	log.Debug().Str("module", "voice.session").Str("guild", s.guildID).
		Int("remaining", remaining).Msg("skipped")
	return remaining, nil
}

// StopAll clears the queue and halts the active track under a single lock
// hold, so no queued track can start between the two. The session stays
// connected but idle.
func (s *Session) StopAll() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrNotConnected
	}
	dropped := s.haltLocked()
	s.mu.Unlock()

	// Queued tracks never had a playback goroutine; their end reactions
	// fire here. The active track's reaction fires from its goroutine.
	for _, t := range dropped {
		s.broker.trackEnded(s, t, EndStopped)
	}

	log.Debug().Str("module", "voice.session").Str("guild", s.guildID).
		Int("dropped", len(dropped)).Msg("playback stopped")
	return nil
}

// SetMute toggles server-side self mute. Asking for the current state is
// reported as ErrAlreadyInState, which callers surface as a status.
func (s *Session) SetMute(muted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNotConnected
	}
	if s.muted == muted {
		return ErrAlreadyInState
	}

	conn, err := s.connector.Join(s.guildID, s.conn.ChannelID(), muted, s.deafened)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	s.conn = conn
	s.muted = muted
	return nil
}

// SetDeafen toggles server-side self deafen, with the same contract as
// SetMute.
func (s *Session) SetDeafen(deafened bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNotConnected
	}
	if s.deafened == deafened {
		return ErrAlreadyInState
	}

	conn, err := s.connector.Join(s.guildID, s.conn.ChannelID(), s.muted, deafened)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	s.conn = conn
	s.deafened = deafened
	return nil
}

// Muted reports the self-mute flag.
func (s *Session) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Deafened reports the self-deafen flag.
func (s *Session) Deafened() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deafened
}

// MoveTo moves the session to another voice channel, keeping the current
// mute/deafen flags and whatever is playing.
func (s *Session) MoveTo(channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNotConnected
	}
	if s.conn.ChannelID() == channelID {
		return nil
	}

	conn, err := s.connector.Join(s.guildID, channelID, s.muted, s.deafened)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	s.conn = conn
	return nil
}

// startLocked assigns the active slot and spawns the playback goroutine.
// The lazy source open and the streaming both happen in the goroutine, so
// the session lock is never held across decode I/O.
func (s *Session) startLocked(t *Track) {
	s.active = t
	go s.playTrack(t, s.conn)
}

func (s *Session) playTrack(t *Track, conn Connection) {
	src, err := t.Open()
	if err != nil {
		if errors.Is(err, ErrTrackStopped) {
			s.finishTrack(t, EndStopped)
			return
		}
		log.Error().Str("module", "voice.session").Str("guild", s.guildID).
			Str("track", t.Title()).Err(err).Msg("failed to open track source")
		s.finishTrack(t, EndFailed)
		return
	}
	defer src.Close()

	if err := conn.Speaking(true); err != nil {
		log.Warn().Str("module", "voice.session").Str("guild", s.guildID).
			Err(err).Msg("failed to set speaking state")
	}
	defer func() {
		if err := conn.Speaking(false); err != nil {
			log.Warn().Str("module", "voice.session").Str("guild", s.guildID).
				Err(err).Msg("failed to clear speaking state")
		}
	}()

	err = stream.Send(src, t.Volume, t.Stopped(), conn.OpusSend())
	switch {
	case err == nil:
		s.finishTrack(t, EndFinished)
	case errors.Is(err, stream.ErrHalted):
		s.finishTrack(t, EndStopped)
	default:
		log.Error().Str("module", "voice.session").Str("guild", s.guildID).
			Str("track", t.Title()).Err(err).Msg("playback error")
		s.finishTrack(t, EndFailed)
	}
}

// finishTrack is the end-of-track notification path. Auto-advance happens
// only if t is still the active track; a racing PlayNow or Skip has already
// replaced it otherwise.
func (s *Session) finishTrack(t *Track, reason EndReason) {
	s.mu.Lock()
	if s.active == t {
		s.active = nil
		if !s.closed {
			if next := s.queue.PopFront(); next != nil {
				s.startLocked(next)
			}
		}
	}
	s.mu.Unlock()

	s.broker.trackEnded(s, t, reason)
}

// haltLocked drops every pending track and halts the active one. Caller
// holds s.mu. Returns the queued tracks that never started, so their end
// reactions can be fired outside the lock.
func (s *Session) haltLocked() []*Track {
	var dropped []*Track
	for {
		t := s.queue.PopFront()
		if t == nil {
			break
		}
		t.Stop()
		dropped = append(dropped, t)
	}
	if s.active != nil {
		s.active.Stop()
		s.active = nil
	}
	return dropped
}

// shutdown disconnects and permanently closes the session. On disconnect
// failure the session is left untouched so the registry can retain it.
func (s *Session) shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if err := s.conn.Disconnect(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrDisconnectFailed, err)
	}
	s.closed = true
	dropped := s.haltLocked()
	s.conn = nil
	s.mu.Unlock()

	for _, t := range dropped {
		s.broker.trackEnded(s, t, EndStopped)
	}
	return nil
}
