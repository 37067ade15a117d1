package voice

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Greeting plays a short clip when the bot's own member lands in its
// session channel having not been in that channel before. Moves between
// unrelated channels and no-op updates (old == new) never trigger it.
type Greeting struct {
	registry *Registry
	selfID   string
	build    func() (*Track, error)

	// Volume applied to the greeting track.
	Volume float64
	// Delay before the clip starts, so the join notification sound has
	// finished for the people already in the channel.
	Delay time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewGreeting wires a greeting reaction. build produces a fresh track per
// firing; a rapid join/leave toggle is kept from machine-gunning the clip
// by a per-guild limiter.
func NewGreeting(registry *Registry, selfID string, build func() (*Track, error)) *Greeting {
	return &Greeting{
		registry: registry,
		selfID:   selfID,
		build:    build,
		Volume:   0.25,
		Delay:    time.Second,
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(5 * time.Second),
	}
}

// React is the VoiceStateReaction entry point.
func (g *Greeting) React(guildID, userID, oldChannel, newChannel string) error {
	if userID != g.selfID {
		return nil
	}
	if newChannel == "" || oldChannel == newChannel {
		return nil
	}

	s, ok := g.registry.Get(guildID)
	if !ok {
		return nil
	}
	if s.Channel() != newChannel {
		return nil
	}
	if !g.limiter(guildID).Allow() {
		return nil
	}

	if g.Delay > 0 {
		time.Sleep(g.Delay)
	}

	t, err := g.build()
	if err != nil {
		return fmt.Errorf("building greeting track: %w", err)
	}
	t.SetVolume(g.Volume)
	return s.PlayNow(t)
}

func (g *Greeting) limiter(guildID string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.limiters[guildID]
	if !ok {
		l = rate.NewLimiter(g.limit, 1)
		g.limiters[guildID] = l
	}
	return l
}
