package voice

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

// fakeConn is an in-memory Connection. The opus channel is buffered large
// enough that short test tracks never block the send loop.
type fakeConn struct {
	channelID string
	opus      chan []byte

	mu           sync.Mutex
	disconnected bool
	disconnectErr error
}

func newFakeConn(channelID string) *fakeConn {
	return &fakeConn{
		channelID: channelID,
		opus:      make(chan []byte, 4096),
	}
}

func (c *fakeConn) ChannelID() string        { return c.channelID }
func (c *fakeConn) OpusSend() chan<- []byte  { return c.opus }
func (c *fakeConn) Speaking(bool) error      { return nil }

func (c *fakeConn) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disconnectErr != nil {
		return c.disconnectErr
	}
	c.disconnected = true
	return nil
}

// fakeConnector hands out fakeConns and records join calls.
type fakeConnector struct {
	mu      sync.Mutex
	joins   int
	joinErr error
	lastMute, lastDeaf bool
	conns   []*fakeConn
}

func (f *fakeConnector) Join(guildID, channelID string, muted, deafened bool) (Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joins++
	f.lastMute, f.lastDeaf = muted, deafened
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	c := newFakeConn(channelID)
	f.conns = append(f.conns, c)
	return c, nil
}

func (f *fakeConnector) joinCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.joins
}

// pcmFrames returns an OpenFunc producing n frames of silence, so the
// track finishes naturally after n*20ms of audio.
func pcmFrames(n int) OpenFunc {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(&silenceReader{remaining: n * 960 * 2 * 2}), nil
	}
}

// pcmEndless returns an OpenFunc producing silence forever; the track only
// ends when stopped.
func pcmEndless() OpenFunc {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(&silenceReader{remaining: -1}), nil
	}
}

type silenceReader struct {
	remaining int // bytes left, -1 for unbounded
}

func (r *silenceReader) Read(p []byte) (int, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}
	n := len(p)
	if r.remaining > 0 && n > r.remaining {
		n = r.remaining
	}
	for i := 0; i < n; i++ {
		p[i] = 0
	}
	if r.remaining > 0 {
		r.remaining -= n
	}
	return n, nil
}

// newTestSession builds a connected session around fakes.
func newTestSession(t *testing.T) (*Session, *Broker) {
	t.Helper()
	broker := NewBroker()
	reg := NewRegistry(&fakeConnector{}, broker)
	s, err := reg.GetOrCreate("g1", "c1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	return s, broker
}

// endSignal registers an end reaction for tr and returns a channel that
// receives the reason every time the reaction fires.
func endSignal(broker *Broker, tr *Track) <-chan EndReason {
	ch := make(chan EndReason, 4)
	broker.OnTrackEnd(tr, func(_ *Session, _ *Track, reason EndReason) error {
		ch <- reason
		return nil
	})
	return ch
}

func waitReason(t *testing.T, ch <-chan EndReason, want EndReason) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("end reason = %v, want %v", got, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for end reason %v", want)
	}
}

func waitIdle(t *testing.T, s *Session) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if s.NowPlaying() == nil && s.QueueLen() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("session did not become idle")
}

var errBoom = errors.New("boom")
