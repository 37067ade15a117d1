package voice

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

func TestEnqueueFIFOOrder(t *testing.T) {
	s, broker := newTestSession(t)

	var mu sync.Mutex
	var started []string
	track := func(name string) *Track {
		return NewTrack(name, func() (io.ReadCloser, error) {
			mu.Lock()
			started = append(started, name)
			mu.Unlock()
			return pcmFrames(1)()
		})
	}

	names := []string{"a", "b", "c", "d"}
	var ends []<-chan EndReason
	for _, name := range names {
		tr := track(name)
		ends = append(ends, endSignal(broker, tr))
		if _, err := s.Enqueue(tr); err != nil {
			t.Fatalf("Enqueue(%s): %v", name, err)
		}
	}

	for _, ch := range ends {
		waitReason(t, ch, EndFinished)
	}
	waitIdle(t, s)

	mu.Lock()
	defer mu.Unlock()
	if len(started) != len(names) {
		t.Fatalf("started %d tracks, want %d", len(started), len(names))
	}
	for i, name := range names {
		if started[i] != name {
			t.Errorf("playback order[%d] = %s, want %s", i, started[i], name)
		}
	}
}

func TestEnqueuePositionsCountActiveSlot(t *testing.T) {
	s, _ := newTestSession(t)

	for i, name := range []string{"a", "b", "c"} {
		pos, err := s.Enqueue(NewTrack(name, pcmEndless()))
		if err != nil {
			t.Fatalf("Enqueue(%s): %v", name, err)
		}
		if pos != i+1 {
			t.Errorf("Enqueue(%s) position = %d, want %d", name, pos, i+1)
		}
	}
}

func TestSkipEmptyQueueIsIdleNoop(t *testing.T) {
	s, _ := newTestSession(t)

	remaining, err := s.Skip()
	if err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
	if s.NowPlaying() != nil {
		t.Error("session should stay idle after skipping nothing")
	}
}

func TestSkipPromotesNext(t *testing.T) {
	s, broker := newTestSession(t)

	a := NewTrack("a", pcmEndless())
	b := NewTrack("b", pcmEndless())
	aEnd := endSignal(broker, a)

	if _, err := s.Enqueue(a); err != nil {
		t.Fatalf("Enqueue(a): %v", err)
	}
	if _, err := s.Enqueue(b); err != nil {
		t.Fatalf("Enqueue(b): %v", err)
	}

	remaining, err := s.Skip()
	if err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
	if got := s.NowPlaying(); got != b {
		t.Errorf("active track = %v, want b", got)
	}
	waitReason(t, aEnd, EndStopped)
}

func TestStopAllThenEnqueueStartsOnlyNewTrack(t *testing.T) {
	s, broker := newTestSession(t)

	a := NewTrack("a", pcmEndless())
	b := NewTrack("b", pcmEndless())
	aEnd := endSignal(broker, a)
	bEnd := endSignal(broker, b)

	if _, err := s.Enqueue(a); err != nil {
		t.Fatalf("Enqueue(a): %v", err)
	}
	if _, err := s.Enqueue(b); err != nil {
		t.Fatalf("Enqueue(b): %v", err)
	}

	if err := s.StopAll(); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	waitReason(t, aEnd, EndStopped)
	waitReason(t, bEnd, EndStopped)
	if s.QueueLen() != 0 {
		t.Errorf("queue length = %d after StopAll, want 0", s.QueueLen())
	}

	c := NewTrack("c", pcmEndless())
	pos, err := s.Enqueue(c)
	if err != nil {
		t.Fatalf("Enqueue(c): %v", err)
	}
	if pos != 1 {
		t.Errorf("position = %d, want 1", pos)
	}
	if got := s.NowPlaying(); got != c {
		t.Errorf("active track = %v, want c", got)
	}
}

func TestPlayNowDisplacesActive(t *testing.T) {
	s, broker := newTestSession(t)

	b := NewTrack("b", pcmEndless())
	queued := NewTrack("queued", pcmEndless())
	c := NewTrack("c", pcmEndless())
	bEnd := endSignal(broker, b)

	if _, err := s.Enqueue(b); err != nil {
		t.Fatalf("Enqueue(b): %v", err)
	}
	if _, err := s.Enqueue(queued); err != nil {
		t.Fatalf("Enqueue(queued): %v", err)
	}

	if err := s.PlayNow(c); err != nil {
		t.Fatalf("PlayNow(c): %v", err)
	}
	if got := s.NowPlaying(); got != c {
		t.Errorf("active track = %v, want c", got)
	}
	if s.QueueLen() != 1 {
		t.Errorf("queue length = %d, want 1 (PlayNow must not touch the queue)", s.QueueLen())
	}

	waitReason(t, bEnd, EndStopped)
	select {
	case reason := <-bEnd:
		t.Fatalf("end reaction for b fired twice, second reason %v", reason)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLazySkippedTrackNeverOpens(t *testing.T) {
	s, _ := newTestSession(t)

	var mu sync.Mutex
	opened := 0
	lazy := NewTrack("lazy", func() (io.ReadCloser, error) {
		mu.Lock()
		opened++
		mu.Unlock()
		return pcmFrames(1)()
	})

	blocker := NewTrack("blocker", pcmEndless())
	if _, err := s.Enqueue(blocker); err != nil {
		t.Fatalf("Enqueue(blocker): %v", err)
	}
	if _, err := s.Enqueue(lazy); err != nil {
		t.Fatalf("Enqueue(lazy): %v", err)
	}

	if err := s.StopAll(); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	waitIdle(t, s)

	mu.Lock()
	defer mu.Unlock()
	if opened != 0 {
		t.Errorf("lazy track opened %d times after being discarded, want 0", opened)
	}
}

func TestFailedOpenAdvancesQueue(t *testing.T) {
	s, broker := newTestSession(t)

	bad := NewTrack("bad", func() (io.ReadCloser, error) {
		return nil, errBoom
	})
	good := NewTrack("good", pcmFrames(1))
	badEnd := endSignal(broker, bad)
	goodEnd := endSignal(broker, good)

	blocker := NewTrack("blocker", pcmEndless())
	if _, err := s.Enqueue(blocker); err != nil {
		t.Fatalf("Enqueue(blocker): %v", err)
	}
	if _, err := s.Enqueue(bad); err != nil {
		t.Fatalf("Enqueue(bad): %v", err)
	}
	if _, err := s.Enqueue(good); err != nil {
		t.Fatalf("Enqueue(good): %v", err)
	}

	if _, err := s.Skip(); err != nil {
		t.Fatalf("Skip: %v", err)
	}

	waitReason(t, badEnd, EndFailed)
	waitReason(t, goodEnd, EndFinished)
	waitIdle(t, s)
}

func TestMuteDeafenToggles(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.SetMute(true); err != nil {
		t.Fatalf("SetMute(true): %v", err)
	}
	if !s.Muted() {
		t.Error("session should be muted")
	}
	if err := s.SetMute(true); !errors.Is(err, ErrAlreadyInState) {
		t.Errorf("second SetMute(true) = %v, want ErrAlreadyInState", err)
	}
	if err := s.SetMute(false); err != nil {
		t.Fatalf("SetMute(false): %v", err)
	}

	if err := s.SetDeafen(false); !errors.Is(err, ErrAlreadyInState) {
		t.Errorf("SetDeafen(false) on undeafened = %v, want ErrAlreadyInState", err)
	}
	if err := s.SetDeafen(true); err != nil {
		t.Fatalf("SetDeafen(true): %v", err)
	}
	if !s.Deafened() {
		t.Error("session should be deafened")
	}
}

func TestEnqueueAfterShutdownReportsNotConnected(t *testing.T) {
	broker := NewBroker()
	reg := NewRegistry(&fakeConnector{}, broker)
	s, err := reg.GetOrCreate("g1", "c1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if err := reg.Remove("g1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, err := s.Enqueue(NewTrack("t", pcmFrames(1))); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Enqueue on closed session = %v, want ErrNotConnected", err)
	}
	if err := s.PlayNow(NewTrack("t2", pcmFrames(1))); !errors.Is(err, ErrNotConnected) {
		t.Errorf("PlayNow on closed session = %v, want ErrNotConnected", err)
	}
}
