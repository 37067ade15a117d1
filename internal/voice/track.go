package voice

import (
	"errors"
	"io"
	"math"
	"sync"
	"sync/atomic"
)

// EndReason says how a track's playback ended.
type EndReason int

const (
	// EndFinished means the source drained naturally.
	EndFinished EndReason = iota
	// EndStopped means the track was skipped, stopped or displaced by
	// another track before it could finish.
	EndStopped
	// EndFailed means the source could not be opened or broke mid-stream.
	EndFailed
)

func (r EndReason) String() string {
	switch r {
	case EndFinished:
		return "finished"
	case EndStopped:
		return "stopped"
	case EndFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrTrackStopped is returned by Open when the track was stopped before its
// source was ever opened. A lazy track that is skipped never pays its
// decode cost.
var ErrTrackStopped = errors.New("track stopped before opening")

// OpenFunc produces the s16le 48kHz stereo PCM stream for a track. For lazy
// tracks it is not invoked until the track is promoted to active.
type OpenFunc func() (io.ReadCloser, error)

// Track is one unit of playable audio plus its playback controls. It is
// owned by the queue until dequeued, then by the active slot, and is done
// once playback ends or it is stopped.
type Track struct {
	title string

	open OpenFunc

	volumeBits atomic.Uint64

	stop     chan struct{}
	stopOnce sync.Once

	// endOnce guarantees the broker fires end reactions exactly once per
	// track instance, whichever path reports the end first.
	endOnce sync.Once
}

// NewTrack wraps an openable PCM source into a playable track at full volume.
func NewTrack(title string, open OpenFunc) *Track {
	t := &Track{
		title: title,
		open:  open,
		stop:  make(chan struct{}),
	}
	t.SetVolume(1.0)
	return t
}

// Title returns the display name of the track.
func (t *Track) Title() string {
	return t.title
}

// SetVolume sets the playback gain. 1.0 is unity.
func (t *Track) SetVolume(v float64) {
	t.volumeBits.Store(math.Float64bits(v))
}

// Volume returns the current playback gain.
func (t *Track) Volume() float64 {
	return math.Float64frombits(t.volumeBits.Load())
}

// Stop signals the track to halt. Safe to call any number of times, from
// any goroutine, whether or not playback has started.
func (t *Track) Stop() {
	t.stopOnce.Do(func() {
		close(t.stop)
	})
}

// Stopped returns the channel closed by Stop.
func (t *Track) Stopped() <-chan struct{} {
	return t.stop
}

// Open resolves the PCM source. Stop wins over a pending lazy open: a track
// stopped before Open is called never touches its source.
func (t *Track) Open() (io.ReadCloser, error) {
	select {
	case <-t.stop:
		return nil, ErrTrackStopped
	default:
	}
	return t.open()
}
