// Package resolver turns sound names and remote URLs into playable tracks.
// Local clips decode through ffmpeg; remote URLs resolve through the
// youtube client first, then decode the stream URL the same way.
package resolver

import (
	"fmt"
	"io"
	"strings"

	"github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog/log"

	"github.com/dorinm/sunetbot/internal/sounds"
	"github.com/dorinm/sunetbot/internal/voice"
)

// ResolveError means an identifier or URL could not be turned into a
// playable track. It wraps the collaborator's detail for the logs.
type ResolveError struct {
	Input string
	Err   error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot resolve %q: %v", e.Input, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Resolver is the audio source resolver. Stateless per call; safe for
// concurrent use.
type Resolver struct {
	library *sounds.Library
	yt      *youtube.Client
}

// New builds a resolver over the given sound library. proxy optionally
// routes youtube traffic (http, https, socks5 or socks4 URL).
func New(library *sounds.Library, proxy string) *Resolver {
	return &Resolver{
		library: library,
		yt:      newYouTubeClient(proxy),
	}
}

// File resolves a local clip by name. Unknown names fall back to a random
// built-in clip. Decoding always starts at play time; with lazy=false the
// file is probed now so a bad name fails at the command, not mid-queue.
func (r *Resolver) File(name string, lazy bool) (*voice.Track, error) {
	if sounds.UnsafeName(name) {
		return nil, &ResolveError{Input: name, Err: fmt.Errorf("unsafe clip name")}
	}
	path := r.library.Path(name)
	if !lazy {
		if err := probeFile(path); err != nil {
			return nil, &ResolveError{Input: name, Err: err}
		}
	}
	return voice.NewTrack(name, func() (io.ReadCloser, error) {
		return openPCM(path)
	}), nil
}

// URL resolves a remote URL. With lazy=true nothing is fetched until the
// track is promoted to active, so queued media that gets skipped never
// pays its resolution cost.
func (r *Resolver) URL(rawURL string, lazy bool) (*voice.Track, error) {
	if !strings.HasPrefix(rawURL, "http") {
		return nil, &ResolveError{Input: rawURL, Err: fmt.Errorf("not a valid URL")}
	}

	if lazy {
		return voice.NewTrack(rawURL, func() (io.ReadCloser, error) {
			streamURL, _, err := r.fetchStreamURL(rawURL)
			if err != nil {
				return nil, err
			}
			return openPCM(streamURL)
		}), nil
	}

	streamURL, title, err := r.fetchStreamURL(rawURL)
	if err != nil {
		return nil, &ResolveError{Input: rawURL, Err: err}
	}
	return voice.NewTrack(title, func() (io.ReadCloser, error) {
		return openPCM(streamURL)
	}), nil
}

// fetchStreamURL asks youtube for a direct audio stream URL.
func (r *Resolver) fetchStreamURL(rawURL string) (streamURL, title string, err error) {
	videoID, err := extractYouTubeID(rawURL)
	if err != nil {
		return "", "", err
	}

	video, err := r.yt.GetVideo(videoID)
	if err != nil {
		return "", "", fmt.Errorf("youtube client error: %w", err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return "", "", fmt.Errorf("no audio formats found for video")
	}

	streamURL, err = r.yt.GetStreamURL(video, &formats[0])
	if err != nil {
		return "", "", fmt.Errorf("get stream URL error: %w", err)
	}

	log.Debug().Str("module", "resolver").Str("video", videoID).
		Str("title", video.Title).Msg("resolved stream URL")
	return streamURL, video.Title, nil
}
