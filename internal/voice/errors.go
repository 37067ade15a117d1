package voice

import "errors"

var (
	// ErrNotConnected means the operation needs a live session for the guild
	// and none exists. Callers treat it as a status, not a failure.
	ErrNotConnected = errors.New("not connected to a voice channel")

	// ErrConnectionFailed wraps a platform-level join failure. No session is
	// left behind when it is returned.
	ErrConnectionFailed = errors.New("failed to join voice channel")

	// ErrDisconnectFailed wraps a platform-level leave failure. The session
	// stays registered when it is returned.
	ErrDisconnectFailed = errors.New("failed to leave voice channel")

	// ErrAlreadyInState is reported when a mute/deafen toggle asks for the
	// state the session is already in. Informational, never fatal.
	ErrAlreadyInState = errors.New("already in requested state")
)
