package sim

import "errors"

var (
	// ErrSurfaceUnavailable indicates the host could not provide a drawing surface.
	ErrSurfaceUnavailable = errors.New("sim: drawing surface unavailable")

	// ErrAlreadyStarted indicates Start was called on a scheduler that is not Idle.
	ErrAlreadyStarted = errors.New("sim: scheduler already started")

	// ErrNotRunning indicates Run was called on a scheduler that is not Running.
	ErrNotRunning = errors.New("sim: scheduler not running")

	// ErrHostClosed is returned by Host.NextFrame when the host will produce no more frames.
	ErrHostClosed = errors.New("sim: host closed")
)

// IsSurfaceError reports whether err came from a failed surface acquisition.
func IsSurfaceError(err error) bool { return errors.Is(err, ErrSurfaceUnavailable) }
