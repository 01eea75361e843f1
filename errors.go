package texwrap

import "errors"

// Common errors returned by texwrap.
var (
	// ErrNilTexture is returned when a nil native texture is wrapped.
	ErrNilTexture = errors.New("texwrap: nil native texture")

	// ErrManagerClosed is returned when wrapping through a closed Manager.
	ErrManagerClosed = errors.New("texwrap: manager is closed")

	// ErrReleased is reported by DeferredTexture.Err after Close, while the
	// texture waits for its end-of-frame teardown.
	ErrReleased = errors.New("texwrap: texture has been released")

	// ErrTornDown is reported by DeferredTexture.Err once the GPU resource
	// has been destroyed. Queries then return zero values.
	ErrTornDown = errors.New("texwrap: texture has been torn down")
)
