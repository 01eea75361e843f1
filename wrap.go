package texwrap

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
)

// textureState is the lifecycle state of a DeferredTexture.
type textureState int32

const (
	stateLive textureState = iota
	statePending
	stateTornDown
)

// String returns a human-readable name for the state.
func (s textureState) String() string {
	switch s {
	case stateLive:
		return "live"
	case statePending:
		return "pending-teardown"
	case stateTornDown:
		return "torn-down"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Teardown paths, used as the "path" label of teardown metrics.
const (
	pathDeferred  = "deferred"
	pathFinalizer = "finalizer"
	pathSweep     = "sweep"
)

// DeferredTexture is a safety harness for a renderer-native texture that
// defers destruction until the end of the frame.
//
// Queries forward to the wrapped texture on every call. Close does not free
// the GPU resource; it hands the texture to the DisposalQueue the owning
// Manager was configured with, and the queue calls RealDispose once the
// frame that may still reference the texture has been rendered.
//
// If a DeferredTexture becomes unreachable without Close, a runtime cleanup
// destroys the native texture immediately. This is a leak guard only: it may
// run while the current frame still references the texture.
//
// Queries are safe for concurrent use. DeferredTexture values are created by
// Manager.Wrap; the zero value is not usable.
type DeferredTexture struct {
	native NativeTexture
	queue  DisposalQueue
	owner  *Manager
	id     uint64
	bytes  uint64

	state   atomic.Int32
	cleanup runtime.Cleanup
}

// Ensure DeferredTexture satisfies the interfaces it is handed out as.
var (
	_ TextureHandle      = (*DeferredTexture)(nil)
	_ Disposable         = (*DeferredTexture)(nil)
	_ gpucontext.Texture = (*DeferredTexture)(nil)
	_ slog.LogValuer     = (*DeferredTexture)(nil)
)

// newDeferredTexture takes ownership of native and arms the finalization
// path. Only Manager.Wrap calls it.
func newDeferredTexture(m *Manager, id uint64, native NativeTexture) *DeferredTexture {
	t := &DeferredTexture{
		native: native,
		queue:  m.queue,
		owner:  m,
		id:     id,
		bytes:  textureBytes(native),
	}
	// The cleanup argument must not reference t, otherwise t is never
	// collected.
	t.cleanup = runtime.AddCleanup(t, finalizeTexture, finalizer{
		native: native,
		owner:  m,
		id:     id,
		bytes:  t.bytes,
	})
	return t
}

// ImGuiHandle returns the native handle of the wrapped texture, suitable for
// passing to GUI image draw calls. Returns 0 after teardown.
func (t *DeferredTexture) ImGuiHandle() uintptr {
	if t.load() == stateTornDown {
		return 0
	}
	return t.native.ImGuiHandle()
}

// Width returns the width of the wrapped texture. Returns 0 after teardown.
func (t *DeferredTexture) Width() int {
	if t.load() == stateTornDown {
		return 0
	}
	return t.native.Width()
}

// Height returns the height of the wrapped texture. Returns 0 after teardown.
func (t *DeferredTexture) Height() int {
	if t.load() == stateTornDown {
		return 0
	}
	return t.native.Height()
}

// Size returns the size vector of the texture using Width, Height.
func (t *DeferredTexture) Size() Vec2 {
	return SizeOf(t)
}

// Released reports whether Close was called or the texture was torn down.
func (t *DeferredTexture) Released() bool {
	return t.load() != stateLive
}

// Err returns nil while the texture is live, ErrReleased while it waits for
// teardown and ErrTornDown once the GPU resource is gone.
func (t *DeferredTexture) Err() error {
	switch t.load() {
	case statePending:
		return ErrReleased
	case stateTornDown:
		return ErrTornDown
	default:
		return nil
	}
}

// Close queues the texture to be destroyed once the frame ends.
//
// Only the first call has an effect. If the Manager has no DisposalQueue the
// texture is never torn down through this path. Close always returns nil.
func (t *DeferredTexture) Close() error {
	if !t.state.CompareAndSwap(int32(stateLive), int32(statePending)) {
		return nil
	}
	t.cleanup.Stop()
	t.owner.released(t)

	if t.queue == nil {
		Logger().Debug("texwrap: no disposal queue, texture left to its owner",
			"texture", t)
		return nil
	}
	t.queue.EnqueueDeferredDispose(t)
	return nil
}

// RealDispose destroys the wrapped texture. It is called by the DisposalQueue
// at the end of the frame in which Close was called.
//
// RealDispose is exported so that queues outside this package can drain
// textures. The texture's owner must not call it: after Close it would
// destroy the GPU resource while the current frame may still draw it.
// Calls on a texture that is not pending teardown are ignored.
func (t *DeferredTexture) RealDispose() {
	if !t.state.CompareAndSwap(int32(statePending), int32(stateTornDown)) {
		Logger().Warn("texwrap: RealDispose ignored", "texture", t)
		return
	}
	t.native.Destroy()
	t.owner.tornDown(t.id, t.bytes, pathDeferred)
}

// sweep destroys a texture that was never released. Used by Manager.Close.
func (t *DeferredTexture) sweep() bool {
	if !t.state.CompareAndSwap(int32(stateLive), int32(stateTornDown)) {
		return false
	}
	t.cleanup.Stop()
	t.native.Destroy()
	t.owner.tornDown(t.id, t.bytes, pathSweep)
	return true
}

// LogValue implements slog.LogValuer.
func (t *DeferredTexture) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("id", t.id),
		slog.String("state", t.load().String()),
		slog.Int("width", t.Width()),
		slog.Int("height", t.Height()),
		slog.Uint64("bytes", t.bytes),
	)
}

func (t *DeferredTexture) load() textureState {
	return textureState(t.state.Load())
}

// finalizer carries what the finalization path needs without referencing
// the DeferredTexture itself.
type finalizer struct {
	native NativeTexture
	owner  *Manager
	id     uint64
	bytes  uint64
}

// finalizeTexture runs on the runtime cleanup goroutine when a texture
// becomes unreachable without Close. Every other teardown path stops the
// cleanup first, so this runs at most once and only for live textures.
func finalizeTexture(f finalizer) {
	Logger().Warn("texwrap: texture finalized without Close, destroying immediately",
		"id", f.id, "bytes", f.bytes)
	f.native.Destroy()
	f.owner.tornDown(f.id, f.bytes, pathFinalizer)
}
