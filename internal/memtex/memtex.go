// Package memtex provides CPU-only native textures for the demo command and
// for tests. A Texture behaves like a renderer texture: it has a handle,
// dimensions and a format, and records how often it was destroyed.
package memtex

import (
	"sync/atomic"

	"github.com/gogpu/gputypes"
)

// nextHandle allocates process-unique handles. Handle 0 is never issued, so
// it stays free to mean "no texture" for GUI libraries.
var nextHandle atomic.Uintptr

// Texture is an in-memory texture. It is safe for concurrent use.
type Texture struct {
	handle uintptr
	width  int
	height int
	format gputypes.TextureFormat

	destroyed atomic.Int32
}

// New creates a w×h RGBA8 texture with a freshly allocated handle.
func New(w, h int) *Texture {
	return NewWithHandle(nextHandle.Add(1), w, h, gputypes.TextureFormatRGBA8Unorm)
}

// NewWithHandle creates a texture with an explicit handle and format.
func NewWithHandle(handle uintptr, w, h int, format gputypes.TextureFormat) *Texture {
	return &Texture{
		handle: handle,
		width:  w,
		height: h,
		format: format,
	}
}

// ImGuiHandle returns the texture handle.
func (t *Texture) ImGuiHandle() uintptr { return t.handle }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Destroy counts the call.
func (t *Texture) Destroy() {
	t.destroyed.Add(1)
}

// DestroyCount returns how many times Destroy was called.
func (t *Texture) DestroyCount() int {
	return int(t.destroyed.Load())
}

// Destroyed reports whether Destroy was called at least once.
func (t *Texture) Destroyed() bool {
	return t.DestroyCount() > 0
}
