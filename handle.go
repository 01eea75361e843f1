package texwrap

import (
	"io"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// TextureHandle is the capability overlay code holds for a renderer-owned
// texture. It exposes the texture in the form an immediate-mode GUI library
// consumes and requires explicit release through Close.
//
// All query methods are read-only and have no side effects. Behavior after
// Close is implementation-defined.
type TextureHandle interface {
	// Width and Height return the texture dimensions in pixels.
	gpucontext.Texture

	// ImGuiHandle returns a texture handle suitable for direct use with
	// GUI draw calls (ImTextureID).
	ImGuiHandle() uintptr

	// Size returns (Width, Height). Implementations should use SizeOf.
	Size() Vec2

	// Close requests release of the texture. Implementations may defer the
	// actual GPU teardown.
	io.Closer
}

// NativeTexture is a renderer-native texture object. A DeferredTexture takes
// exclusive ownership of one NativeTexture.
//
// Implementations may also expose Format() gputypes.TextureFormat, which is
// used for memory accounting.
type NativeTexture interface {
	gpucontext.Texture

	// ImGuiHandle returns the renderer-defined native handle.
	ImGuiHandle() uintptr

	// Destroy releases the GPU resource. Called exactly once by texwrap.
	Destroy()
}

// formatter is implemented by native textures that know their pixel format.
type formatter interface {
	Format() gputypes.TextureFormat
}

// SizeOf returns the size vector (Width, Height) of a texture.
func SizeOf(t gpucontext.Texture) Vec2 {
	return Vec2{X: float32(t.Width()), Y: float32(t.Height())}
}

// bytesPerPixel returns the storage cost of one texel in the given format.
// Unknown formats are accounted as 4 bytes (RGBA8).
func bytesPerPixel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRG8Unorm:
		return 2
	case gputypes.TextureFormatRGBA16Float:
		return 8
	case gputypes.TextureFormatRGBA32Float:
		return 16
	default:
		return 4
	}
}

// textureBytes estimates the GPU memory held by a native texture.
func textureBytes(n NativeTexture) uint64 {
	bpp := 4
	if f, ok := n.(formatter); ok {
		bpp = bytesPerPixel(f.Format())
	}
	w, h := n.Width(), n.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	//nolint:gosec // G115: dimensions are checked positive
	return uint64(w) * uint64(h) * uint64(bpp)
}
