// Package gputex adapts textures produced by a gpucontext host (for example
// through gpucontext.TextureCreator) into native textures that texwrap can
// wrap.
//
// The package depends only on gpucontext interfaces, so it works with any
// host that implements them without importing the host.
//
//	creator := drawer.TextureCreator()
//	tex, err := creator.NewTextureFromRGBA(w, h, pixels)
//	if err != nil {
//	    return err
//	}
//	native, err := gputex.New(tex)
//	if err != nil {
//	    return err
//	}
//	handle, err := manager.Wrap(native)
package gputex

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/texwrap"
)

// Errors returned by the adapter.
var (
	// ErrNilTexture is returned when a nil texture is adapted.
	ErrNilTexture = errors.New("gputex: texture is nil")

	// ErrNotUpdatable is returned by Update when the host texture does not
	// implement gpucontext.TextureUpdater.
	ErrNotUpdatable = errors.New("gputex: texture does not implement gpucontext.TextureUpdater")

	// ErrDestroyed is returned by Update after Destroy.
	ErrDestroyed = errors.New("gputex: texture has been destroyed")
)

// textureDestroyer matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// viewProvider is implemented by host textures that expose the view the GUI
// binds.
type viewProvider interface {
	TextureView() gpucontext.TextureView
}

// Texture adapts a gpucontext.Texture to texwrap.NativeTexture.
type Texture struct {
	tex gpucontext.Texture

	mu        sync.Mutex
	destroyed bool
}

var _ texwrap.NativeTexture = (*Texture)(nil)

// New takes ownership of tex.
func New(tex gpucontext.Texture) (*Texture, error) {
	if tex == nil {
		return nil, ErrNilTexture
	}
	return &Texture{tex: tex}, nil
}

// Unwrap returns the host texture, for drawing it through
// gpucontext.TextureDrawer.
func (t *Texture) Unwrap() gpucontext.Texture {
	return t.tex
}

// ImGuiHandle returns the address of the host texture view, or 0 when the
// host texture does not expose one.
func (t *Texture) ImGuiHandle() uintptr {
	vp, ok := t.tex.(viewProvider)
	if !ok {
		return 0
	}
	view := vp.TextureView()
	if view.IsNil() {
		return 0
	}
	return uintptr(view.Pointer())
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.tex.Width()
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.tex.Height()
}

// Update uploads new pixel data to the host texture.
// Data must be exactly width * height * 4 bytes (RGBA).
func (t *Texture) Update(data []byte) error {
	t.mu.Lock()
	destroyed := t.destroyed
	t.mu.Unlock()
	if destroyed {
		return ErrDestroyed
	}

	updater, ok := t.tex.(gpucontext.TextureUpdater)
	if !ok {
		return ErrNotUpdatable
	}
	if err := updater.UpdateData(data); err != nil {
		return fmt.Errorf("gputex: texture update failed: %w", err)
	}
	return nil
}

// Destroy destroys the host texture if it supports destruction. Repeated
// calls are no-ops.
func (t *Texture) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	t.mu.Unlock()

	if destroyer, ok := t.tex.(textureDestroyer); ok {
		destroyer.Destroy()
		return
	}
	texwrap.Logger().Debug("gputex: host texture has no Destroy method",
		"type", fmt.Sprintf("%T", t.tex))
}
