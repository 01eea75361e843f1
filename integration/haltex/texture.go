// Package haltex adapts github.com/gogpu/wgpu/hal textures into native
// textures that texwrap can wrap.
//
// The overlay's GUI backend binds a texture through a view, so the native
// handle exposed to the GUI library is the view's backend handle
// (VkImageView, ID3D12 descriptor, MTLTexture, GL name).
//
//	tex, _ := device.CreateTexture(desc)
//	view, _ := device.CreateTextureView(tex, &hal.TextureViewDescriptor{})
//	native, err := haltex.New(device, tex, view, desc)
//	if err != nil {
//	    return err
//	}
//	handle, err := manager.Wrap(native)
package haltex

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/texwrap"
	"github.com/gogpu/wgpu/hal"
)

// Errors returned by New.
var (
	// ErrNilDevice is returned when no device is given to release the texture.
	ErrNilDevice = errors.New("haltex: device is nil")

	// ErrNilTexture is returned when the texture is nil.
	ErrNilTexture = errors.New("haltex: texture is nil")

	// ErrNilView is returned when the texture view is nil.
	ErrNilView = errors.New("haltex: texture view is nil")

	// ErrInvalidTextureSize is returned when the descriptor is missing or
	// has a zero dimension.
	ErrInvalidTextureSize = errors.New("haltex: invalid texture size")
)

// Releaser is the part of hal.Device a Texture needs to release its GPU
// resources. Every hal.Device implements it.
type Releaser interface {
	DestroyTexture(texture hal.Texture)
	DestroyTextureView(view hal.TextureView)
}

// Texture is a hal texture together with the view the GUI binds. It
// implements texwrap.NativeTexture.
//
// Texture is safe for concurrent read access. Destroy releases the view and
// then the texture, once.
type Texture struct {
	device Releaser
	tex    hal.Texture
	view   hal.TextureView

	// descriptor holds the texture configuration (immutable after creation).
	descriptor hal.TextureDescriptor

	destroyOnce sync.Once
}

var _ texwrap.NativeTexture = (*Texture)(nil)

// New takes ownership of tex and view. desc is copied.
func New(device Releaser, tex hal.Texture, view hal.TextureView, desc *hal.TextureDescriptor) (*Texture, error) {
	switch {
	case device == nil:
		return nil, ErrNilDevice
	case tex == nil:
		return nil, ErrNilTexture
	case view == nil:
		return nil, ErrNilView
	case desc == nil:
		return nil, fmt.Errorf("%w: nil descriptor", ErrInvalidTextureSize)
	case desc.Size.Width == 0 || desc.Size.Height == 0:
		return nil, fmt.Errorf("%w: width=%d, height=%d",
			ErrInvalidTextureSize, desc.Size.Width, desc.Size.Height)
	}
	return &Texture{
		device:     device,
		tex:        tex,
		view:       view,
		descriptor: *desc,
	}, nil
}

// ImGuiHandle returns the backend handle of the texture view.
func (t *Texture) ImGuiHandle() uintptr {
	return t.view.NativeHandle()
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return int(t.descriptor.Size.Width)
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return int(t.descriptor.Size.Height)
}

// Format returns the texture pixel format.
func (t *Texture) Format() gputypes.TextureFormat {
	return t.descriptor.Format
}

// Label returns the texture's debug label.
func (t *Texture) Label() string {
	return t.descriptor.Label
}

// Destroy releases the view and the texture through the device. Backends
// that track in-flight copies (DX12) postpone the texture's release until the
// GPU is done with it.
func (t *Texture) Destroy() {
	t.destroyOnce.Do(func() {
		t.device.DestroyTextureView(t.view)
		t.device.DestroyTexture(t.tex)
		texwrap.Logger().Debug("haltex: texture destroyed",
			"label", t.descriptor.Label,
			"width", t.descriptor.Size.Width,
			"height", t.descriptor.Size.Height)
	})
}
