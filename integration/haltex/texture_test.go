package haltex

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/texwrap"
	"github.com/gogpu/wgpu/hal"
)

// mockTexture implements hal.Texture for testing.
type mockTexture struct{ handle uintptr }

func (m *mockTexture) Destroy()                            {}
func (m *mockTexture) NativeHandle() uintptr               { return m.handle }
func (m *mockTexture) CurrentUsage() gputypes.TextureUsage { return 0 }
func (m *mockTexture) AddPendingRef()                      {}
func (m *mockTexture) DecPendingRef()                      {}

// mockView implements hal.TextureView for testing.
type mockView struct{ handle uintptr }

func (m *mockView) Destroy()              {}
func (m *mockView) NativeHandle() uintptr { return m.handle }

// mockDevice records destroy calls in order.
type mockDevice struct {
	calls []string
	tex   []hal.Texture
	views []hal.TextureView
}

func (d *mockDevice) DestroyTexture(texture hal.Texture) {
	d.calls = append(d.calls, "texture")
	d.tex = append(d.tex, texture)
}

func (d *mockDevice) DestroyTextureView(view hal.TextureView) {
	d.calls = append(d.calls, "view")
	d.views = append(d.views, view)
}

func testDescriptor(w, h uint32) *hal.TextureDescriptor {
	return &hal.TextureDescriptor{
		Label:         "overlay-icon",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

func TestNew(t *testing.T) {
	dev := &mockDevice{}
	tex := &mockTexture{handle: 1}
	view := &mockView{handle: 2}

	tests := []struct {
		name    string
		device  Releaser
		tex     hal.Texture
		view    hal.TextureView
		desc    *hal.TextureDescriptor
		wantErr error
	}{
		{"valid", dev, tex, view, testDescriptor(64, 32), nil},
		{"nil device", nil, tex, view, testDescriptor(64, 32), ErrNilDevice},
		{"nil texture", dev, nil, view, testDescriptor(64, 32), ErrNilTexture},
		{"nil view", dev, tex, nil, testDescriptor(64, 32), ErrNilView},
		{"nil descriptor", dev, tex, view, nil, ErrInvalidTextureSize},
		{"zero width", dev, tex, view, testDescriptor(0, 32), ErrInvalidTextureSize},
		{"zero height", dev, tex, view, testDescriptor(64, 0), ErrInvalidTextureSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.device, tt.tex, tt.view, tt.desc)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if got == nil {
				t.Fatal("New() returned nil texture")
			}
		})
	}
}

func TestTexture_Properties(t *testing.T) {
	desc := testDescriptor(256, 128)
	tex, err := New(&mockDevice{}, &mockTexture{handle: 0xAA}, &mockView{handle: 0x1234}, desc)
	if err != nil {
		t.Fatal(err)
	}

	// The descriptor is copied.
	desc.Size.Width = 1

	if got := tex.ImGuiHandle(); got != 0x1234 {
		t.Errorf("ImGuiHandle() = %#x, want view handle 0x1234", got)
	}
	if tex.Width() != 256 || tex.Height() != 128 {
		t.Errorf("size = %dx%d, want 256x128", tex.Width(), tex.Height())
	}
	if got := tex.Format(); got != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want BGRA8Unorm", got)
	}
	if got := tex.Label(); got != "overlay-icon" {
		t.Errorf("Label() = %q, want %q", got, "overlay-icon")
	}
}

func TestTexture_DestroyOnce(t *testing.T) {
	dev := &mockDevice{}
	halTex := &mockTexture{handle: 1}
	view := &mockView{handle: 2}
	tex, err := New(dev, halTex, view, testDescriptor(8, 8))
	if err != nil {
		t.Fatal(err)
	}

	tex.Destroy()
	tex.Destroy()

	if len(dev.calls) != 2 || dev.calls[0] != "view" || dev.calls[1] != "texture" {
		t.Fatalf("destroy calls = %v, want [view texture]", dev.calls)
	}
	if dev.tex[0] != hal.Texture(halTex) || dev.views[0] != hal.TextureView(view) {
		t.Error("device destroyed resources other than the wrapped ones")
	}
}

func TestTexture_DeferredThroughFrameQueue(t *testing.T) {
	dev := &mockDevice{}
	native, err := New(dev, &mockTexture{handle: 1}, &mockView{handle: 0x77}, testDescriptor(32, 32))
	if err != nil {
		t.Fatal(err)
	}

	q := texwrap.NewFrameQueue()
	m := texwrap.NewManager(texwrap.WithQueue(q))
	handle := m.MustWrap(native)

	if got := handle.ImGuiHandle(); got != 0x77 {
		t.Errorf("ImGuiHandle() = %#x, want 0x77", got)
	}
	if got := m.Stats().LiveBytes; got != 32*32*4 {
		t.Errorf("LiveBytes = %d, want %d", got, 32*32*4)
	}

	_ = handle.Close()
	if len(dev.calls) != 0 {
		t.Fatalf("device calls before EndFrame = %v, want none", dev.calls)
	}

	q.EndFrame()
	if len(dev.calls) != 2 {
		t.Errorf("device calls after EndFrame = %v, want [view texture]", dev.calls)
	}
}
