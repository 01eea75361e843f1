// Package texwrap provides a safety harness for GPU textures shown by an
// in-process overlay through an immediate-mode GUI library.
//
// # Overview
//
// Overlay code draws renderer-owned textures by passing a native handle to
// the GUI library every frame. The GPU resource behind that handle must not
// be destroyed while the frame being recorded may still reference it.
// texwrap wraps each native texture in a DeferredTexture whose Close does not
// free anything: the texture is handed to a DisposalQueue, and the render
// loop destroys queued textures at the end of the frame.
//
// # Quick Start
//
//	queue := texwrap.NewFrameQueue()
//	m := texwrap.NewManager(texwrap.WithQueue(queue))
//	defer m.Close()
//
//	tex, err := m.Wrap(native) // native implements texwrap.NativeTexture
//	if err != nil {
//	    return err
//	}
//
//	// Every frame:
//	imgui.Image(imgui.TextureID(tex.ImGuiHandle()), tex.Size())
//
//	// When done (may be called mid-frame):
//	tex.Close()
//
//	// Render loop, after the frame's draw data was submitted:
//	queue.EndFrame()
//
// # Lifecycle
//
// A DeferredTexture moves through three states:
//
//	Live --Close--> PendingTeardown --EndFrame--> TornDown
//	Live --unreachable without Close--> TornDown (runtime cleanup)
//	Live --Manager.Close--> TornDown (shutdown sweep)
//
// Queries keep forwarding to the native texture while teardown is pending,
// because the current frame may still be drawing it. After teardown they
// return zero values and Err reports ErrTornDown.
//
// # Integration
//
// Adapters for native textures live in sub-packages:
//
//   - integration/haltex wraps github.com/gogpu/wgpu/hal textures and views
//   - integration/gputex wraps gpucontext.Texture values from a host renderer
//
// # Thread Safety
//
// Queries, Close, Wrap and FrameQueue.EnqueueDeferredDispose are safe for
// concurrent use. FrameQueue.EndFrame must only be called by the render loop.
package texwrap
