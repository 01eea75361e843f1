// Command texwrapdemo simulates an overlay render loop that wraps, draws and
// releases textures, and reports how texwrap tore them down.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"sort"

	"github.com/gogpu/texwrap"
	"github.com/gogpu/texwrap/internal/memtex"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	var (
		frames    = flag.Int("frames", 120, "number of frames to simulate")
		perFrame  = flag.Int("per-frame", 4, "textures wrapped per frame")
		keep      = flag.Int("keep", 16, "textures kept alive before the oldest is closed")
		dropEvery = flag.Int("drop-every", 30, "drop a texture without Close every N frames (0 disables)")
		verbose   = flag.Bool("v", false, "enable debug logging")
		metrics   = flag.Bool("metrics", false, "print Prometheus metrics at exit")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	texwrap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	reg := prometheus.NewRegistry()
	queue := texwrap.NewFrameQueue(texwrap.WithFrameQueueMetrics(reg))
	manager := texwrap.NewManager(texwrap.WithQueue(queue), texwrap.WithMetrics(reg))

	var live []*texwrap.DeferredTexture
	for f := 1; f <= *frames; f++ {
		for range *perFrame {
			tex, err := manager.Wrap(memtex.New(64*(1+f%4), 64))
			if err != nil {
				log.Fatalf("wrap: %v", err)
			}
			live = append(live, tex)
		}

		drawFrame(live)

		// Close the oldest textures mid-frame; they stay valid until EndFrame.
		for len(live) > *keep {
			_ = live[0].Close()
			live = live[1:]
		}
		if *dropEvery > 0 && f%*dropEvery == 0 && len(live) > 0 {
			live = dropLast(live)
			runtime.GC()
		}

		queue.EndFrame()
	}

	_ = manager.Close()
	_ = queue.Close()

	log.Printf("%d frames: %s", queue.Frame(), manager.Stats())

	if *metrics {
		if err := printMetrics(reg); err != nil {
			log.Fatalf("metrics: %v", err)
		}
	}
}

// dropLast forgets the newest texture without closing it. The slot is
// cleared so the backing array does not keep the texture reachable.
func dropLast(live []*texwrap.DeferredTexture) []*texwrap.DeferredTexture {
	live[len(live)-1] = nil
	return live[:len(live)-1]
}

// drawFrame stands in for GUI draw calls: every texture is read through the
// handle and size the GUI library would receive.
func drawFrame(textures []*texwrap.DeferredTexture) {
	bounds := texwrap.V2(128, 128)
	for _, tex := range textures {
		if tex.ImGuiHandle() == 0 {
			log.Fatalf("drawing a torn down texture: %v", tex.Err())
		}
		_ = tex.Size().Fit(bounds)
	}
}

func printMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetGauge().GetValue() + m.GetCounter().GetValue()
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf("{%s=%q}", lp.GetName(), lp.GetValue())
			}
			fmt.Printf("%s%s %g\n", mf.GetName(), labels, value)
		}
	}
	return nil
}
