// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command paperdemo renders the paper logo headlessly.
//
// It opens a GPU device, draws the logo for a number of frames while
// slowly rotating it, optionally resizes the surface halfway through, and
// can write the last frame to a PNG file.
//
//	paperdemo -backend vulkan -frames 120 -resize 640x480 -png logo.png
//	paperdemo -backend noop
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/paper"
	"github.com/gogpu/paper/app"
	"github.com/gogpu/paper/render"
	"github.com/gogpu/paper/shape"
	_ "github.com/gogpu/wgpu/hal/vulkan" // Register the Vulkan backend
)

func main() {
	var (
		backend = flag.String("backend", render.BackendVulkan, "GPU backend: vulkan or noop")
		width   = flag.Uint("width", 500, "surface width")
		height  = flag.Uint("height", 500, "surface height")
		frames  = flag.Int("frames", 60, "number of frames to render")
		resize  = flag.String("resize", "", "resize to WxH halfway through, e.g. 640x480")
		samples = flag.Uint("samples", render.DefaultSampleCount, "MSAA sample count")
		spirv   = flag.Bool("spirv", false, "compile the shader to SPIR-V with naga")
		output  = flag.String("png", "", "write the last frame to this PNG file")
	)
	flag.Parse()

	paper.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	dev, err := render.OpenDevice(*backend)
	if err != nil {
		log.Fatalf("Failed to open %s device: %v", *backend, err)
	}
	defer dev.Close()

	win := app.NewHeadlessWindow(dev, uint32(*width), uint32(*height))
	first := *frames / 2
	win.RequestFrames(first)
	if *resize != "" {
		var w, h uint32
		if _, err := fmt.Sscanf(*resize, "%dx%d", &w, &h); err != nil {
			log.Fatalf("Invalid -resize %q: %v", *resize, err)
		}
		win.Resize(w, h)
	}
	win.RequestFrames(*frames - first)

	opts := []render.Option{render.WithSampleCount(uint32(*samples))}
	if *spirv {
		opts = append(opts, render.WithSPIRV())
	}
	a := app.New(app.DefaultConfig().
		WithTitle("paper logo").
		WithSize(uint32(*width), uint32(*height)).
		WithRenderOptions(opts...))

	a.OnFrame(func(r *render.Renderer) {
		if int(a.Frames()) != *frames {
			return
		}
		s := r.Stats()
		log.Printf("Last frame: %d renderables, %d draws, %d slots, %d buffers replaced",
			s.Renderables, s.Draws, r.Cache().Len(), r.Cache().Stats().BuffersReplaced)
		if *output != "" {
			if err := writePNG(*output, win, r); err != nil {
				log.Printf("Snapshot failed: %v", err)
			}
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.Run(ctx, win, newLogo()); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	log.Printf("Rendered %d frames (%d dropped)", a.Frames(), a.Dropped())
}

// logo is the demo state: the paper logo and its caption.
type logo struct {
	shape     paper.Shape
	caption   shape.Text
	transform paper.Transform
	camera    paper.OrthographicCamera
}

func newLogo() *logo {
	s := math.Sin(math.Pi / 4)
	path := shape.Line(
		mgl32.Vec2{0, float32(-s * 2)},
		mgl32.Vec2{float32(-s), float32(-s)},
	).
		Turn(1, -math.Pi*1.5).
		Forward(0.1)

	caption := shape.Text{Content: "paper", Size: 0.5, Color: paper.Black}
	if adv, err := caption.Advance(); err == nil {
		caption.Origin = mgl32.Vec2{-adv / 2, -2.2}
	}

	return &logo{
		shape: shape.Group{
			path.Stroke(0.8, paper.Black),
			path.Stroke(0.6, paper.RGBA(0.1, 0.2, 0.6, 1)),
		},
		caption:   caption,
		transform: paper.FromUniformScale(0.65),
		camera:    paper.DefaultOrthographicCamera(),
	}
}

// Draw implements app.State.
func (l *logo) Draw(f *paper.Frame) {
	f.Config.Resolution = 0.1
	l.transform = l.transform.RotateZ(0.01)
	f.DrawShape(l.shape, l.transform.Matrix(), &l.camera)
	f.DrawShape(l.caption, paper.FromUniformScale(0.65).Matrix(), &l.camera)
}

func writePNG(path string, win *app.HeadlessWindow, r *render.Renderer) error {
	img, err := win.Offscreen().Snapshot(r.Queue())
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Saved %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}
