// Package main is the entry point for the meshview preview tool: it welds
// and segments an OBJ model, then shows the result with one tint per
// surface.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshprep/internal/config"
	"github.com/Faultbox/meshprep/internal/logger"
	"github.com/Faultbox/meshprep/internal/viewer"
	"github.com/Faultbox/meshprep/pkg/formats"
	"github.com/Faultbox/meshprep/pkg/mesh"
	"github.com/Faultbox/meshprep/pkg/surface"
	"github.com/Faultbox/meshprep/pkg/weld"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshview [flags] <file.obj>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== meshview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	m, attr, err := prepare(path, cfg)
	if err != nil {
		logger.Error("failed to prepare mesh", zap.Error(err))
		os.Exit(1)
	}

	if err := run(cfg, m, attr); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// prepare loads the model, welds seam vertices, and segments surfaces.
func prepare(path string, cfg *config.Config) (*mesh.Mesh, []float32, error) {
	obj, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, nil, err
	}

	wopts := weld.DefaultOptions()
	wopts.AngleDeg = cfg.Weld.AngleDeg
	wopts.Precision = cfg.Weld.Precision

	aliases, err := weld.Aliases(obj.Positions, obj.Indices, wopts)
	if err != nil {
		return nil, nil, err
	}
	welded := weld.ApplyAliases(obj.Indices, aliases)
	m := mesh.New(obj.Positions, welded)

	sopts := surface.DefaultOptions()
	sopts.AngleDeg = cfg.Surfaces.AngleDeg
	sopts.FirstID = cfg.Surfaces.FirstID

	seg := surface.New(sopts)
	res, err := seg.Segment(m)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("mesh prepared",
		zap.String("file", path),
		zap.Int("welded_pairs", len(aliases)),
		zap.Uint32("max_surface_id", res.MaxID),
	)
	return m, res.VertexAttr, nil
}

func run(cfg *config.Config, m *mesh.Mesh, attr []float32) error {
	win, err := viewer.NewWindow(viewer.WindowConfig{
		Title:  "meshview",
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		VSync:  cfg.Viewer.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	r, err := viewer.NewRenderer(viewer.RendererConfig{
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
	})
	if err != nil {
		return err
	}
	defer r.Close()

	r.UploadMesh(m, attr)

	cam := viewer.NewOrbitCamera()
	cam.FitToBounds(m.Bounds())

	dragging := false
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					return nil
				}
			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = e.Type == sdl.MOUSEBUTTONDOWN
				}
			case *sdl.MouseMotionEvent:
				if dragging {
					cam.HandleDrag(float32(e.XRel), float32(e.YRel))
				}
			case *sdl.MouseWheelEvent:
				cam.HandleZoom(float32(e.Y))
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					w, h := win.GetSize()
					r.Resize(w, h)
				}
			}
		}

		r.Draw(cam)
		win.SwapBuffers()
	}
}
