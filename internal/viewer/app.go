// Package viewer is the interactive terminal front end: it wires the
// parameter store, the slider panel and the scene into a frame loop.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/cubecam/internal/config"
	"github.com/taigrr/cubecam/internal/scene"
	"github.com/taigrr/cubecam/pkg/controls"
	"github.com/taigrr/cubecam/pkg/math3d"
	"github.com/taigrr/cubecam/pkg/models"
	"github.com/taigrr/cubecam/pkg/render"
	"github.com/taigrr/cubecam/pkg/shading"
)

// App holds all viewer state. Its methods are called from one goroutine;
// slider edits reach the store only through the event queue, which Update
// drains at the re-evaluation interval.
type App struct {
	cfg *config.Config
	log *zap.Logger

	store    *controls.Store
	overlays *controls.OverlayToggleSet
	queue    *controls.EventQueue
	board    *controls.Board
	panel    *Panel

	scene    *scene.Scene
	smoother *Smoother
	throttle *Throttle

	camera *render.Camera
	fb     *render.Framebuffer
	raster *render.Rasterizer
	bg     render.Color

	view      uv.Rectangle
	panelArea uv.Rectangle
	snap      scene.Snapshot

	fpsFrames int
	fpsTime   time.Time

	// OutputDir receives screenshots and exports made from the keyboard.
	OutputDir string
}

// New builds the viewer from cfg. The mesh comes from cfg.Mesh.Path when
// set, otherwise a cube of cfg.Render.CubeEdgeMM.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	store, err := cfg.NewStore()
	if err != nil {
		return nil, fmt.Errorf("initial positions: %w", err)
	}

	edge := float64(cfg.Render.CubeEdgeMM) / 1000
	mesh := models.NewCube(edge)
	if cfg.Mesh.Path != "" {
		mesh, err = models.LoadGLB(cfg.Mesh.Path)
		if err != nil {
			return nil, fmt.Errorf("load mesh: %w", err)
		}
		mesh.Normalize(edge)
		log.Info("mesh loaded",
			zap.String("path", cfg.Mesh.Path),
			zap.Int("triangles", mesh.TriangleCount()),
			zap.Int("planes", len(mesh.Planes)))
	}

	colors, err := scene.PlaneColors(len(mesh.Planes), cfg.Render.FaceColors, nil)
	if err != nil {
		return nil, fmt.Errorf("face colors: %w", err)
	}
	ld := cfg.Render.LightDirection
	light, err := shading.NewLight(math3d.V3(ld[0], ld[1], ld[2]), cfg.Render.Ambient)
	if err != nil {
		return nil, fmt.Errorf("light: %w", err)
	}
	sc, err := scene.New(mesh, store.Pose(controls.Camera), scene.Options{
		OriginMM: float64(cfg.Render.WorldOriginMM),
		Light:    light,
		Colors:   colors,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		store:    store,
		overlays: controls.NewOverlayToggleSet(),
		queue:    controls.NewEventQueue(),
		board:    controls.NewBoard(),
		scene:    sc,
		smoother: NewSmoother(cfg.Render.FPS, cfg.Render.SmoothingFrequency, cfg.Render.SmoothingDamping),
		throttle: NewThrottle(cfg.Render.ReevaluateInterval),
		camera:   render.NewCamera(),
		bg: render.RGB(
			uint8(cfg.Render.Background[0]),
			uint8(cfg.Render.Background[1]),
			uint8(cfg.Render.Background[2]),
		),
		OutputDir: ".",
	}
	if err := controls.Bind(a.board, a.store, a.overlays, a.queue); err != nil {
		return nil, fmt.Errorf("bind controls: %w", err)
	}
	a.panel = NewPanel(a.board)
	a.camera.SetFOV(math3d.Radians(cfg.Render.FOV))
	a.smoother.SetTarget(scene.Capture(a.store, a.overlays))
	a.snap = a.smoother.Step()
	a.Resize(80, 24)
	return a, nil
}

// Store returns the parameter store.
func (a *App) Store() *controls.Store { return a.store }

// Overlays returns the overlay toggle set.
func (a *App) Overlays() *controls.OverlayToggleSet { return a.overlays }

// Board returns the control surface the panel edits.
func (a *App) Board() *controls.Board { return a.board }

// Resize lays out the 3D view and the panel for a terminal of width x
// height cells.
func (a *App) Resize(width, height int) {
	pw := min(PanelWidth, width/2)
	a.view = uv.Rect(0, 0, max(width-pw, 1), max(height, 1))
	a.panelArea = uv.Rect(width-pw, 0, pw, height)

	a.fb = render.NewFramebuffer(a.view.Dx(), a.view.Dy()*2)
	a.raster = render.NewRasterizer(a.camera, a.fb)
	a.camera.SetAspectRatio(float64(a.fb.Width) / float64(a.fb.Height))
	a.log.Debug("resize", zap.Int("width", width), zap.Int("height", height))
}

// Update applies queued slider edits when the throttle allows, then steps
// the display smoothing.
func (a *App) Update(now time.Time) {
	if a.throttle.Ready(now) {
		n, err := controls.Drain(a.queue, a.store, a.overlays)
		if err != nil {
			a.log.Warn("apply control events", zap.Error(err))
		}
		if n > 0 {
			a.log.Debug("applied control events", zap.Int("count", n))
		}
		a.smoother.SetTarget(scene.Capture(a.store, a.overlays))
	}
	a.snap = a.smoother.Step()

	a.fpsFrames++
	if elapsed := now.Sub(a.fpsTime); elapsed >= time.Second {
		fps := float64(a.fpsFrames) / elapsed.Seconds()
		if !a.fpsTime.IsZero() {
			a.panel.Status = fmt.Sprintf("%.0f fps  %d tris", fps, a.scene.Mesh().TriangleCount())
		}
		a.fpsFrames = 0
		a.fpsTime = now
	}
}

// Render draws the current frame and the panel onto scr.
func (a *App) Render(scr uv.Screen) {
	a.fb.Clear(a.bg)
	a.raster.ClearDepth()
	a.scene.ApplyCamera(a.camera, a.snap.Camera)
	a.scene.Draw(a.raster, a.scene.Resolve(a.snap))

	a.fb.Draw(scr, a.view)
	if a.panelArea.Dx() > 0 {
		a.panel.Draw(scr, a.panelArea)
	}
}

// HandleEvent applies one input event and reports whether the viewer should
// quit.
func (a *App) HandleEvent(ev uv.Event) (quit bool) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		a.Resize(ev.Width, ev.Height)
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c", "q"):
			return true
		case ev.MatchString("ctrl+s"):
			if path, err := a.Screenshot(); err != nil {
				a.log.Error("screenshot", zap.Error(err))
			} else {
				a.log.Info("screenshot saved", zap.String("path", path))
			}
		case ev.MatchString("ctrl+e"):
			path := filepath.Join(a.OutputDir, "cubecam-"+time.Now().Format("20060102-150405")+".glb")
			if err := a.Export(path); err != nil {
				a.log.Error("export", zap.Error(err))
			} else {
				a.log.Info("scene exported", zap.String("path", path))
			}
		default:
			a.panel.HandleKey(ev)
		}
	case uv.MouseEvent:
		a.panel.HandleMouse(ev, a.view)
	}
	return false
}

// Screenshot writes the last rendered framebuffer as a PNG in OutputDir.
func (a *App) Screenshot() (string, error) {
	path := filepath.Join(a.OutputDir, "cubecam-"+time.Now().Format("20060102-150405.000")+".png")
	if err := a.fb.SavePNG(path); err != nil {
		return "", fmt.Errorf("save screenshot: %w", err)
	}
	return path, nil
}

// Export writes the scene at the store's current values as a GLB file.
func (a *App) Export(path string) error {
	return a.scene.Export(path, scene.Capture(a.store, a.overlays), a.camera)
}
