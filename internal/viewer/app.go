// Package viewer is the desktop shell around the room: an ImGui window
// with the room drawn into an offscreen framebuffer, the adjustment
// panels, the portfolio overlay and the layout file menu.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/assets"
	"github.com/Faultbox/pastel-room/internal/config"
	"github.com/Faultbox/pastel-room/internal/engine/debug"
	"github.com/Faultbox/pastel-room/internal/engine/framebuffer"
	"github.com/Faultbox/pastel-room/internal/engine/renderer"
	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/internal/engine/ui"
	"github.com/Faultbox/pastel-room/internal/layout"
	"github.com/Faultbox/pastel-room/internal/logger"
	"github.com/Faultbox/pastel-room/internal/room"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// Title is the window title.
const Title = "Pastel Room"

// ReloadSettle coalesces bursts of layout file events.
const ReloadSettle = 200 * time.Millisecond

// ScreenshotDir is where F12 captures are written.
const ScreenshotDir = "screenshots"

// App is the running viewer.
type App struct {
	cfg *config.Config
	log *zap.Logger

	backend     *ui.Backend
	renderer    *renderer.Renderer
	fb          *framebuffer.Framebuffer
	screenshots *debug.ScreenshotCapture

	room   *room.Room
	loader *assets.Loader

	ctx         context.Context
	layoutPath  string
	pendingPath chan string
	updates     <-chan layout.Update
	stopWatch   context.CancelFunc

	buttons  mouseButtons
	pointer  math.Vec2
	canvas   math.Vec2 // Canvas size in pixels
	stopped  error
	showHelp bool
}

// New creates the window, GL resources and the room. It must run on the
// main OS thread.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)

	app := &App{
		cfg:         cfg,
		log:         log,
		screenshots: debug.NewScreenshotCapture(ScreenshotDir, "room"),
		pendingPath: make(chan string, 1),
		showHelp:    true,
	}

	var err error
	app.backend, err = ui.NewBackend(Title, int32(cfg.Graphics.Width), int32(cfg.Graphics.Height),
		scene.Hex(scene.Background), log.Named("ui"))
	if err != nil {
		return nil, err
	}

	app.renderer, err = renderer.New(log.Named("renderer"))
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	app.fb, err = framebuffer.New(int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		app.renderer.Close()
		return nil, err
	}

	src := assets.NewCachedSource(assets.NewDirSource(cfg.Assets.ModelsDir), assets.NewCache())
	app.loader = assets.NewLoader(src, log.Named("assets"))

	app.room = room.New(room.OptionsFromConfig(cfg), app.loader, ui.Clipboard{}, log.Named("room"))
	app.room.OnStop = func(err error) {
		app.stopped = err
	}

	log.Info("viewer ready",
		zap.String("models", cfg.Assets.ModelsDir),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Stringer("mode", app.room.Mode()),
	)
	return app, nil
}

// Room returns the room the viewer drives.
func (app *App) Room() *room.Room {
	return app.room
}

// Run loads the starting layout and runs the frame loop until the window
// closes or ctx ends.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.ctx = ctx

	placements := layout.Defaults()
	if path := app.cfg.Assets.LayoutFile; path != "" {
		loaded, err := layout.Load(path)
		if err != nil {
			app.log.Warn("layout file unusable, using built-in layout", zap.String("path", path), zap.Error(err))
		} else {
			placements = loaded
			app.setLayoutPath(path)
		}
	}
	app.room.Load(ctx, placements)

	app.backend.Run(app.frame)

	cancel()
	if app.stopWatch != nil {
		app.stopWatch()
	}
	app.loader.Wait()
	app.loader.Drain()
	return app.stopped
}

// Close releases GL resources.
func (app *App) Close() {
	if app.fb != nil {
		app.fb.Destroy()
	}
	if app.renderer != nil {
		app.renderer.Close()
	}
}

// frame is the per-frame callback. Panels are drawn first so the canvas
// rectangle is known before input and rendering.
func (app *App) frame() {
	now := time.Now()

	if app.ctx.Err() != nil {
		app.backend.SetShouldClose()
		return
	}

	app.handlePending(now)
	app.drawMenu(now)
	app.drawCanvas(now)

	if app.stopped == nil {
		err := app.room.Frame(now, app.render)
		if err != nil && !errors.Is(err, room.ErrStopped) {
			app.log.Debug("frame failed", zap.Error(err))
		}
	}

	app.drawToggles(now)
	app.drawAdjustments(now)
	app.drawInstructions()
	app.drawCoordinates()
	app.drawProgress()
	app.drawOverlay()
	app.drawToast(now)
	app.drawStopped()
}

// render draws the room into the framebuffer.
func (app *App) render() error {
	restore := app.fb.BindWithViewport()
	defer restore()

	app.fb.Clear(app.room.Scene.Background)

	var highlight *scene.Node
	if app.room.Mode() == room.ModeDev {
		highlight = app.room.Gizmo.Target()
	}
	return app.renderer.Render(app.room.Scene, renderer.View{
		ViewProj:  app.room.Camera.ViewProjection(),
		Eye:       app.room.Camera.Position(),
		Lighting:  app.room.Lighting,
		Highlight: highlight,
	})
}

// handlePending applies work queued by goroutines: a layout picked in the
// file dialog and reloads from the watcher.
func (app *App) handlePending(now time.Time) {
	select {
	case path := <-app.pendingPath:
		app.openLayout(path, now)
	default:
	}

	if app.updates == nil {
		return
	}
	select {
	case u, ok := <-app.updates:
		if !ok {
			app.updates = nil
			return
		}
		if u.Err != nil {
			app.room.ShowToast("Layout file has errors, see log", now)
			return
		}
		app.room.ApplyLayout(app.ctx, u.Placements)
		app.room.ShowToast(fmt.Sprintf("Layout reloaded (%d models)", len(u.Placements)), now)
	default:
	}
}

// openLayout loads a layout file and animates the room into it.
func (app *App) openLayout(path string, now time.Time) {
	placements, err := layout.Load(path)
	if err != nil {
		app.log.Warn("opening layout failed", zap.String("path", path), zap.Error(err))
		app.room.ShowToast("Could not open "+filepath.Base(path), now)
		return
	}
	app.room.ApplyLayout(app.ctx, placements)
	app.setLayoutPath(path)
	app.room.ShowToast("Opened "+filepath.Base(path), now)
}

// setLayoutPath records the active layout file and restarts the watcher
// on it when watching is enabled.
func (app *App) setLayoutPath(path string) {
	app.layoutPath = path
	app.backend.SetWindowTitle(fmt.Sprintf("%s - %s", Title, filepath.Base(path)))

	if !app.cfg.Assets.WatchLayout {
		return
	}
	if app.stopWatch != nil {
		app.stopWatch()
	}
	ctx, cancel := context.WithCancel(app.ctx)
	updates, err := layout.Watch(ctx, path, ReloadSettle, app.log.Named("layout"))
	if err != nil {
		cancel()
		app.log.Warn("layout hot reload disabled", zap.String("path", path), zap.Error(err))
		return
	}
	app.updates = updates
	app.stopWatch = cancel
}

// screenshot writes the current framebuffer to a PNG.
func (app *App) screenshot(now time.Time) {
	pixels, w, h := app.fb.ReadPixels()
	path, err := app.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		app.log.Warn("screenshot failed", zap.Error(err))
		app.room.ShowToast("Screenshot failed", now)
		return
	}
	app.log.Info("screenshot saved", zap.String("path", path))
	app.room.ShowToast("Saved "+path, now)
}
