// Package room ties the scene, camera, gizmo, overlay and export together
// and routes input to them. It has no GPU or window dependencies; the
// viewer drives it once per frame.
package room

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/assets"
	"github.com/Faultbox/pastel-room/internal/config"
	"github.com/Faultbox/pastel-room/internal/engine/camera"
	"github.com/Faultbox/pastel-room/internal/engine/debug"
	"github.com/Faultbox/pastel-room/internal/engine/gizmo"
	"github.com/Faultbox/pastel-room/internal/engine/lighting"
	"github.com/Faultbox/pastel-room/internal/engine/picking"
	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/internal/engine/tween"
	"github.com/Faultbox/pastel-room/internal/export"
	"github.com/Faultbox/pastel-room/internal/logger"
	"github.com/Faultbox/pastel-room/internal/portfolio"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// Mode is the interaction mode.
type Mode int

const (
	ModeView Mode = iota
	ModeDev
)

func (m Mode) String() string {
	if m == ModeDev {
		return "dev"
	}
	return "view"
}

// Animation durations.
const (
	LayoutTween = 400 * time.Millisecond
	FocusTween  = 600 * time.Millisecond
)

// Options configure a Room.
type Options struct {
	Grid           scene.GridConfig
	Eye, Target    math.Vec3
	FOV, Near, Far float32
	Damping        float32
	Lighting       lighting.Setup
	DevMode        bool
	Debounce       time.Duration
	MaxFrameErrors int
	ToastDuration  time.Duration
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig converts loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	g := cfg.Grid
	return Options{
		Grid: scene.GridConfig{
			Visible:     g.Visible,
			Size:        g.Size,
			Divisions:   g.Divisions,
			CenterColor: g.CenterColor,
			GridColor:   g.GridColor,
			Snap:        g.Snap,
		},
		Eye:     math.FromArray(cfg.Camera.Position),
		Target:  math.FromArray(cfg.Camera.Target),
		FOV:     cfg.Camera.FOV,
		Near:    cfg.Camera.Near,
		Far:     cfg.Camera.Far,
		Damping: cfg.Camera.Damping,
		Lighting: lighting.Setup{
			Ambient:  cfg.Lighting.Ambient,
			Main:     cfg.Lighting.Main,
			Position: math.FromArray(cfg.Lighting.MainPosition),
		}.Clamp(),
		DevMode:        cfg.Interaction.DevMode,
		Debounce:       cfg.Interaction.Debounce,
		MaxFrameErrors: cfg.Interaction.MaxFrameErrors,
		ToastDuration:  cfg.Interaction.ToastDuration,
	}
}

// Progress is the state of the current model batch.
type Progress struct {
	Current  string
	Loaded   int64
	Size     int64
	Done     int
	Total    int
	Failed   []string
	Complete bool
}

// Toast is a short-lived status message.
type Toast struct {
	Text  string
	Until time.Time
}

// Room is the interactive room.
type Room struct {
	Scene    *scene.Scene
	Camera   *camera.OrbitCamera
	Grid     scene.GridConfig
	Gizmo    *gizmo.Controller
	Tweens   *tween.Manager
	Overlay  *portfolio.Overlay
	Exporter *export.Exporter
	Lighting lighting.Setup
	Guard    FrameGuard
	Progress Progress

	// OnStop runs after the frame guard trips.
	OnStop func(err error)

	mode          Mode
	loader        *assets.Loader
	toastDuration time.Duration
	toast         Toast
	now           time.Time
	log           *zap.Logger

	gridNode, axesNode, labelsNode *scene.Node
	selectionNode                  *scene.Node
	selectionBox                   picking.AABB
	flipbooks                      []*Flipbook

	viewport input
	hover    string
}

// New builds the room geometry and helpers. loader and clip may be nil.
func New(opts Options, loader *assets.Loader, clip export.Clipboard, log *zap.Logger) *Room {
	log = logger.OrNop(log)

	r := &Room{
		Scene:         scene.New(),
		Grid:          opts.Grid,
		Tweens:        tween.NewManager(),
		Lighting:      opts.Lighting,
		loader:        loader,
		toastDuration: opts.ToastDuration,
		log:           log,
		hover:         FormatCoordinates(math.Vec3{}),
	}
	r.Scene.BuildRoom()

	r.gridNode = debug.NewGridNode(r.Grid)
	r.axesNode = debug.NewAxesNode()
	r.labelsNode = debug.NewLabelsNode()
	r.Scene.Add(nil, r.gridNode)
	r.Scene.Add(nil, r.axesNode)
	r.Scene.Add(nil, r.labelsNode)
	r.selectionNode = debug.NewSelectionNode()
	r.Scene.Add(nil, r.selectionNode)
	r.setHelpersVisible(r.Grid.Visible)

	r.Camera = camera.NewOrbitCamera(opts.Eye, opts.Target)
	if opts.FOV > 0 {
		r.Camera.FOV = opts.FOV
	}
	if opts.Near > 0 && opts.Far > opts.Near {
		r.Camera.Near, r.Camera.Far = opts.Near, opts.Far
	}
	r.Camera.Damping = opts.Damping

	r.Gizmo = gizmo.New(&r.Grid, opts.Debounce, log.Named("gizmo"))
	r.Gizmo.Selectable = r.Scene.VisibleModelRoots
	r.Gizmo.OnDraggingChanged = func(dragging bool) {
		r.Camera.Enabled = !dragging
	}

	r.Overlay = portfolio.NewOverlay(r.Tweens, log.Named("overlay"))
	r.Exporter = export.New(clip, log.Named("export"))

	r.Guard.Max = opts.MaxFrameErrors
	r.Guard.OnStop = r.emergencyStop

	if opts.DevMode {
		r.SetMode(ModeDev)
	}
	return r
}

// Mode returns the interaction mode.
func (r *Room) Mode() Mode {
	return r.mode
}

// SetMode switches between view and dev mode. Leaving dev mode detaches
// the gizmo; entering it closes any overlay.
func (r *Room) SetMode(m Mode) {
	if m == r.mode {
		return
	}
	switch m {
	case ModeView:
		r.Gizmo.Detach()
	case ModeDev:
		r.Overlay.Close()
	}
	r.mode = m
	r.log.Info("mode changed", zap.Stringer("mode", m))
}

// ToggleDevMode flips between view and dev mode.
func (r *Room) ToggleDevMode() {
	if r.mode == ModeDev {
		r.SetMode(ModeView)
	} else {
		r.SetMode(ModeDev)
	}
}

// Instructions returns the help text for the current mode.
func (r *Room) Instructions() string {
	var b strings.Builder
	switch r.mode {
	case ModeDev:
		b.WriteString("Dev mode\n")
		b.WriteString("Click a model to select it, then drag to edit it.\n")
		b.WriteString("G: move   R: rotate   S: scale\n")
		b.WriteString("Tab: next model   N: toggle snapping   Esc: deselect\n")
		if t := r.Gizmo.Target(); t != nil {
			fmt.Fprintf(&b, "Selected: %s (%s)", t.Meta.ModelName, r.Gizmo.State())
		} else {
			b.WriteString("Nothing selected")
		}
	default:
		b.WriteString("Click on objects to learn more.\n")
		b.WriteString("Left drag: orbit   Right drag: pan   Scroll: zoom")
	}
	return b.String()
}

// ToggleHelpers shows or hides the grid, axes and axis labels together.
func (r *Room) ToggleHelpers() {
	r.setHelpersVisible(!r.Grid.Visible)
}

func (r *Room) setHelpersVisible(v bool) {
	r.Grid.Visible = v
	r.gridNode.Visible = v
	r.axesNode.Visible = v
	r.labelsNode.Visible = v
}

// HelpersVisible reports whether the grid and axes are shown.
func (r *Room) HelpersVisible() bool {
	return r.Grid.Visible
}

// SetDivisions changes the grid cell count and redraws the grid. Snapping
// picks the new cell size up immediately.
func (r *Room) SetDivisions(n int) {
	if n < 1 || n == r.Grid.Divisions {
		return
	}
	r.Grid.Divisions = n
	r.RedrawGrid()
}

// RedrawGrid regenerates the grid lines from the live configuration.
func (r *Room) RedrawGrid() {
	r.gridNode.Mesh = scene.NewLineMesh(debug.GridLines(r.Grid))
	r.gridNode.Visible = r.Grid.Visible
	r.log.Debug("grid redrawn", zap.Int("divisions", r.Grid.Divisions), zap.Float32("step", r.Grid.Step()))
}

// GridNode returns the grid helper.
func (r *Room) GridNode() *scene.Node {
	return r.gridNode
}

// HoverText returns the world coordinate last seen under the pointer.
func (r *Room) HoverText() string {
	return r.hover
}

// FormatCoordinates formats a point for the coordinate readout.
func FormatCoordinates(p math.Vec3) string {
	return fmt.Sprintf("X: %.2f, Y: %.2f, Z: %.2f", p.X, p.Y, p.Z)
}

// Focus moves the orbit target onto the named model.
func (r *Room) Focus(name string, now time.Time) bool {
	n := r.model(name)
	if n == nil {
		return false
	}
	r.Tweens.Add(tween.Vec3(&r.Camera.Target, n.Position, FocusTween), now)
	return true
}

// model returns the visible model root with the given name.
func (r *Room) model(name string) *scene.Node {
	for _, n := range r.Scene.VisibleModelRoots() {
		if n.Meta.ModelName == name {
			return n
		}
	}
	return nil
}

// Export copies the current layout to the clipboard and logs it.
func (r *Room) Export(now time.Time) (export.Result, error) {
	res, err := r.Exporter.Export(r.Scene)
	switch {
	case err == nil:
		r.ShowToast(fmt.Sprintf("Layout of %d models copied to clipboard", len(res.Placements)), now)
	case res.JSON != "":
		r.log.Warn("export not copied", zap.Error(err))
		r.ShowToast("Layout written to the log (clipboard unavailable)", now)
		err = nil
	default:
		r.ShowToast("Export failed", now)
	}
	return res, err
}

// ShowToast displays text until the toast duration has passed.
func (r *Room) ShowToast(text string, now time.Time) {
	r.toast = Toast{Text: text, Until: now.Add(r.toastDuration)}
}

// ToastText returns the active toast, or "".
func (r *Room) ToastText(now time.Time) string {
	if r.toast.Text == "" || !now.Before(r.toast.Until) {
		return ""
	}
	return r.toast.Text
}

// Frame runs one guarded frame: drain loads, advance tweens and
// animations, tick the gizmo, update the camera and hover readout, then
// render. After too many consecutive failures it returns ErrStopped.
func (r *Room) Frame(now time.Time, render func() error) error {
	return r.Guard.Run(func() error {
		if err := r.update(now); err != nil {
			return err
		}
		if render != nil {
			return render()
		}
		return nil
	})
}

func (r *Room) update(now time.Time) error {
	r.now = now
	if r.loader != nil {
		r.loader.Drain()
	}

	r.Tweens.Update(now)

	changed := false
	for _, f := range r.flipbooks {
		if f.Advance(now) {
			changed = true
		}
	}
	if changed {
		r.Scene.RebuildClickables()
	}

	if err := r.Gizmo.Tick(now); err != nil {
		return fmt.Errorf("gizmo: %w", err)
	}
	r.updateSelection()
	r.Camera.Update()
	r.updateHover()
	return nil
}

// SelectionNode returns the dev-mode selection box helper.
func (r *Room) SelectionNode() *scene.Node {
	return r.selectionNode
}

// updateSelection fits the selection box around the gizmo target. The
// line mesh is rebuilt only when the target's bounds move.
func (r *Room) updateSelection() {
	t := r.Gizmo.Target()
	if r.mode != ModeDev || t == nil {
		r.selectionNode.Visible = false
		return
	}
	box, ok := worldBounds(t)
	if !ok {
		r.selectionNode.Visible = false
		return
	}
	if r.selectionNode.Mesh == nil || box != r.selectionBox {
		r.selectionBox = box
		debug.SetSelectionBox(r.selectionNode, box.Min, box.Max)
	}
	r.selectionNode.Visible = true
}

// worldBounds unions the world bounds of the visible triangle meshes
// under n.
func worldBounds(n *scene.Node) (picking.AABB, bool) {
	var box picking.AABB
	found := false
	scene.Traverse(n, func(c *scene.Node) bool {
		if !c.Visible {
			return false
		}
		if c.Mesh == nil || c.Mesh.Primitive != scene.Triangles || len(c.Mesh.Positions) == 0 {
			return true
		}
		b := picking.TransformAABB(c.Mesh.Min, c.Mesh.Max, c.WorldMatrix())
		if !found {
			box, found = b, true
		} else {
			box = picking.AABB{Min: box.Min.Min(b.Min), Max: box.Max.Max(b.Max)}
		}
		return true
	})
	return box, found
}

func (r *Room) emergencyStop(err error) {
	r.log.Error("stopping frame loop", zap.Int("failed_frames", r.Guard.Consecutive()), zap.Error(err))
	r.Gizmo.Detach()
	if r.OnStop != nil {
		r.OnStop(err)
	}
}

// rayAt builds a world ray through a pointer position.
func (r *Room) rayAt(p math.Vec2) picking.Ray {
	res := picking.NDC(p, r.viewport.canvas, r.viewport.window, r.log)
	inv := r.Camera.ViewProjection().Inverse()
	return picking.RayFromNDC(res.NDC, inv)
}

func (r *Room) updateHover() {
	if !r.viewport.inside {
		return
	}
	ray := r.rayAt(r.viewport.pointer)
	if hit, ok := picking.PickSurface(ray, r.Scene.Surfaces()); ok {
		r.hover = FormatCoordinates(hit.Point)
	}
}
