package viewer

import (
	"fmt"
	"os"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/engine/debug"
	"github.com/Faultbox/pastel-room/internal/engine/lighting"
	"github.com/Faultbox/pastel-room/internal/engine/picking"
	"github.com/Faultbox/pastel-room/internal/engine/renderer"
	"github.com/Faultbox/pastel-room/internal/engine/ui"
	"github.com/Faultbox/pastel-room/internal/room"
)

const (
	panelMargin      = 10
	adjustmentsWidth = 280
	togglesWidth     = 180
	togglesHeight    = 104
	readoutWidth     = 250
	readoutHeight    = 36
	progressWidth    = 420
)

var fixedFlags = imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse |
	imgui.WindowFlagsNoSavedSettings

var floatingFlags = fixedFlags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar |
	imgui.WindowFlagsNoFocusOnAppearing

func (app *App) drawMenu(now time.Time) {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open Layout...") {
			app.openLayoutDialog()
		}
		if imgui.MenuItemBool("Export Layout") {
			app.export(now)
		}
		if imgui.MenuItemBool("Screenshot (F12)") {
			app.screenshot(now)
		}
		imgui.Separator()
		if imgui.MenuItemBool("Quit") {
			app.backend.SetShouldClose()
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("View") {
		if imgui.MenuItemBool("Toggle Grid & Axes") {
			app.room.ToggleHelpers()
		}
		if imgui.MenuItemBool(devModeLabel(app.room.Mode())) {
			app.room.ToggleDevMode()
		}
		if imgui.MenuItemBool("Instructions") {
			app.showHelp = !app.showHelp
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("Models") {
		for _, n := range app.room.Scene.VisibleModelRoots() {
			if imgui.MenuItemBool(n.Meta.ModelName) {
				app.room.Focus(n.Meta.ModelName, now)
			}
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

// openLayoutDialog shows a native file dialog. The dialog blocks, so it
// runs on its own goroutine and hands the result to the frame loop.
func (app *App) openLayoutDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Layout files", "yaml", "yml", "json").
			Filter("All Files", "*").
			Title("Open Layout").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				app.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case app.pendingPath <- filename:
		default:
		}
	}()
}

func (app *App) export(now time.Time) {
	res, err := app.room.Export(now)
	if err != nil {
		return
	}
	// The console copy of the manifest.
	fmt.Fprintln(os.Stdout, res.JSON)
}

// drawCanvas shows the framebuffer across the work area and feeds pointer
// and keyboard input to the room.
func (app *App) drawCanvas(now time.Time) {
	workPos, workSize := ui.Viewport()
	app.canvas = vec2(workSize)
	if app.fb.Fit(workSize.X, workSize.Y) {
		app.log.Debug("canvas resized", zap.Float32("width", workSize.X), zap.Float32("height", workSize.Y))
	}

	flags := fixedFlags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(workSize)
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	hovered := false
	if imgui.BeginV("##Room", nil, flags) {
		imgui.ImageV(ui.Texture(app.fb.ColorTexture()), workSize, imgui.NewVec2(0, 1), imgui.NewVec2(1, 0))
		hovered = imgui.IsItemHovered()
		app.drawLabels()
	}
	imgui.End()
	imgui.PopStyleVar()

	display := imgui.CurrentIO().DisplaySize()
	app.room.SetViewport(
		picking.Rect{X: workPos.X, Y: workPos.Y, W: workSize.X, H: workSize.Y},
		picking.Rect{W: display.X, H: display.Y},
	)

	app.handlePointer(hovered, now)
	app.handleKeys(now)
}

func (app *App) handlePointer(hovered bool, now time.Time) {
	p := vec2(imgui.MousePos())
	// ImGui reports -FLT_MAX when the pointer has left the window.
	valid := p.X > -1e6 && p.Y > -1e6

	if valid && p != app.pointer {
		app.pointer = p
		if err := app.room.PointerMove(p, now); err != nil {
			app.log.Warn("pointer move failed", zap.Error(err))
		}
	}

	pressed, released := app.buttons.update([3]bool{
		imgui.IsMouseDown(imgui.MouseButtonLeft),
		imgui.IsMouseDown(imgui.MouseButtonRight),
		imgui.IsMouseDown(imgui.MouseButtonMiddle),
	})
	for i, b := range []room.Button{room.ButtonLeft, room.ButtonRight, room.ButtonMiddle} {
		if pressed[i] && hovered && valid {
			app.buttons.captured[i] = true
			app.room.PointerDown(p, b)
		}
		if released[i] && app.buttons.captured[i] {
			app.buttons.captured[i] = false
			app.room.PointerUp(b, now)
		}
	}

	if hovered {
		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.room.Scroll(wheel)
		}
	}
}

func (app *App) handleKeys(now time.Time) {
	if imgui.IsAnyItemActive() {
		return
	}
	for _, kb := range keyBindings {
		if ui.IsKeyPressed(kb.key) {
			app.room.KeyPressed(kb.cmd)
		}
	}
	if ui.IsKeyPressed(imgui.KeyF12) {
		app.screenshot(now)
	}
}

// drawLabels writes the axis names next to the axes. It runs inside the
// canvas window, whose local coordinates match the framebuffer's.
func (app *App) drawLabels() {
	if !app.room.HelpersVisible() {
		return
	}
	vp := app.room.Camera.ViewProjection()
	for _, l := range debug.AxisLabels() {
		p, ok := renderer.Project(vp, l.Position, app.canvas.X, app.canvas.Y)
		if !ok {
			continue
		}
		imgui.SetCursorPosX(p.X)
		imgui.SetCursorPosY(p.Y)
		imgui.TextColored(color(l.Color, 1), l.Text)
	}
}

func (app *App) drawToggles(now time.Time) {
	workPos, workSize := ui.Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+panelMargin, workPos.Y+workSize.Y-togglesHeight-panelMargin))
	imgui.SetNextWindowSize(imgui.NewVec2(togglesWidth, togglesHeight))
	imgui.SetNextWindowBgAlpha(0.6)
	if imgui.BeginV("##Toggles", nil, floatingFlags) {
		if imgui.ButtonV("Toggle Grid & Axes", imgui.NewVec2(-1, 0)) {
			app.room.ToggleHelpers()
		}
		if imgui.ButtonV(devModeLabel(app.room.Mode()), imgui.NewVec2(-1, 0)) {
			app.room.ToggleDevMode()
		}
		if imgui.ButtonV("Export Layout", imgui.NewVec2(-1, 0)) {
			app.export(now)
		}
	}
	imgui.End()
}

// drawAdjustments is the grid, camera and lighting panel.
func (app *App) drawAdjustments(now time.Time) {
	workPos, workSize := ui.Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+workSize.X-adjustmentsWidth-panelMargin, workPos.Y+panelMargin))
	imgui.SetNextWindowSize(imgui.NewVec2(adjustmentsWidth, 0))
	imgui.SetNextWindowBgAlpha(0.85)
	if !imgui.BeginV("Adjustments", nil, fixedFlags|imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	r := app.room
	if imgui.CollapsingHeaderTreeNodeFlagsV("Grid", imgui.TreeNodeFlagsDefaultOpen) {
		divisions := int32(r.Grid.Divisions)
		if imgui.SliderIntV("Divisions", &divisions, MinDivisions, MaxDivisions, "%d", imgui.SliderFlagsNone) {
			r.SetDivisions(snapDivisions(divisions))
		}
		show := r.HelpersVisible()
		if imgui.Checkbox("Show grid", &show) {
			r.ToggleHelpers()
		}
		imgui.Checkbox("Snap to grid", &r.Grid.Snap)
		imgui.TextDisabled(fmt.Sprintf("Cell: %.2f", r.Grid.Step()))
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
		pos := r.Camera.Position()
		changed := imgui.SliderFloatV("X", &pos.X, -CameraRangeXZ, CameraRangeXZ, "%.1f", imgui.SliderFlagsNone)
		changed = imgui.SliderFloatV("Y", &pos.Y, 0, CameraMaxY, "%.1f", imgui.SliderFlagsNone) || changed
		changed = imgui.SliderFloatV("Z", &pos.Z, -CameraRangeXZ, CameraRangeXZ, "%.1f", imgui.SliderFlagsNone) || changed
		if changed {
			r.Camera.SetPosition(pos)
		}
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Lighting", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.SliderFloatV("Ambient", &r.Lighting.Ambient, lighting.MinIntensity, lighting.MaxIntensity, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Main", &r.Lighting.Main, lighting.MinIntensity, lighting.MaxIntensity, "%.2f", imgui.SliderFlagsNone)
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Stats", imgui.TreeNodeFlagsNone) {
		s := app.renderer.Stats()
		imgui.Text(fmt.Sprintf("Draws: %d  Triangles: %d", s.Draws, s.Triangles))
		imgui.Text(fmt.Sprintf("GPU meshes: %d  Textures: %d", s.Meshes, s.Textures))
		imgui.Text(fmt.Sprintf("Models: %d", len(r.Scene.ModelRoots())))
		for _, name := range r.Progress.Failed {
			imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), "Failed: "+name)
		}
	}

	if app.layoutPath != "" {
		imgui.Separator()
		imgui.TextDisabled("Layout: " + app.layoutPath)
	}
	imgui.End()
}

func (app *App) drawInstructions() {
	if !app.showHelp {
		return
	}
	workPos, _ := ui.Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+panelMargin, workPos.Y+panelMargin))
	imgui.SetNextWindowBgAlpha(0.75)
	if imgui.BeginV("##Instructions", nil, floatingFlags|imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoInputs) {
		imgui.Text(app.room.Instructions())
	}
	imgui.End()
}

func (app *App) drawCoordinates() {
	workPos, workSize := ui.Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(
		workPos.X+workSize.X-readoutWidth-panelMargin,
		workPos.Y+workSize.Y-readoutHeight-panelMargin,
	))
	imgui.SetNextWindowSize(imgui.NewVec2(readoutWidth, readoutHeight))
	imgui.SetNextWindowBgAlpha(0.6)
	if imgui.BeginV("##Coordinates", nil, floatingFlags|imgui.WindowFlagsNoInputs) {
		imgui.Text(app.room.HoverText())
	}
	imgui.End()
}

func (app *App) drawProgress() {
	p := app.room.Progress
	if p.Total == 0 || p.Complete {
		return
	}
	workPos, workSize := ui.Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+(workSize.X-progressWidth)/2, workPos.Y+workSize.Y-80))
	imgui.SetNextWindowSize(imgui.NewVec2(progressWidth, 0))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Loading", nil, floatingFlags|imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoInputs) {
		imgui.ProgressBarV(progressFraction(p), imgui.NewVec2(-1, 20), progressLabel(p))
	}
	imgui.End()
}

// drawOverlay shows the open portfolio panel over a dimmed backdrop. The
// backdrop takes no input, so clicks on it reach the canvas and the room
// closes the panel.
func (app *App) drawOverlay() {
	panel := app.room.Overlay.Current()
	if panel == nil {
		return
	}
	workPos, workSize := ui.Viewport()

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(workSize)
	imgui.SetNextWindowBgAlpha(0.45 * panel.Opacity)
	if imgui.BeginV("##Backdrop", nil, floatingFlags|imgui.WindowFlagsNoInputs) {
		imgui.Dummy(imgui.NewVec2(0, 0))
	}
	imgui.End()

	box := centeredBox(vec2(workPos), vec2(workSize), overlayWidth, overlayHeight)
	app.room.Overlay.ContentBox = box
	size := box.Max.Sub(box.Min)

	imgui.SetNextWindowPos(imgui.NewVec2(box.Min.X, box.Min.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(size.X, size.Y))
	imgui.PushStyleVarFloat(imgui.StyleVarAlpha, panel.Opacity)
	imgui.PushStyleVarFloat(imgui.StyleVarWindowRounding, 8)
	if imgui.BeginV("##Portfolio", nil, fixedFlags|imgui.WindowFlagsNoTitleBar) {
		imgui.TextColored(imgui.NewVec4(0.68, 0.5, 0.74, 1), panel.Content.Title)
		imgui.Separator()
		imgui.BeginChildStrV("##PortfolioBody", imgui.NewVec2(0, -34), imgui.ChildFlagsNone, imgui.WindowFlagsNone)
		imgui.TextWrapped(panel.Content.Text)
		imgui.EndChild()
		if imgui.ButtonV("Close", imgui.NewVec2(-1, 0)) {
			app.room.Overlay.Close()
		}
	}
	imgui.End()
	imgui.PopStyleVar()
	imgui.PopStyleVar()
}

func (app *App) drawToast(now time.Time) {
	text := app.room.ToastText(now)
	if text == "" {
		return
	}
	workPos, workSize := ui.Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+workSize.X/2-160, workPos.Y+panelMargin))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Toast", nil, floatingFlags|imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoInputs) {
		imgui.TextColored(imgui.NewVec4(0.2, 1.0, 0.2, 1.0), text)
	}
	imgui.End()
}

// drawStopped replaces the room with an error notice after the frame
// guard stops the loop.
func (app *App) drawStopped() {
	if app.stopped == nil {
		return
	}
	workPos, workSize := ui.Viewport()
	box := centeredBox(vec2(workPos), vec2(workSize), 420, 140)
	imgui.SetNextWindowPos(imgui.NewVec2(box.Min.X, box.Min.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(box.Max.X-box.Min.X, box.Max.Y-box.Min.Y))
	if imgui.BeginV("Rendering stopped", nil, fixedFlags) {
		imgui.TextWrapped("The room stopped after repeated frame errors. Check the log for details.")
		imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), app.stopped.Error())
		if imgui.ButtonV("Quit", imgui.NewVec2(-1, 0)) {
			app.backend.SetShouldClose()
		}
	}
	imgui.End()
}
